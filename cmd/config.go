package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers     []string
	KafkaEventsTopic string
	RabbitMQURL      string

	PayoutBaseRate  decimal.Decimal
	PayoutRatePerKm decimal.Decimal
	AssignRadiusKm  float64

	RiderAssignmentSchedule string
	OutboxRelaySchedule     string
}

// DSN builds the Postgres connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the configuration through getenv. Optional values fall
// back to defaults; malformed numbers are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:         withDefault(getenv("HTTP_PORT"), "8080"),
		DBHost:           withDefault(getenv("DB_HOST"), "localhost"),
		DBPort:           withDefault(getenv("DB_PORT"), "5432"),
		DBUser:           getenv("DB_USER"),
		DBPassword:       getenv("DB_PASSWORD"),
		DBName:           getenv("DB_NAME"),
		DBSslMode:        withDefault(getenv("DB_SSLMODE"), "disable"),
		JWTSecret:        getenv("JWT_SECRET"),
		RedisAddr:        getenv("REDIS_ADDR"),
		RedisPassword:    getenv("REDIS_PASSWORD"),
		KafkaBrokers:     splitList(getenv("KAFKA_BROKERS")),
		KafkaEventsTopic: withDefault(getenv("KAFKA_EVENTS_TOPIC"), "stockway.events"),
		RabbitMQURL:      getenv("RABBITMQ_URL"),

		RiderAssignmentSchedule: getenv("RIDER_ASSIGNMENT_SCHEDULE"),
		OutboxRelaySchedule:     getenv("OUTBOX_RELAY_SCHEDULE"),
	}

	var errList []error
	var err error

	if cfg.RedisDB, err = parseInt(getenv("REDIS_DB"), 0); err != nil {
		errList = append(errList, fmt.Errorf("REDIS_DB: %w", err))
	}
	if cfg.PayoutBaseRate, err = parseDecimal(getenv("PAYOUT_BASE_RATE"), "50.00"); err != nil {
		errList = append(errList, fmt.Errorf("PAYOUT_BASE_RATE: %w", err))
	}
	if cfg.PayoutRatePerKm, err = parseDecimal(getenv("PAYOUT_RATE_PER_KM"), "10.00"); err != nil {
		errList = append(errList, fmt.Errorf("PAYOUT_RATE_PER_KM: %w", err))
	}
	if cfg.AssignRadiusKm, err = parseFloat(getenv("ASSIGN_RADIUS_KM"), 50); err != nil {
		errList = append(errList, fmt.Errorf("ASSIGN_RADIUS_KM: %w", err))
	}
	if cfg.JWTSecret == "" {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func withDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInt(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func parseFloat(value string, fallback float64) (float64, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}

func parseDecimal(value string, fallback string) (decimal.Decimal, error) {
	return decimal.NewFromString(withDefault(value, fallback))
}
