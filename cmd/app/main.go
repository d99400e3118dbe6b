package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockway/cmd"
	httpin "stockway/internal/adapters/in/http"
	"stockway/internal/adapters/out/kafka"
	"stockway/internal/adapters/out/postgres"
	"stockway/internal/adapters/out/publisher"
	"stockway/internal/adapters/out/rabbitmq"
	"stockway/internal/adapters/out/redis"
	"stockway/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		logger.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return err
	}

	eventPublisher, closePublishers, err := buildPublisher(configs, logger)
	if err != nil {
		return err
	}
	defer closePublishers()

	var idempotency ports.IdempotencyStore
	if configs.RedisAddr != "" {
		client := redis.NewClient(configs.RedisAddr, configs.RedisPassword, configs.RedisDB)
		defer func() { _ = client.Close() }()
		if err = client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		idempotency = redis.NewIdempotencyStore(client, redis.DefaultIdempotencyTTL)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, eventPublisher, idempotency, logger)
	if err != nil {
		return err
	}

	auth, err := httpin.NewAuthenticator(configs.JWTSecret)
	if err != nil {
		return err
	}
	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	e, err := httpin.NewEcho(httpin.NewServer(app.HTTPHandlers(), logger), auth, doc, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "port", configs.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildPublisher connects the configured brokers. Without any broker the
// outbox is drained into a discarding publisher.
func buildPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func(), error) {
	var (
		publishers []ports.EventPublisher
		closers    []func() error
	)
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	if len(configs.KafkaBrokers) > 0 {
		p := kafka.NewPublisher(configs.KafkaBrokers, configs.KafkaEventsTopic)
		publishers = append(publishers, p)
		closers = append(closers, p.Close)
	}

	if configs.RabbitMQURL != "" {
		p, err := rabbitmq.Dial(configs.RabbitMQURL)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		publishers = append(publishers, p)
		closers = append(closers, p.Close)
	}

	composed, err := publisher.Compose(publishers...)
	if errors.Is(err, publisher.ErrNoPublishers) {
		logger.Warn("No event broker configured, outbox messages will be discarded")
		return publisher.Discard{}, closeAll, nil
	}
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return composed, closeAll, nil
}
