package paymentrepo

import (
	"time"

	"stockway/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PaymentType string          `gorm:"size:30;not null"`
	PayerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayeeID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status      string          `gorm:"size:20;not null"`
	DistanceKm  decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          p.ID().Bytes(),
		PaymentType: string(p.Type()),
		PayerID:     p.PayerID().Bytes(),
		PayeeID:     p.PayeeID().Bytes(),
		OrderID:     p.OrderID().Bytes(),
		Amount:      p.Amount(),
		Status:      string(p.Status()),
		DistanceKm:  p.DistanceKm(),
		CreatedAt:   p.CreatedAt(),
	}
}
