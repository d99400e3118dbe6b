package ports

import (
	"context"

	"stockway/internal/core/domain/model/payment"
)

// PaymentRepository is append-only.
type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error
}
