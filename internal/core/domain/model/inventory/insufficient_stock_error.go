package inventory

import (
	"errors"
	"fmt"
	"strings"

	"stockway/internal/core/domain/model/kernel"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Shortfall describes one item that cannot cover the requested quantity.
type Shortfall struct {
	ItemID    kernel.UUID
	ItemName  string
	Available int
	Requested int
}

func (s Shortfall) String() string {
	return fmt.Sprintf("Insufficient stock for item '%s'. Available: %d, Requested: %d",
		s.ItemName, s.Available, s.Requested)
}

// InsufficientStockError lists every shortfall found in a reservation.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func NewInsufficientStockError(shortfalls ...Shortfall) *InsufficientStockError {
	return &InsufficientStockError{Shortfalls: shortfalls}
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, s.String())
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock, strings.Join(parts, "; "))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
