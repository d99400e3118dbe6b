package deliveryrepo

import (
	"time"

	"stockway/internal/core/domain/model/delivery"
	"stockway/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDTO is the delivery leg of an order, keyed by the order id.
type DeliveryDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RiderID     *uuid.UUID      `gorm:"type:uuid;index"`
	Status      string          `gorm:"size:20;not null;index"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	var riderID *uuid.UUID
	if id := d.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return DeliveryDTO{
		OrderID:     d.OrderID().Bytes(),
		WarehouseID: d.WarehouseID().Bytes(),
		RiderID:     riderID,
		Status:      d.Status().String(),
		DeliveryFee: d.DeliveryFee(),
		CreatedAt:   d.CreatedAt(),
		UpdatedAt:   d.UpdatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromGoogle(dto.WarehouseID)
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		id, riderErr := kernel.UUIDFromGoogle(*dto.RiderID)
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &id
	}

	return delivery.RestoreDelivery(orderID, warehouseID, riderID, delivery.Status(dto.Status),
		dto.DeliveryFee, dto.CreatedAt, dto.UpdatedAt)
}
