package deliveryrepo

import (
	"context"
	"errors"

	"stockway/internal/core/domain/model/delivery"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/ports"
	"stockway/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("order_id = ?", dto.OrderID).
		Select("rider_id", "status", "delivery_fee", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.OrderID().String())
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetUnassignedForUpdate claims up to limit unassigned deliveries, oldest
// first, after the cursor. Legs of warehouses without a location can never be
// dispatched and are not returned. Rows claimed by another worker are skipped.
func (r *GormDeliveryRepository) GetUnassignedForUpdate(
	ctx context.Context,
	after *ports.DeliveryCursor,
	limit int,
) ([]*delivery.Delivery, error) {
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", delivery.Unassigned.String()).
		Where(`EXISTS (SELECT 1 FROM warehouses w WHERE w.id = deliveries.warehouse_id
			AND w.latitude IS NOT NULL AND w.longitude IS NOT NULL)`)
	if after != nil {
		query = query.Where("(created_at, order_id) > (?, ?)", after.CreatedAt, after.OrderID.Bytes())
	}

	var dtos []DeliveryDTO
	err := query.
		Order("created_at").
		Order("order_id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
