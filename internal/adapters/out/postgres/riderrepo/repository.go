package riderrepo

import (
	"context"
	"errors"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/rider"
	"stockway/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RiderDTO{}).Where("user_id = ?", dto.UserID).
		Select("status", "latitude", "longitude", "total_earnings", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rider", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRiderRepository) Get(ctx context.Context, userID kernel.UUID) (*rider.Rider, error) {
	return r.get(r.db.WithContext(ctx), userID)
}

func (r *GormRiderRepository) GetForUpdate(ctx context.Context, userID kernel.UUID) (*rider.Rider, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

// GetAvailableForUpdate locks the available riders of a warehouse. Rows held
// by a concurrent assignment are skipped rather than waited on.
func (r *GormRiderRepository) GetAvailableForUpdate(
	ctx context.Context,
	warehouseID kernel.UUID,
) ([]*rider.Rider, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RiderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("warehouse_id = ? AND status = ?", warehouseID.Bytes(), rider.Available.String()).
		Order("user_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		rd, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		riders = append(riders, rd)
	}

	return riders, nil
}

func (r *GormRiderRepository) get(query *gorm.DB, userID kernel.UUID) (*rider.Rider, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := query.First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
