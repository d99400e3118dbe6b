// Package outboxrepo stores domain events written in the same transaction
// as the aggregates that raised them, until the relay publishes them.
package outboxrepo

import (
	"context"
	"time"

	"stockway/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(messages))
	for _, msg := range messages {
		dtos = append(dtos, fromPort(msg))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetUnprocessedForUpdate claims up to limit pending messages in occurrence
// order. Messages claimed by a concurrent relay are skipped.
func (r *GormOutboxRepository) GetUnprocessedForUpdate(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("processed_at IS NULL").
		Order("occurred_at").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toPort(dto))
	}

	return messages, nil
}

func (r *GormOutboxRepository) MarkProcessed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).
		Where("id IN ?", ids).
		Update("processed_at", at).Error
}
