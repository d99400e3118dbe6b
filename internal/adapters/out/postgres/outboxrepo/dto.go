package outboxrepo

import (
	"time"

	"stockway/internal/core/ports"

	"github.com/google/uuid"
)

type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventName   string     `gorm:"size:100;not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromPort(msg ports.OutboxMessage) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:          msg.ID,
		AggregateID: msg.AggregateID,
		EventName:   msg.EventName,
		Payload:     msg.Payload,
		OccurredAt:  msg.OccurredAt,
	}
}

func toPort(dto OutboxMessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          dto.ID,
		AggregateID: dto.AggregateID,
		EventName:   dto.EventName,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
	}
}
