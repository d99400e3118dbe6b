package riderrepo

import (
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/rider"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RiderDTO is keyed by the rider's user id; a user has at most one rider profile.
type RiderDTO struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        string    `gorm:"size:20;not null;index"`
	Latitude      *float64
	Longitude     *float64
	TotalEarnings decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	dto := RiderDTO{
		UserID:        r.ID().Bytes(),
		WarehouseID:   r.WarehouseID().Bytes(),
		Status:        r.Status().String(),
		TotalEarnings: r.TotalEarnings(),
	}

	if loc := r.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	return dto
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	userID, err := kernel.UUIDFromGoogle(dto.UserID)
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromGoogle(dto.WarehouseID)
	if err != nil {
		return nil, err
	}
	status, err := rider.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return rider.RestoreRider(userID, warehouseID, status, location, dto.TotalEarnings)
}
