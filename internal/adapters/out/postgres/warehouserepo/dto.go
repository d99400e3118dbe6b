package warehouserepo

import (
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
)

// WarehouseDTO stores the optional location as two nullable columns; both
// are set or both are NULL.
type WarehouseDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AdminID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"size:255;not null"`
	Address    string    `gorm:"type:text;not null"`
	Latitude   *float64
	Longitude  *float64
	IsActive   bool       `gorm:"not null;default:true"`
	IsApproved bool       `gorm:"not null;default:false"`
	DeletedAt  *time.Time `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (WarehouseDTO) TableName() string {
	return "warehouses"
}

func fromDomain(w *warehouse.Warehouse) WarehouseDTO {
	dto := WarehouseDTO{
		ID:         w.ID().Bytes(),
		AdminID:    w.AdminID().Bytes(),
		Name:       w.Name(),
		Address:    w.Address(),
		IsActive:   w.IsActive(),
		IsApproved: w.IsApproved(),
		DeletedAt:  w.DeletedAt(),
	}

	if loc := w.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	return dto
}

func toDomain(dto WarehouseDTO) (*warehouse.Warehouse, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	adminID, err := kernel.UUIDFromGoogle(dto.AdminID)
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

	return warehouse.RestoreWarehouse(id, adminID, dto.Name, dto.Address, location,
		dto.IsActive, dto.IsApproved, dto.DeletedAt)
}
