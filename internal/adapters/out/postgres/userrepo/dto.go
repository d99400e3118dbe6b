package userrepo

import (
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO mirrors the identity provider's profile of a user.
type UserDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email       string     `gorm:"size:255;not null;index"`
	FullName    string     `gorm:"size:255"`
	PhoneNumber string     `gorm:"size:32"`
	Role        string     `gorm:"size:32;not null"`
	DeletedAt   *time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID().Bytes(),
		Email:       u.Email(),
		FullName:    u.FullName(),
		PhoneNumber: u.PhoneNumber(),
		Role:        u.Role().String(),
		DeletedAt:   u.DeletedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	role, err := kernel.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Email, dto.FullName, dto.PhoneNumber, role, dto.DeletedAt)
}
