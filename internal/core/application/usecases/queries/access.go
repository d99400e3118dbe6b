// Package queries contains read-only operations. Handlers run raw SQL
// through GORM and return flat response structs; they never load aggregates.
package queries

import (
	"context"
	"errors"
	"fmt"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPrincipalIsRequired = errs.NewValueIsRequiredError("principal")

// haversineKm is the great-circle distance in kilometres between the row's
// latitude/longitude columns and the @lat/@lng named arguments. The inner
// LEAST guards asin against rounding slightly above 1.
const haversineKm = `(2 * 6371 * asin(LEAST(1, sqrt(
	power(sin(radians(latitude - @lat) / 2), 2) +
	cos(radians(@lat)) * cos(radians(latitude)) * power(sin(radians(longitude - @lng) / 2), 2)
))))`

const (
	DefaultNearbyRadiusKm = 10.0
	DefaultNearbyLimit    = 10
	MaxNearbyLimit        = 100
)

func setPrincipal(dst *kernel.Principal, principal kernel.Principal) error {
	if err := principal.Validate(); err != nil {
		return errors.Join(ErrPrincipalIsRequired, err)
	}
	*dst = principal
	return nil
}

func requireRole(principal kernel.Principal, action string, roles ...kernel.Role) error {
	for _, role := range roles {
		if principal.Is(role) {
			return nil
		}
	}
	return errs.NewForbiddenError(action, fmt.Sprintf("role %s is not allowed", principal.Role()))
}

// authorizeWarehouse lets admins and the managing warehouse manager read a
// warehouse's data. Anyone else who may manage warehouses gets not found.
func authorizeWarehouse(
	ctx context.Context,
	db *gorm.DB,
	principal kernel.Principal,
	action string,
	warehouseID kernel.UUID,
) error {
	if err := requireRole(principal, action, kernel.RoleAdmin, kernel.RoleWarehouseManager); err != nil {
		return err
	}

	var adminIDs []uuid.UUID
	err := db.WithContext(ctx).
		Raw(`SELECT admin_id FROM warehouses WHERE id = ? AND deleted_at IS NULL`, warehouseID.Bytes()).
		Scan(&adminIDs).Error
	if err != nil {
		return err
	}

	if len(adminIDs) == 0 || (!principal.IsAdmin() && adminIDs[0] != principal.UserID().Bytes()) {
		return errs.NewObjectNotFoundError("warehouse", warehouseID.String())
	}
	return nil
}

func validateNearby(radiusKm float64, limit int) error {
	return errors.Join(
		validateRadius(radiusKm),
		validateLimit(limit),
	)
}

func validateRadius(radiusKm float64) error {
	if radiusKm <= 0 || radiusKm > 20000 {
		return errs.NewValueIsOutOfRangeError("radius_km", radiusKm, 0, 20000)
	}
	return nil
}

func validateLimit(limit int) error {
	if limit < 1 || limit > MaxNearbyLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxNearbyLimit)
	}
	return nil
}
