package commands

import (
	"errors"
	"fmt"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/warehouse"
	"stockway/internal/pkg/errs"
)

// ErrOrderNotAssignedToRider hides whether the order exists from riders who
// do not carry it.
var ErrOrderNotAssignedToRider = fmt.Errorf("%w: Order not found or not assigned to you", errs.ErrObjectNotFound)

var ErrPrincipalIsRequired = errs.NewValueIsRequiredError("principal")

func requireRole(principal kernel.Principal, action string, roles ...kernel.Role) error {
	for _, role := range roles {
		if principal.Is(role) {
			return nil
		}
	}
	return errs.NewForbiddenError(action, fmt.Sprintf("role %s is not allowed", principal.Role()))
}

// authorizeWarehouse lets admins and the managing warehouse manager act on a
// warehouse. Other managers get not found so warehouse ids do not leak.
func authorizeWarehouse(principal kernel.Principal, action string, w *warehouse.Warehouse) error {
	if err := requireRole(principal, action, kernel.RoleAdmin, kernel.RoleWarehouseManager); err != nil {
		return err
	}
	if principal.IsAdmin() || w.IsManagedBy(principal.UserID()) {
		return nil
	}
	return errs.NewObjectNotFoundError("warehouse", w.ID().String())
}

// notFoundAs replaces an ObjectNotFound error with replacement and passes
// every other error through.
func notFoundAs(err error, replacement error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return replacement
	}
	return err
}

func setPrincipal(dst *kernel.Principal, principal kernel.Principal) error {
	if err := principal.Validate(); err != nil {
		return errors.Join(ErrPrincipalIsRequired, err)
	}
	*dst = principal
	return nil
}
