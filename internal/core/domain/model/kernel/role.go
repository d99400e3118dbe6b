package kernel

import (
	"fmt"

	"stockway/internal/pkg/errs"
)

// Role is the marketplace role asserted by the identity provider.
type Role string

const (
	RoleShopkeeper       Role = "SHOPKEEPER"
	RoleRider            Role = "RIDER"
	RoleWarehouseManager Role = "WAREHOUSE_MANAGER"
	RoleAdmin            Role = "ADMIN"
)

func RoleFromString(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleShopkeeper, RoleRider, RoleWarehouseManager, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}
