// Package warehouse holds the Warehouse aggregate: a fulfilment location
// owned by one warehouse manager. Only active, approved warehouses accept
// orders.
package warehouse

import (
	"errors"
	"strings"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
)

var (
	ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse or RestoreWarehouse constructor")
	ErrWarehouseIsDeleted        = errors.New("warehouse is deleted")
)

type Warehouse struct {
	id         kernel.UUID
	adminID    kernel.UUID
	name       string
	address    string
	location   *kernel.GeoPoint
	isActive   bool
	isApproved bool
	deletedAt  *time.Time

	isConstructed bool
}

// NewWarehouse registers a warehouse. New warehouses are active but wait for
// admin approval before they can take orders.
func NewWarehouse(id kernel.UUID, adminID kernel.UUID, name string, address string, location *kernel.GeoPoint) (*Warehouse, error) {
	w := &Warehouse{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setAdminID(adminID),
		w.setName(name),
		w.setAddress(address),
		w.setLocation(location),
	); err != nil {
		return nil, err
	}

	return w, nil
}

func RestoreWarehouse(
	id kernel.UUID,
	adminID kernel.UUID,
	name string,
	address string,
	location *kernel.GeoPoint,
	isActive bool,
	isApproved bool,
	deletedAt *time.Time,
) (*Warehouse, error) {
	w, err := NewWarehouse(id, adminID, name, address, location)
	if err != nil {
		return nil, err
	}
	w.isActive = isActive
	w.isApproved = isApproved
	w.deletedAt = deletedAt
	return w, nil
}

func (w *Warehouse) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWarehouseIsNotConstructed
	}
	return nil
}

func (w *Warehouse) ID() kernel.UUID {
	return w.id
}

func (w *Warehouse) AdminID() kernel.UUID {
	return w.adminID
}

func (w *Warehouse) Name() string {
	return w.name
}

func (w *Warehouse) Address() string {
	return w.address
}

// Location returns nil when the warehouse has no registered coordinates.
func (w *Warehouse) Location() *kernel.GeoPoint {
	return w.location
}

func (w *Warehouse) IsActive() bool {
	return w.isActive
}

func (w *Warehouse) IsApproved() bool {
	return w.isApproved
}

func (w *Warehouse) DeletedAt() *time.Time {
	return w.deletedAt
}

func (w *Warehouse) IsManagedBy(userID kernel.UUID) bool {
	return w.adminID.IsEqual(userID)
}

// EnsureAcceptsOrders reports why the warehouse cannot take a new order.
func (w *Warehouse) EnsureAcceptsOrders() error {
	switch {
	case w.deletedAt != nil:
		return errs.NewObjectNotFoundError("warehouse", w.id.String())
	case !w.isActive:
		return errs.NewBusinessRuleError("warehouse", "Warehouse is not active")
	case !w.isApproved:
		return errs.NewBusinessRuleError("warehouse", "Warehouse is not approved")
	}
	return nil
}

func (w *Warehouse) Approve() error {
	if w.deletedAt != nil {
		return ErrWarehouseIsDeleted
	}
	w.isApproved = true
	return nil
}

func (w *Warehouse) Deactivate() {
	w.isActive = false
}

func (w *Warehouse) Activate() error {
	if w.deletedAt != nil {
		return ErrWarehouseIsDeleted
	}
	w.isActive = true
	return nil
}

func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Warehouse) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("admin_id", err)
	}
	w.adminID = adminID
	return nil
}

func (w *Warehouse) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}

func (w *Warehouse) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	w.address = address
	return nil
}

func (w *Warehouse) setLocation(location *kernel.GeoPoint) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
		loc := *location
		location = &loc
	}
	w.location = location
	return nil
}
