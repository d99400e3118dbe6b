package delivery

import (
	"fmt"
	"slices"

	"stockway/internal/pkg/errs"
)

// Status is the state of the delivery leg of an accepted order.
type Status string

const (
	Unassigned Status = "unassigned"
	Assigned   Status = "assigned"
	InTransit  Status = "in_transit"
	Delivered  Status = "delivered"
	Cancelled  Status = "cancelled"
)

func AllStatuses() []Status {
	return []Status{Unassigned, Assigned, InTransit, Delivered, Cancelled}
}

func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("delivery_status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
