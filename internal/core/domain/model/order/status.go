package order

import (
	"fmt"
	"slices"
	"strings"

	"stockway/internal/pkg/errs"
)

// Status is the lifecycle state of an order, stored as its string value.
type Status string

const (
	Pending   Status = "pending"
	Accepted  Status = "accepted"
	Rejected  Status = "rejected"
	InTransit Status = "in_transit"
	Delivered Status = "delivered"
	Cancelled Status = "cancelled"
	Failed    Status = "failed"
)

// Actor is the kind of party attempting a transition.
type Actor int

const (
	// ActorWarehouse is the manager owning the warehouse, or an admin.
	ActorWarehouse Actor = iota + 1
	// ActorShopkeeper is the shopkeeper who placed the order.
	ActorShopkeeper
	// ActorRider is the rider assigned to the order's delivery leg.
	ActorRider
)

func (a Actor) String() string {
	switch a {
	case ActorWarehouse:
		return "warehouse"
	case ActorShopkeeper:
		return "shopkeeper"
	case ActorRider:
		return "rider"
	default:
		return "unknown"
	}
}

// transitions is the complete table of permitted moves. Anything absent is
// rejected with InvalidTransitionError.
var transitions = map[Actor]map[Status][]Status{
	ActorWarehouse: {
		Pending: {Accepted, Rejected},
	},
	ActorShopkeeper: {
		Pending:  {Cancelled},
		Accepted: {Cancelled},
	},
	ActorRider: {
		Accepted:  {InTransit},
		InTransit: {Delivered},
	},
}

func AllStatuses() []Status {
	return []Status{Pending, Accepted, Rejected, InTransit, Delivered, Cancelled, Failed}
}

func StatusFromString(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsOpen reports whether the order still blocks a new order from the same
// shopkeeper against the same warehouse.
func (s Status) IsOpen() bool {
	return s == Pending || s == Accepted
}

func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Rejected, Cancelled, Failed:
		return true
	default:
		return false
	}
}

// AllowedTransitions lists the next states actor may move the order to.
func (s Status) AllowedTransitions(actor Actor) []Status {
	return slices.Clone(transitions[actor][s])
}

// TransitionTo validates the move from s to next for actor and returns next.
func (s Status) TransitionTo(actor Actor, next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}

	allowed := s.AllowedTransitions(actor)
	if !slices.Contains(allowed, next) {
		return "", &InvalidTransitionError{
			From:    s,
			To:      next,
			Actor:   actor,
			Allowed: allowed,
		}
	}

	return next, nil
}
