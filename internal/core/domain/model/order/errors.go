package order

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError names the valid next states from From for Actor.
type InvalidTransitionError struct {
	From    Status
	To      Status
	Actor   Actor
	Allowed []Status
}

func (e *InvalidTransitionError) Error() string {
	valid := "none"
	if len(e.Allowed) > 0 {
		names := make([]string, 0, len(e.Allowed))
		for _, s := range e.Allowed {
			names = append(names, s.String())
		}
		valid = strings.Join(names, ", ")
	}
	return fmt.Sprintf("Invalid transition from %s to %s. Valid transitions from %s for %s: %s",
		e.From, e.To, e.From, e.Actor, valid)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
