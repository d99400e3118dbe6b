package commands

import (
	"errors"

	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"
)

var ErrAutoAssignRidersCommandIsNotConstructed = errors.New(
	"AutoAssignRidersCommand must be created via NewAutoAssignRidersCommand constructor",
)

// AutoAssignRidersCommand triggers one pass of nearest-rider assignment over
// the oldest unassigned deliveries. Issued by the background job.
type AutoAssignRidersCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewAutoAssignRidersCommand(batchSize int) (AutoAssignRidersCommand, error) {
	if batchSize <= 0 {
		return AutoAssignRidersCommand{}, errs.NewValueIsOutOfRangeError("batch_size", batchSize, 1, "unbounded")
	}
	return AutoAssignRidersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AutoAssignRidersCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignRidersCommandIsNotConstructed)
}

func (c AutoAssignRidersCommand) BatchSize() int {
	return c.batchSize
}
