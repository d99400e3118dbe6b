package rider

import (
	"fmt"
	"slices"
	"strings"

	"stockway/internal/pkg/errs"
)

type Status string

const (
	Available Status = "available"
	Busy      Status = "busy"
	Inactive  Status = "inactive"
)

func AllStatuses() []Status {
	return []Status{Available, Busy, Inactive}
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
		return errs.NewValueIsInvalidErrorWithCause("rider_status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
