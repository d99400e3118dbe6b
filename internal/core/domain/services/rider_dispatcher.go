package services

import (
	"errors"
	"fmt"

	"stockway/internal/core/domain/model/delivery"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/rider"
	"stockway/internal/pkg/errs"
)

// DefaultAssignRadiusKm bounds automatic assignment.
const DefaultAssignRadiusKm = 50.0

// ErrRiderNotFound is returned when no rider qualifies for the delivery.
// This occurs when no riders are provided, none of them is available, none
// has a location, or all of them are outside the search radius.
var ErrRiderNotFound = errors.New("rider not found")

// ErrWarehouseHasNoLocation is returned when automatic assignment is asked
// for a warehouse that never registered its coordinates.
var ErrWarehouseHasNoLocation = errs.NewBusinessRuleError("warehouse_location", "Warehouse has no location")

// RiderDispatcher is a domain service responsible for finding and assigning
// the nearest available rider to an unassigned delivery.
//
// Key responsibilities:
//   - Validating the delivery and candidate riders
//   - Selecting the rider closest to the warehouse within the radius
//   - Marking the rider busy and attaching it to the delivery together
//
// Business rules:
//   - Only riders of the delivery's warehouse are considered
//   - Only available riders with a known location are considered
//   - Ties on distance are broken by the smaller rider id
//
// Example usage:
//
//	dispatcher := services.NewRiderDispatcher(services.DefaultAssignRadiusKm)
//	assigned, err := dispatcher.Dispatch(d, w.Location(), riders)
//	if errors.Is(err, services.ErrRiderNotFound) {
//	    // leave the delivery unassigned until the next run
//	}
type RiderDispatcher struct {
	radiusKm float64
}

// NewRiderDispatcher creates a dispatcher searching within radiusKm of the
// warehouse. A non-positive radius falls back to DefaultAssignRadiusKm.
func NewRiderDispatcher(radiusKm float64) RiderDispatcher {
	if radiusKm <= 0 {
		radiusKm = DefaultAssignRadiusKm
	}
	return RiderDispatcher{radiusKm: radiusKm}
}

func (d RiderDispatcher) RadiusKm() float64 {
	return d.radiusKm
}

// Dispatch finds the best rider and executes the assignment workflow.
//
// Parameters:
//   - leg: the unassigned delivery
//   - warehouseLocation: coordinates of the delivery's warehouse
//   - riders: candidates to consider
//
// Returns:
//   - *rider.Rider: the rider now assigned and busy
//   - error: ErrRiderNotFound, ErrWarehouseHasNoLocation, or validation and state errors
func (d RiderDispatcher) Dispatch(
	leg *delivery.Delivery,
	warehouseLocation *kernel.GeoPoint,
	riders []*rider.Rider,
) (*rider.Rider, error) {
	if err := leg.Validate(); err != nil {
		return nil, err
	}
	if leg.Status() != delivery.Unassigned {
		return nil, errs.NewBusinessRuleError("delivery_unassigned",
			fmt.Sprintf("Delivery is %s", leg.Status()))
	}
	if warehouseLocation == nil {
		return nil, ErrWarehouseHasNoLocation
	}

	best, err := d.findBestRider(leg.WarehouseID(), *warehouseLocation, riders)
	if err != nil {
		return nil, err
	}

	if err = best.MarkBusy(); err != nil {
		return nil, err
	}

	if err = leg.AssignRider(best.ID()); err != nil {
		return nil, err
	}

	return best, nil
}

// findBestRider returns the closest qualifying rider.
func (d RiderDispatcher) findBestRider(
	warehouseID kernel.UUID,
	warehouseLocation kernel.GeoPoint,
	riders []*rider.Rider,
) (*rider.Rider, error) {
	var (
		bestRider    *rider.Rider
		bestDistance float64
	)

	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}

		if !r.IsAvailable() || !r.WorksFor(warehouseID) || r.Location() == nil {
			continue
		}

		distance, err := r.Location().DistanceKm(warehouseLocation)
		if err != nil {
			return nil, err
		}

		if distance > d.radiusKm {
			continue
		}

		if bestRider == nil || distance < bestDistance ||
			(distance == bestDistance && r.ID().Less(bestRider.ID())) {
			bestRider = r
			bestDistance = distance
		}
	}

	if bestRider == nil {
		return nil, ErrRiderNotFound
	}

	return bestRider, nil
}
