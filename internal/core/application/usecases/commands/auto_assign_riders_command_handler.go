package commands

import (
	"context"
	"errors"

	"stockway/internal/core/domain/model/delivery"
	"stockway/internal/core/domain/services"
	"stockway/internal/core/ports"
	"stockway/internal/pkg/errs"
)

// AutoAssignRidersCommandHandler pairs unassigned deliveries with the
// nearest available rider of their warehouse.
//
// Deliveries and riders are claimed with SKIP LOCKED, one page of BatchSize
// legs at a time. A delivery that finds no rider stays unassigned for the
// next run and the pass moves on to the following page, so legs that cannot
// be served never hide newer ones.
type AutoAssignRidersCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.RiderDispatcher
}

func NewAutoAssignRidersCommandHandler(uowFactory UoWFactory, dispatcher services.RiderDispatcher) AutoAssignRidersCommandHandler {
	return AutoAssignRidersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle returns the number of deliveries that received a rider.
func (h AutoAssignRidersCommandHandler) Handle(ctx context.Context, cmd AutoAssignRidersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	assigned := 0
	var cursor *ports.DeliveryCursor
	for {
		legs, err := deliveryRepo.GetUnassignedForUpdate(ctx, cursor, cmd.BatchSize())
		if err != nil {
			return 0, err
		}

		for _, leg := range legs {
			ok, assignErr := h.assign(ctx, uow, leg)
			if assignErr != nil {
				return 0, assignErr
			}
			if ok {
				assigned++
			}
		}

		if len(legs) < cmd.BatchSize() {
			break
		}
		cursor = ports.CursorOf(legs[len(legs)-1])
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return assigned, nil
}

// assign reports false when the leg has to wait for a later run.
func (h AutoAssignRidersCommandHandler) assign(ctx context.Context, uow UoW, leg *delivery.Delivery) (bool, error) {
	w, err := uow.WarehouseRepository().Get(ctx, leg.WarehouseID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	riderRepo := uow.RiderRepository()
	riders, err := riderRepo.GetAvailableForUpdate(ctx, leg.WarehouseID())
	if err != nil {
		return false, err
	}

	r, err := h.dispatcher.Dispatch(leg, w.Location(), riders)
	if errors.Is(err, services.ErrRiderNotFound) || errors.Is(err, services.ErrWarehouseHasNoLocation) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = uow.DeliveryRepository().Update(ctx, leg); err != nil {
		return false, err
	}
	if err = riderRepo.Update(ctx, r); err != nil {
		return false, err
	}
	return true, nil
}
