package commands

import (
	"context"
	"errors"
	"log/slog"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/payment"
	"stockway/internal/core/domain/services"
	"stockway/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler marks an order delivered and pays the rider.
//
// Within one transaction, holding the order row lock:
//   - order in_transit -> delivered, delivery leg delivered with its fee
//   - payout = base rate + rounded distance * per-km rate
//   - rider earnings credited and rider made available
//   - pending warehouse_to_rider payment recorded
//
// A second completion of the same order fails on the state machine, so the
// rider is credited once per delivered order.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	calculator services.PayoutCalculator
	logger     *slog.Logger
}

func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	calculator services.PayoutCalculator,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		logger:     logger.With("component", "complete-delivery"),
	}
}

// Handle returns the recorded payout. When the rider profile is missing the
// order is still delivered and the returned payment is nil.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	principal := cmd.Principal()
	if err := requireRole(principal, "complete delivery", kernel.RoleRider); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, leg, err := loadRiderOrder(ctx, uow, principal, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.MarkDelivered(); err != nil {
		return nil, err
	}

	w, err := uow.WarehouseRepository().Get(ctx, o.WarehouseID())
	if err != nil {
		return nil, err
	}

	riderRepo := uow.RiderRepository()
	r, err := riderRepo.GetForUpdate(ctx, principal.UserID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	var payout *payment.Payment
	if r == nil {
		h.logger.WarnContext(ctx, "rider profile missing, delivery completed without payout",
			"order_id", o.ID().String(), "rider_id", principal.UserID().String())

		if err = leg.Complete(leg.DeliveryFee()); err != nil {
			return nil, err
		}
	} else {
		computed, calcErr := h.calculator.Calculate(r.Location(), w.Location())
		if calcErr != nil {
			return nil, calcErr
		}

		if err = leg.Complete(computed.Amount); err != nil {
			return nil, err
		}
		if err = r.Credit(computed.Amount); err != nil {
			return nil, err
		}

		payout, err = payment.NewRiderPayout(kernel.NewUUID(), w.AdminID(), r.ID(), o.ID(),
			computed.Amount, computed.DistanceKm)
		if err != nil {
			return nil, err
		}

		if err = riderRepo.Update(ctx, r); err != nil {
			return nil, err
		}
		if err = uow.PaymentRepository().Add(ctx, payout); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.DeliveryRepository().Update(ctx, leg); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if payout != nil {
		h.logger.InfoContext(ctx, "rider paid",
			"order_id", o.ID().String(),
			"rider_id", r.ID().String(),
			"amount", payout.Amount().StringFixed(2),
			"distance_km", payout.DistanceKm().StringFixed(2))
	}

	return payout, nil
}
