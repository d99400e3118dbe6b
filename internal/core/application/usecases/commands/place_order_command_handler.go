package commands

import (
	"context"
	"log/slog"
	"slices"

	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/order"
	"stockway/internal/core/domain/services"
	"stockway/internal/core/ports"
	"stockway/internal/pkg/errs"
)

// ErrDuplicateOpenOrder is returned when the shopkeeper still has a pending
// or accepted order with the same warehouse.
var ErrDuplicateOpenOrder = errs.NewConflictError("order",
	"You already have a pending or accepted order with this warehouse")

// PlaceOrderCommandHandler runs checkout: it validates the warehouse,
// reserves stock under row locks and persists the order with its lines, all
// in one transaction.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, idempotencyStore, logger)
//	orderID, err := handler.Handle(ctx, cmd)
//	var shortage *inventory.InsufficientStockError
//	switch {
//	case errors.As(err, &shortage):
//	    // 422 with shortage.Shortfalls
//	case errors.Is(err, errs.ErrConflict):
//	    // duplicate open order
//	}
type PlaceOrderCommandHandler struct {
	uowFactory  UoWFactory
	idempotency ports.IdempotencyStore
	reserver    services.StockReserver
	logger      *slog.Logger
}

// NewPlaceOrderCommandHandler creates the checkout handler. idempotency may
// be nil, in which case Idempotency-Key is ignored. Store failures are logged
// and checkout proceeds without replay protection.
func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	idempotency ports.IdempotencyStore,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		reserver:    services.NewStockReserver(),
		logger:      logger.With("component", "place-order"),
	}
}

// Handle places the order and returns its id. When the command carries an
// idempotency key that already produced an order for the same shopkeeper,
// that order's id is returned and nothing else happens.
//
// Checks run before any write, in this order:
//   - caller is a shopkeeper
//   - warehouse exists, is active and is approved
//   - no open order for (shopkeeper, warehouse)
//   - reservation checks (items exist, belong to the warehouse, have stock)
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	principal := cmd.Principal()
	if err := requireRole(principal, "place order", kernel.RoleShopkeeper); err != nil {
		return kernel.UUID{}, err
	}

	if existing, ok := h.lookup(ctx, principal.UserID(), cmd.IdempotencyKey()); ok {
		return existing, nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	w, err := uow.WarehouseRepository().Get(ctx, cmd.WarehouseID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = w.EnsureAcceptsOrders(); err != nil {
		return kernel.UUID{}, err
	}

	orderRepo := uow.OrderRepository()
	exists, err := orderRepo.ExistsOpen(ctx, principal.UserID(), w.ID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if exists {
		return kernel.UUID{}, ErrDuplicateOpenOrder
	}

	requested := cmd.Lines()
	ids := make([]kernel.UUID, 0, len(requested))
	for _, r := range requested {
		ids = append(ids, r.ItemID)
	}
	slices.SortFunc(ids, compareUUID)

	itemRepo := uow.ItemRepository()
	items, err := itemRepo.GetForUpdate(ctx, ids)
	if err != nil {
		return kernel.UUID{}, err
	}

	lines, err := h.reserver.Reserve(w.ID(), requested, items)
	if err != nil {
		return kernel.UUID{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), principal.UserID(), w.ID(), lines)
	if err != nil {
		return kernel.UUID{}, err
	}

	for _, item := range reservedItems(items, requested) {
		if err = itemRepo.Update(ctx, item); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	h.remember(ctx, principal.UserID(), cmd.IdempotencyKey(), o.ID())

	return o.ID(), nil
}

func (h PlaceOrderCommandHandler) lookup(ctx context.Context, shopkeeperID kernel.UUID, key string) (kernel.UUID, bool) {
	if h.idempotency == nil || key == "" {
		return kernel.UUID{}, false
	}

	orderID, ok, err := h.idempotency.Lookup(ctx, shopkeeperID, key)
	if err != nil {
		h.logger.WarnContext(ctx, "idempotency lookup failed, placing order without replay check",
			"shopkeeper_id", shopkeeperID.String(), "error", err)
		return kernel.UUID{}, false
	}
	return orderID, ok
}

// remember runs after commit, so a failure only costs replay protection.
func (h PlaceOrderCommandHandler) remember(ctx context.Context, shopkeeperID kernel.UUID, key string, orderID kernel.UUID) {
	if h.idempotency == nil || key == "" {
		return
	}

	if err := h.idempotency.Remember(ctx, shopkeeperID, key, orderID); err != nil {
		h.logger.WarnContext(ctx, "idempotency remember failed",
			"shopkeeper_id", shopkeeperID.String(), "order_id", orderID.String(), "error", err)
	}
}

func reservedItems(items []*inventory.Item, requested []services.RequestedLine) []*inventory.Item {
	wanted := make(map[kernel.UUID]struct{}, len(requested))
	for _, r := range requested {
		wanted[r.ItemID] = struct{}{}
	}

	out := make([]*inventory.Item, 0, len(requested))
	for _, item := range items {
		if _, ok := wanted[item.ID()]; ok {
			out = append(out, item)
		}
	}
	return out
}

func compareUUID(a, b kernel.UUID) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
