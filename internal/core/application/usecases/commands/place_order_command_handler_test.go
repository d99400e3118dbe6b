package commands_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"stockway/internal/core/application/usecases/commands"
	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/order"
	"stockway/internal/core/domain/model/warehouse"
	"stockway/internal/core/domain/services"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	shopkeeper kernel.Principal
	warehouse  *warehouseFixture
	rice       *inventory.Item
	oil        *inventory.Item
	itemRepo   *MockItemRepository
	orderRepo  *MockOrderRepository
	uow        *MockUoW
	factory    *MockUoWFactory
}

type warehouseFixture struct {
	repo *MockWarehouseRepository
	id   kernel.UUID
}

func newCheckoutFixture(t *testing.T, riceStock int, oilStock int) checkoutFixture {
	t.Helper()

	w := approvedWarehouse(kernel.NewUUID(), nil)
	rice, err := inventory.NewItem(kernel.NewUUID(), w.ID(), "Rice 5kg", "RICE-5", decimal.RequireFromString("100.00"), riceStock)
	require.NoError(t, err)
	oil, err := inventory.NewItem(kernel.NewUUID(), w.ID(), "Sunflower Oil", "OIL-1", decimal.RequireFromString("45.00"), oilStock)
	require.NoError(t, err)

	whRepo := new(MockWarehouseRepository)
	whRepo.On("Get", mock.Anything, w.ID()).Return(w, nil)

	f := checkoutFixture{
		shopkeeper: mustPrincipal(kernel.RoleShopkeeper),
		warehouse:  &warehouseFixture{repo: whRepo, id: w.ID()},
		rice:       rice,
		oil:        oil,
		itemRepo:   new(MockItemRepository),
		orderRepo:  new(MockOrderRepository),
		uow:        new(MockUoW),
		factory:    new(MockUoWFactory),
	}

	f.uow.On("WarehouseRepository").Return(whRepo).Maybe()
	f.uow.On("OrderRepository").Return(f.orderRepo).Maybe()
	f.uow.On("ItemRepository").Return(f.itemRepo).Maybe()
	f.factory.On("Create").Return(f.uow).Once()

	return f
}

func (f checkoutFixture) command(t *testing.T, key string, riceQty int, oilQty int) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(f.shopkeeper, kernel.NewUUID(), f.warehouse.id, []services.RequestedLine{
		{ItemID: f.rice.ID(), Quantity: riceQty},
		{ItemID: f.oil.ID(), Quantity: oilQty},
	}, key)
	require.NoError(t, err)
	return cmd
}

func sortedIDs(ids []kernel.UUID) bool {
	for i := 1; i < len(ids); i++ {
		if !ids[i-1].Less(ids[i]) {
			return false
		}
	}
	return true
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 10, 20)
	cmd := f.command(t, "", 5, 3)

	var placed *order.Order
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.orderRepo.On("ExistsOpen", ctx, f.shopkeeper.UserID(), f.warehouse.id).Return(false, nil).Once(),
		f.itemRepo.On("GetForUpdate", ctx, mock.MatchedBy(sortedIDs)).
			Return([]*inventory.Item{f.rice, f.oil}, nil).Once(),
		f.itemRepo.On("Update", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil).Twice(),
		f.orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { placed = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewPlaceOrderCommandHandler(f.factory, nil, slog.Default())
	orderID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID(), orderID)
	require.NotNil(t, placed)
	assert.Equal(t, order.Pending, placed.Status())
	assert.Equal(t, "635.00", placed.TotalAmount().StringFixed(2))
	assert.Equal(t, 5, f.rice.Quantity())
	assert.Equal(t, 17, f.oil.Quantity())
	f.itemRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_RemembersIdempotencyKey(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 10, 20)
	cmd := f.command(t, "checkout-1", 1, 1)

	store := new(MockIdempotencyStore)
	store.On("Lookup", ctx, f.shopkeeper.UserID(), "checkout-1").Return(kernel.UUID{}, false, nil).Once()
	store.On("Remember", ctx, f.shopkeeper.UserID(), "checkout-1", cmd.OrderID()).Return(nil).Once()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orderRepo.On("ExistsOpen", ctx, f.shopkeeper.UserID(), f.warehouse.id).Return(false, nil).Once()
	f.itemRepo.On("GetForUpdate", ctx, mock.Anything).Return([]*inventory.Item{f.rice, f.oil}, nil).Once()
	f.itemRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.orderRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewPlaceOrderCommandHandler(f.factory, store, slog.Default())
	orderID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID(), orderID)
	store.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_IdempotentReplay(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 10, 20)
	cmd := f.command(t, "checkout-1", 1, 1)
	firstOrderID := kernel.NewUUID()

	store := new(MockIdempotencyStore)
	store.On("Lookup", ctx, f.shopkeeper.UserID(), "checkout-1").Return(firstOrderID, true, nil).Once()

	factory := new(MockUoWFactory)
	handler := commands.NewPlaceOrderCommandHandler(factory, store, slog.Default())
	orderID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, firstOrderID, orderID)
	factory.AssertNotCalled(t, "Create")
	store.AssertNotCalled(t, "Remember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func expectCheckout(f checkoutFixture, ctx any) {
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orderRepo.On("ExistsOpen", ctx, f.shopkeeper.UserID(), f.warehouse.id).Return(false, nil).Once()
	f.itemRepo.On("GetForUpdate", ctx, mock.Anything).Return([]*inventory.Item{f.rice, f.oil}, nil).Once()
	f.itemRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.orderRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
}

func TestPlaceOrderCommandHandler_Handle_KeyOfAnotherShopkeeperPlacesNewOrder(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 10, 20)
	cmd := f.command(t, "checkout-1", 1, 1)

	// Another shopkeeper used "checkout-1"; the store only answers per shopkeeper.
	store := new(MockIdempotencyStore)
	store.On("Lookup", ctx, f.shopkeeper.UserID(), "checkout-1").Return(kernel.UUID{}, false, nil).Once()
	store.On("Remember", ctx, f.shopkeeper.UserID(), "checkout-1", cmd.OrderID()).Return(nil).Once()
	expectCheckout(f, ctx)

	handler := commands.NewPlaceOrderCommandHandler(f.factory, store, slog.Default())
	orderID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID(), orderID)
	f.orderRepo.AssertCalled(t, "Add", ctx, mock.Anything)
	store.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_StoreUnavailable(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 10, 20)
	cmd := f.command(t, "checkout-1", 5, 3)
	unavailable := errors.New("dial tcp: connection refused")

	store := new(MockIdempotencyStore)
	store.On("Lookup", ctx, f.shopkeeper.UserID(), "checkout-1").Return(kernel.UUID{}, false, unavailable).Once()
	store.On("Remember", ctx, f.shopkeeper.UserID(), "checkout-1", cmd.OrderID()).Return(unavailable).Once()
	expectCheckout(f, ctx)

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	handler := commands.NewPlaceOrderCommandHandler(f.factory, store, logger)
	orderID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID(), orderID)
	assert.Equal(t, 5, f.rice.Quantity())
	assert.Equal(t, 17, f.oil.Quantity())
	assert.Contains(t, logs.String(), "idempotency lookup failed")
	assert.Contains(t, logs.String(), "idempotency remember failed")
	assert.Contains(t, logs.String(), "connection refused")
	f.uow.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 2, 20)
	cmd := f.command(t, "", 5, 3)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orderRepo.On("ExistsOpen", ctx, f.shopkeeper.UserID(), f.warehouse.id).Return(false, nil).Once()
	f.itemRepo.On("GetForUpdate", ctx, mock.Anything).Return([]*inventory.Item{f.rice, f.oil}, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewPlaceOrderCommandHandler(f.factory, nil, slog.Default())
	_, err := handler.Handle(ctx, cmd)

	var shortage *inventory.InsufficientStockError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortfalls, 1)
	assert.Equal(t, f.rice.ID(), shortage.Shortfalls[0].ItemID)
	assert.Equal(t, 2, shortage.Shortfalls[0].Available)
	assert.Equal(t, 5, shortage.Shortfalls[0].Requested)
	assert.Equal(t, 2, f.rice.Quantity())
	assert.Equal(t, 20, f.oil.Quantity())
	f.itemRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_DuplicateOpenOrder(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 10, 20)
	cmd := f.command(t, "", 1, 1)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orderRepo.On("ExistsOpen", ctx, f.shopkeeper.UserID(), f.warehouse.id).Return(true, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewPlaceOrderCommandHandler(f.factory, nil, slog.Default())
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrDuplicateOpenOrder)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Contains(t, err.Error(), "You already have a pending or accepted order with this warehouse")
	f.itemRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_WarehouseNotApproved(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 10, 20)
	cmd := f.command(t, "", 1, 1)

	pending, err := warehouse.RestoreWarehouse(f.warehouse.id, kernel.NewUUID(), "Central", "1 Dock Rd", nil, true, false, nil)
	require.NoError(t, err)
	whRepo := new(MockWarehouseRepository)
	whRepo.On("Get", ctx, f.warehouse.id).Return(pending, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WarehouseRepository").Return(whRepo).Maybe()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceOrderCommandHandler(factory, nil, slog.Default())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusinessRuleBroken)
	assert.Contains(t, err.Error(), "Warehouse is not approved")
}

func TestPlaceOrderCommandHandler_Handle_WarehouseNotFound(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 10, 20)
	cmd := f.command(t, "", 1, 1)

	whRepo := new(MockWarehouseRepository)
	whRepo.On("Get", ctx, f.warehouse.id).
		Return(nil, errs.NewObjectNotFoundError("warehouse", f.warehouse.id.String())).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WarehouseRepository").Return(whRepo).Maybe()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceOrderCommandHandler(factory, nil, slog.Default())
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestPlaceOrderCommandHandler_Handle_ForbiddenForOtherRoles(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(mustPrincipal(kernel.RoleRider), kernel.NewUUID(), kernel.NewUUID(),
		[]services.RequestedLine{{ItemID: kernel.NewUUID(), Quantity: 1}}, "")
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	handler := commands.NewPlaceOrderCommandHandler(factory, nil, slog.Default())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{}

	factory := new(MockUoWFactory)
	handler := commands.NewPlaceOrderCommandHandler(factory, nil, slog.Default())
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 10, 20)
	cmd := f.command(t, "", 1, 1)

	f.uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	handler := commands.NewPlaceOrderCommandHandler(f.factory, nil, slog.Default())
	_, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
