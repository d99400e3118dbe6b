package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "stockway/internal/adapters/out/postgres"
	"stockway/internal/core/application/usecases/queries"
	"stockway/internal/core/domain/model/delivery"
	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/order"
	"stockway/internal/core/domain/model/payment"
	"stockway/internal/core/domain/model/rider"
	"stockway/internal/core/domain/model/user"
	"stockway/internal/core/domain/model/warehouse"
	"stockway/internal/core/ports"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_items, orders, items, deliveries, riders, payments, " +
		"warehouses, users, outbox_messages").Error
	suite.Require().NoError(err)
}

// fixture is a warehouse with two items, one shopkeeper order on it and an
// assigned rider.
type fixture struct {
	manager    kernel.Principal
	shopkeeper kernel.Principal
	rider      kernel.Principal
	warehouse  *warehouse.Warehouse
	rice, oil  *inventory.Item
	order      *order.Order
}

func (suite *QueryHandlersTestSuite) seedFixture() fixture {
	f := fixture{
		manager:    mustPrincipal(kernel.RoleWarehouseManager),
		shopkeeper: mustPrincipal(kernel.RoleShopkeeper),
		rider:      mustPrincipal(kernel.RoleRider),
	}
	f.warehouse = suite.mustWarehouse(f.manager.UserID(), "Central", point(0, 0), true, true)

	var err error
	f.rice, err = inventory.NewItem(kernel.NewUUID(), f.warehouse.ID(), "Rice 5kg", "RICE-5KG", decimal.RequireFromString("100.00"), 5)
	suite.Require().NoError(err)
	f.oil, err = inventory.NewItem(kernel.NewUUID(), f.warehouse.ID(), "Oil 1L", "OIL-1L", decimal.RequireFromString("45.00"), 17)
	suite.Require().NoError(err)

	riceLine, err := order.NewLine(kernel.NewUUID(), f.rice.ID(), 5, f.rice.Price())
	suite.Require().NoError(err)
	oilLine, err := order.NewLine(kernel.NewUUID(), f.oil.ID(), 3, f.oil.Price())
	suite.Require().NoError(err)
	f.order, err = order.NewOrder(kernel.NewUUID(), f.shopkeeper.UserID(), f.warehouse.ID(), []*order.Line{riceLine, oilLine})
	suite.Require().NoError(err)
	suite.Require().NoError(f.order.Accept())

	shopkeeperProfile, err := user.NewUser(f.shopkeeper.UserID(), "Shop@Example.com", "Corner Shop", "+100200300", kernel.RoleShopkeeper)
	suite.Require().NoError(err)

	riderID := f.rider.UserID()
	leg, err := delivery.NewDelivery(f.order.ID(), f.warehouse.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(leg.AssignRider(riderID))
	r, err := rider.NewRider(riderID, f.warehouse.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(r.MarkBusy())

	suite.seed(func(ctx context.Context, uow ports.UnitOfWork) error {
		if err := uow.ItemRepository().Add(ctx, f.rice); err != nil {
			return err
		}
		if err := uow.ItemRepository().Add(ctx, f.oil); err != nil {
			return err
		}
		if err := uow.UserRepository().Add(ctx, shopkeeperProfile); err != nil {
			return err
		}
		if err := uow.OrderRepository().Add(ctx, f.order); err != nil {
			return err
		}
		if err := uow.RiderRepository().Add(ctx, r); err != nil {
			return err
		}
		return uow.DeliveryRepository().Add(ctx, leg)
	})

	return f
}

func (suite *QueryHandlersTestSuite) TestGetOrder_Hydrated() {
	f := suite.seedFixture()
	handler := queries.NewGetOrderQueryHandler(suite.db)

	q, err := queries.NewGetOrderQuery(f.shopkeeper, f.order.ID())
	suite.Require().NoError(err)
	resp, err := handler.Handle(context.Background(), q)
	suite.Require().NoError(err)

	suite.Equal(f.order.ID(), resp.ID)
	suite.Equal("accepted", resp.Status)
	suite.Equal("635.00", resp.TotalAmount.StringFixed(2))
	suite.Equal("shop@example.com", resp.Shopkeeper.Email)
	suite.Equal("+100200300", resp.Shopkeeper.PhoneNumber)
	suite.Equal("Central", resp.Warehouse.Name)
	suite.Require().Len(resp.Lines, 2)
	suite.Equal("Rice 5kg", resp.Lines[0].Name)
	suite.Equal("RICE-5KG", resp.Lines[0].SKU)
	suite.Equal("500.00", resp.Lines[0].Total.StringFixed(2))
	suite.Equal("OIL-1L", resp.Lines[1].SKU)
	suite.Require().NotNil(resp.Delivery)
	suite.Equal("assigned", resp.Delivery.Status)
	suite.Require().NotNil(resp.Delivery.RiderID)
	suite.Equal(f.rider.UserID(), *resp.Delivery.RiderID)
}

func (suite *QueryHandlersTestSuite) TestGetOrder_Visibility() {
	f := suite.seedFixture()
	handler := queries.NewGetOrderQueryHandler(suite.db)

	tests := []struct {
		name    string
		viewer  kernel.Principal
		visible bool
	}{
		{name: "owner", viewer: f.shopkeeper, visible: true},
		{name: "warehouse manager", viewer: f.manager, visible: true},
		{name: "assigned rider", viewer: f.rider, visible: true},
		{name: "admin", viewer: mustPrincipal(kernel.RoleAdmin), visible: true},
		{name: "other shopkeeper", viewer: mustPrincipal(kernel.RoleShopkeeper)},
		{name: "other manager", viewer: mustPrincipal(kernel.RoleWarehouseManager)},
		{name: "other rider", viewer: mustPrincipal(kernel.RoleRider)},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			q, err := queries.NewGetOrderQuery(tt.viewer, f.order.ID())
			suite.Require().NoError(err)

			_, err = handler.Handle(context.Background(), q)
			if tt.visible {
				suite.NoError(err)
			} else {
				suite.ErrorIs(err, errs.ErrObjectNotFound)
			}
		})
	}
}

func (suite *QueryHandlersTestSuite) TestListShopkeeperOrders() {
	f := suite.seedFixture()
	handler := queries.NewListShopkeeperOrdersQueryHandler(suite.db)

	q, err := queries.NewListShopkeeperOrdersQuery(f.shopkeeper)
	suite.Require().NoError(err)
	orders, err := handler.Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(2, orders[0].ItemCount)
	suite.Equal("Central", orders[0].WarehouseName)

	q, err = queries.NewListShopkeeperOrdersQuery(mustPrincipal(kernel.RoleShopkeeper))
	suite.Require().NoError(err)
	orders, err = handler.Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Empty(orders)

	q, err = queries.NewListShopkeeperOrdersQuery(f.rider)
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), q)
	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueryHandlersTestSuite) TestListWarehouseOrders_StatusFilter() {
	f := suite.seedFixture()
	handler := queries.NewListWarehouseOrdersQueryHandler(suite.db)
	ctx := context.Background()

	q, err := queries.NewListWarehouseOrdersQuery(f.manager, f.warehouse.ID(), "accepted")
	suite.Require().NoError(err)
	orders, err := handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Len(orders, 1)
	suite.Equal("shop@example.com", orders[0].ShopkeeperEmail)

	q, err = queries.NewListWarehouseOrdersQuery(f.manager, f.warehouse.ID(), "pending")
	suite.Require().NoError(err)
	orders, err = handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Empty(orders)

	q, err = queries.NewListWarehouseOrdersQuery(mustPrincipal(kernel.RoleWarehouseManager), f.warehouse.ID(), "")
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, q)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	q, err = queries.NewListWarehouseOrdersQuery(f.shopkeeper, f.warehouse.ID(), "")
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, q)
	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueryHandlersTestSuite) TestListItems_IncludeDeleted() {
	f := suite.seedFixture()
	handler := queries.NewListItemsQueryHandler(suite.db)
	ctx := context.Background()

	suite.Require().NoError(f.oil.SoftDelete(time.Now().UTC()))
	suite.seed(func(ctx context.Context, uow ports.UnitOfWork) error {
		return uow.ItemRepository().Update(ctx, f.oil)
	})

	q, err := queries.NewListItemsQuery(f.shopkeeper, f.warehouse.ID(), false)
	suite.Require().NoError(err)
	items, err := handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal("RICE-5KG", items[0].SKU)

	q, err = queries.NewListItemsQuery(f.manager, f.warehouse.ID(), true)
	suite.Require().NoError(err)
	items, err = handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.True(items[0].IsDeleted, "Oil sorts before Rice")

	q, err = queries.NewListItemsQuery(f.shopkeeper, f.warehouse.ID(), true)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, q)
	suite.ErrorIs(err, errs.ErrForbidden)

	q, err = queries.NewListItemsQuery(f.shopkeeper, kernel.NewUUID(), false)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, q)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestFindNearbyWarehouses_OrderedByDistanceThenID() {
	admin := kernel.NewUUID()
	near := suite.mustWarehouse(admin, "Near", point(0, 0.1), true, true)
	twinA := suite.mustWarehouse(admin, "Twin A", point(0, 0.2), true, true)
	twinB := suite.mustWarehouse(admin, "Twin B", point(0, 0.2), true, true)
	suite.mustWarehouse(admin, "Far", point(0, 2), true, true)
	suite.mustWarehouse(admin, "Unapproved", point(0, 0.05), true, false)
	suite.mustWarehouse(admin, "Inactive", point(0, 0.05), false, true)
	suite.mustWarehouse(admin, "Nowhere", nil, true, true)

	handler := queries.NewFindNearbyWarehousesQueryHandler(suite.db)
	origin := point(0, 0)

	q, err := queries.NewFindNearbyWarehousesQuery(origin, 50, 10)
	suite.Require().NoError(err)
	result, err := handler.Handle(context.Background(), q)
	suite.Require().NoError(err)

	suite.Require().Len(result, 3)
	suite.Equal(near.ID(), result[0].ID)
	suite.InDelta(11.12, result[0].DistanceKm, 0.001)
	first, second := twinA.ID(), twinB.ID()
	if second.Less(first) {
		first, second = second, first
	}
	suite.Equal(first, result[1].ID)
	suite.Equal(second, result[2].ID)

	q, err = queries.NewFindNearbyWarehousesQuery(origin, 50, 1)
	suite.Require().NoError(err)
	result, err = handler.Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Len(result, 1)

	q, err = queries.NewFindNearbyWarehousesQuery(nil, 50, 10)
	suite.Require().NoError(err)
	result, err = handler.Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *QueryHandlersTestSuite) TestFindNearbyRiders() {
	manager := mustPrincipal(kernel.RoleWarehouseManager)
	w := suite.mustWarehouse(manager.UserID(), "Central", point(0, 0), true, true)
	nowhere := suite.mustWarehouse(manager.UserID(), "Nowhere", nil, true, true)

	near := suite.mustRider(w.ID(), point(0, 0.1), rider.Available)
	suite.mustRider(w.ID(), point(0, 0.05), rider.Busy)
	suite.mustRider(w.ID(), point(0, 1), rider.Available)
	suite.mustRider(w.ID(), nil, rider.Available)
	suite.mustRider(nowhere.ID(), point(0, 0), rider.Available)

	handler := queries.NewFindNearbyRidersQueryHandler(suite.db)

	q, err := queries.NewFindNearbyRidersQuery(manager, w.ID(), 50, 10)
	suite.Require().NoError(err)
	result, err := handler.Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(near, result[0].RiderID)

	q, err = queries.NewFindNearbyRidersQuery(manager, nowhere.ID(), 50, 10)
	suite.Require().NoError(err)
	result, err = handler.Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *QueryHandlersTestSuite) TestListRiderDeliveriesAndPayouts() {
	f := suite.seedFixture()
	ctx := context.Background()

	payout, err := payment.NewRiderPayout(kernel.NewUUID(), f.manager.UserID(), f.rider.UserID(), f.order.ID(),
		decimal.RequireFromString("161.20"), decimal.RequireFromString("11.12"))
	suite.Require().NoError(err)
	suite.seed(func(ctx context.Context, uow ports.UnitOfWork) error {
		return uow.PaymentRepository().Add(ctx, payout)
	})

	dq, err := queries.NewListRiderDeliveriesQuery(f.rider)
	suite.Require().NoError(err)
	legs, err := queries.NewListRiderDeliveriesQueryHandler(suite.db).Handle(ctx, dq)
	suite.Require().NoError(err)
	suite.Require().Len(legs, 1)
	suite.Equal(f.order.ID(), legs[0].OrderID)
	suite.Equal("assigned", legs[0].DeliveryStatus)
	suite.Equal("1 Dock Rd", legs[0].WarehouseAddress)

	pq, err := queries.NewListWarehousePayoutsQuery(f.manager, f.warehouse.ID())
	suite.Require().NoError(err)
	payouts, err := queries.NewListWarehousePayoutsQueryHandler(suite.db).Handle(ctx, pq)
	suite.Require().NoError(err)
	suite.Require().Len(payouts, 1)
	suite.Equal(f.rider.UserID(), payouts[0].RiderID)
	suite.Equal("161.20", payouts[0].Amount.StringFixed(2))
	suite.Equal("pending", payouts[0].Status)
}

func (suite *QueryHandlersTestSuite) TestGetRiderProfile_WithEarnings() {
	manager := mustPrincipal(kernel.RoleWarehouseManager)
	self := mustPrincipal(kernel.RoleRider)
	w := suite.mustWarehouse(manager.UserID(), "Central", point(0, 0), true, true)

	r, err := rider.RestoreRider(self.UserID(), w.ID(), rider.Available, point(0, 0.1), decimal.RequireFromString("322.40"))
	suite.Require().NoError(err)
	profile, err := user.NewUser(self.UserID(), "rider@example.com", "Ravi Rider", "+100200301", kernel.RoleRider)
	suite.Require().NoError(err)
	suite.seed(func(ctx context.Context, uow ports.UnitOfWork) error {
		if err := uow.UserRepository().Add(ctx, profile); err != nil {
			return err
		}
		return uow.RiderRepository().Add(ctx, r)
	})

	q, err := queries.NewGetRiderProfileQuery(self)
	suite.Require().NoError(err)
	result, err := queries.NewGetRiderProfileQueryHandler(suite.db).Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Equal(self.UserID(), result.RiderID)
	suite.Equal(w.ID(), result.WarehouseID)
	suite.Equal("Central", result.WarehouseName)
	suite.Equal("Ravi Rider", result.FullName)
	suite.Equal("rider@example.com", result.Email)
	suite.Equal("available", result.Status)
	suite.Equal("322.40", result.TotalEarnings.StringFixed(2))
	suite.Require().NotNil(result.Longitude)
	suite.InDelta(0.1, *result.Longitude, 1e-9)

	q, err = queries.NewGetRiderProfileQuery(mustPrincipal(kernel.RoleRider))
	suite.Require().NoError(err)
	_, err = queries.NewGetRiderProfileQueryHandler(suite.db).Handle(context.Background(), q)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	q, err = queries.NewGetRiderProfileQuery(manager)
	suite.Require().NoError(err)
	_, err = queries.NewGetRiderProfileQueryHandler(suite.db).Handle(context.Background(), q)
	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueryHandlersTestSuite) TestListWarehouseRiders_StatusFilter() {
	manager := mustPrincipal(kernel.RoleWarehouseManager)
	w := suite.mustWarehouse(manager.UserID(), "Central", point(0, 0), true, true)
	other := suite.mustWarehouse(kernel.NewUUID(), "Elsewhere", point(1, 1), true, true)

	free := suite.mustRider(w.ID(), point(0, 0.1), rider.Available)
	busy := suite.mustRider(w.ID(), nil, rider.Busy)
	off := suite.mustRider(w.ID(), nil, rider.Inactive)
	suite.mustRider(other.ID(), nil, rider.Available)

	handler := queries.NewListWarehouseRidersQueryHandler(suite.db)
	ctx := context.Background()

	q, err := queries.NewListWarehouseRidersQuery(manager, w.ID(), "")
	suite.Require().NoError(err)
	all, err := handler.Handle(ctx, q)
	suite.Require().NoError(err)
	ids := make([]kernel.UUID, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.RiderID)
	}
	suite.ElementsMatch([]kernel.UUID{free, busy, off}, ids)

	q, err = queries.NewListWarehouseRidersQuery(manager, w.ID(), "busy")
	suite.Require().NoError(err)
	onlyBusy, err := handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Require().Len(onlyBusy, 1)
	suite.Equal(busy, onlyBusy[0].RiderID)

	q, err = queries.NewListWarehouseRidersQuery(manager, other.ID(), "")
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, q)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	q, err = queries.NewListWarehouseRidersQuery(mustPrincipal(kernel.RoleAdmin), other.ID(), "")
	suite.Require().NoError(err)
	visible, err := handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Len(visible, 1)
}

func (suite *QueryHandlersTestSuite) TestGetRider_Visibility() {
	manager := mustPrincipal(kernel.RoleWarehouseManager)
	w := suite.mustWarehouse(manager.UserID(), "Central", point(0, 0), true, true)
	riderID := suite.mustRider(w.ID(), nil, rider.Inactive)

	handler := queries.NewGetRiderQueryHandler(suite.db)
	ctx := context.Background()

	tests := []struct {
		name      string
		principal kernel.Principal
		wantErr   error
	}{
		{name: "managing manager", principal: manager},
		{name: "admin", principal: mustPrincipal(kernel.RoleAdmin)},
		{name: "other manager", principal: mustPrincipal(kernel.RoleWarehouseManager), wantErr: errs.ErrObjectNotFound},
		{name: "shopkeeper", principal: mustPrincipal(kernel.RoleShopkeeper), wantErr: errs.ErrForbidden},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			q, err := queries.NewGetRiderQuery(tt.principal, riderID)
			suite.Require().NoError(err)
			result, err := handler.Handle(ctx, q)
			if tt.wantErr != nil {
				suite.ErrorIs(err, tt.wantErr)
				return
			}
			suite.Require().NoError(err)
			suite.Equal(riderID, result.RiderID)
			suite.Equal("inactive", result.Status)
			suite.Empty(result.FullName)
		})
	}
}

func (suite *QueryHandlersTestSuite) seed(fn func(ctx context.Context, uow ports.UnitOfWork) error) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(fn(ctx, uow))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *QueryHandlersTestSuite) mustWarehouse(
	adminID kernel.UUID,
	name string,
	loc *kernel.GeoPoint,
	active, approved bool,
) *warehouse.Warehouse {
	w, err := warehouse.RestoreWarehouse(kernel.NewUUID(), adminID, name, "1 Dock Rd", loc, active, approved, nil)
	suite.Require().NoError(err)
	suite.seed(func(ctx context.Context, uow ports.UnitOfWork) error {
		return uow.WarehouseRepository().Add(ctx, w)
	})
	return w
}

func (suite *QueryHandlersTestSuite) mustRider(warehouseID kernel.UUID, loc *kernel.GeoPoint, status rider.Status) kernel.UUID {
	r, err := rider.RestoreRider(kernel.NewUUID(), warehouseID, status, loc, decimal.Zero)
	suite.Require().NoError(err)
	suite.seed(func(ctx context.Context, uow ports.UnitOfWork) error {
		return uow.RiderRepository().Add(ctx, r)
	})
	return r.ID()
}

func point(lat, lng float64) *kernel.GeoPoint {
	p, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		panic(err)
	}
	return &p
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
