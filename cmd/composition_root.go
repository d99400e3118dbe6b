package cmd

import (
	"log/slog"

	httpin "stockway/internal/adapters/in/http"
	"stockway/internal/adapters/out/postgres"
	"stockway/internal/core/application/usecases/commands"
	"stockway/internal/core/application/usecases/queries"
	"stockway/internal/core/domain/services"
	"stockway/internal/core/ports"
	"stockway/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	publisher   ports.EventPublisher
	idempotency ports.IdempotencyStore
	payout      services.PayoutCalculator
	logger      *slog.Logger
}

// NewCompositionRoot wires the use cases. idempotency may be nil, in which
// case Idempotency-Key headers are ignored.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	idempotency ports.IdempotencyStore,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	payout, err := services.NewPayoutCalculator(config.PayoutBaseRate, config.PayoutRatePerKm)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:   publisher,
		idempotency: idempotency,
		payout:      payout,
		logger:      logger,
	}, nil
}

func (c *CompositionRoot) orderFlow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalog() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riders() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) users() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outbox() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderFlow(), c.idempotency, c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.orderFlow(), c.payout, c.logger)
}

func (c *CompositionRoot) CreateAutoAssignRidersCommandHandler() commands.AutoAssignRidersCommandHandler {
	return commands.NewAutoAssignRidersCommandHandler(c.orderFlow(), services.NewRiderDispatcher(c.config.AssignRadiusKm))
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outbox(), c.publisher)
}

// HTTPHandlers returns every use case exposed over HTTP.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		SyncUser: commands.NewSyncUserCommandHandler(c.users()),

		PlaceOrder:       c.CreatePlaceOrderCommandHandler(),
		CancelOrder:      commands.NewCancelOrderCommandHandler(c.orderFlow()),
		AcceptOrder:      commands.NewAcceptOrderCommandHandler(c.orderFlow()),
		RejectOrder:      commands.NewRejectOrderCommandHandler(c.orderFlow()),
		AssignRider:      commands.NewAssignRiderCommandHandler(c.orderFlow()),
		StartDelivery:    commands.NewStartDeliveryCommandHandler(c.orderFlow()),
		CompleteDelivery: c.CreateCompleteDeliveryCommandHandler(),

		RegisterRider:       commands.NewRegisterRiderCommandHandler(c.riders()),
		UpdateRiderLocation: commands.NewUpdateRiderLocationCommandHandler(c.riders()),
		SetRiderStatus:      commands.NewSetRiderStatusCommandHandler(c.riders()),

		CreateWarehouse:    commands.NewCreateWarehouseCommandHandler(c.catalog()),
		ApproveWarehouse:   commands.NewApproveWarehouseCommandHandler(c.catalog()),
		SetWarehouseActive: commands.NewSetWarehouseActiveCommandHandler(c.catalog()),

		CreateItem:  commands.NewCreateItemCommandHandler(c.catalog()),
		RestockItem: commands.NewRestockItemCommandHandler(c.catalog()),
		UpdateItem:  commands.NewUpdateItemCommandHandler(c.catalog()),
		DeleteItem:  commands.NewDeleteItemCommandHandler(c.catalog()),

		GetOrder:             queries.NewGetOrderQueryHandler(c.gormDB),
		ListShopkeeperOrders: queries.NewListShopkeeperOrdersQueryHandler(c.gormDB),
		ListWarehouseOrders:  queries.NewListWarehouseOrdersQueryHandler(c.gormDB),
		ListItems:            queries.NewListItemsQueryHandler(c.gormDB),
		FindNearbyWarehouses: queries.NewFindNearbyWarehousesQueryHandler(c.gormDB),
		FindNearbyRiders:     queries.NewFindNearbyRidersQueryHandler(c.gormDB),
		ListRiderDeliveries:  queries.NewListRiderDeliveriesQueryHandler(c.gormDB),
		ListWarehousePayouts: queries.NewListWarehousePayoutsQueryHandler(c.gormDB),
		GetRiderProfile:      queries.NewGetRiderProfileQueryHandler(c.gormDB),
		GetRider:             queries.NewGetRiderQueryHandler(c.gormDB),
		ListWarehouseRiders:  queries.NewListWarehouseRidersQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAutoAssignRidersCommandHandler(),
		c.CreateRelayOutboxCommandHandler(),
		jobs.Schedules{
			RiderAssignment: c.config.RiderAssignmentSchedule,
			OutboxRelay:     c.config.OutboxRelaySchedule,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
