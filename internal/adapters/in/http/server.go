package http

import (
	"context"
	"log/slog"
	"net/http"

	"stockway/internal/core/application/usecases/commands"
	"stockway/internal/core/application/usecases/queries"
	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/payment"
	"stockway/internal/core/domain/model/rider"
	"stockway/internal/core/domain/model/user"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CommandHandler is satisfied by the command handlers that return only an
// error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler is satisfied by query handlers and by command handlers that
// return what they created.
type ResultHandler[C any, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers holds the use cases the HTTP surface dispatches to.
type Handlers struct {
	SyncUser ResultHandler[commands.SyncUserCommand, *user.User]

	PlaceOrder       ResultHandler[commands.PlaceOrderCommand, kernel.UUID]
	CancelOrder      CommandHandler[commands.CancelOrderCommand]
	AcceptOrder      CommandHandler[commands.AcceptOrderCommand]
	RejectOrder      CommandHandler[commands.RejectOrderCommand]
	AssignRider      CommandHandler[commands.AssignRiderCommand]
	StartDelivery    CommandHandler[commands.StartDeliveryCommand]
	CompleteDelivery ResultHandler[commands.CompleteDeliveryCommand, *payment.Payment]

	RegisterRider       CommandHandler[commands.RegisterRiderCommand]
	UpdateRiderLocation CommandHandler[commands.UpdateRiderLocationCommand]
	SetRiderStatus      ResultHandler[commands.SetRiderStatusCommand, *rider.Rider]

	CreateWarehouse    CommandHandler[commands.CreateWarehouseCommand]
	ApproveWarehouse   CommandHandler[commands.ApproveWarehouseCommand]
	SetWarehouseActive CommandHandler[commands.SetWarehouseActiveCommand]

	CreateItem  CommandHandler[commands.CreateItemCommand]
	RestockItem ResultHandler[commands.RestockItemCommand, *inventory.Item]
	UpdateItem  ResultHandler[commands.UpdateItemCommand, *inventory.Item]
	DeleteItem  CommandHandler[commands.DeleteItemCommand]

	GetOrder             ResultHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	ListShopkeeperOrders ResultHandler[queries.ListShopkeeperOrdersQuery, []queries.OrderSummary]
	ListWarehouseOrders  ResultHandler[queries.ListWarehouseOrdersQuery, []queries.OrderSummary]
	ListItems            ResultHandler[queries.ListItemsQuery, []queries.ListItemsQueryResponse]
	FindNearbyWarehouses ResultHandler[queries.FindNearbyWarehousesQuery, []queries.FindNearbyWarehousesQueryResponse]
	FindNearbyRiders     ResultHandler[queries.FindNearbyRidersQuery, []queries.FindNearbyRidersQueryResponse]
	ListRiderDeliveries  ResultHandler[queries.ListRiderDeliveriesQuery, []queries.ListRiderDeliveriesQueryResponse]
	ListWarehousePayouts ResultHandler[queries.ListWarehousePayoutsQuery, []queries.ListWarehousePayoutsQueryResponse]
	GetRiderProfile      ResultHandler[queries.GetRiderProfileQuery, queries.RiderQueryResponse]
	GetRider             ResultHandler[queries.GetRiderQuery, queries.RiderQueryResponse]
	ListWarehouseRiders  ResultHandler[queries.ListWarehouseRidersQuery, []queries.RiderQueryResponse]
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		logger: logger.With("component", "http"),
	}
}

// Register mounts the API routes on g. g is expected to carry
// authentication.
func (s *Server) Register(g *echo.Group) {
	g.POST("/users/me", s.SyncUser)

	g.POST("/orders", s.PlaceOrder)
	g.GET("/orders", s.ListMyOrders)
	g.GET("/orders/:order_id", s.GetOrder)
	g.POST("/orders/:order_id/cancel", s.CancelOrder)
	g.POST("/orders/:order_id/accept", s.AcceptOrder)
	g.POST("/orders/:order_id/reject", s.RejectOrder)
	g.POST("/orders/:order_id/assign", s.AssignRider)
	g.POST("/orders/:order_id/start", s.StartDelivery)
	g.POST("/orders/:order_id/complete", s.CompleteDelivery)

	g.POST("/riders", s.RegisterRider)
	g.GET("/riders/me", s.GetMyRiderProfile)
	g.PUT("/riders/me/status", s.SetMyRiderStatus)
	g.PUT("/riders/me/location", s.UpdateRiderLocation)
	g.GET("/riders/me/deliveries", s.ListMyDeliveries)
	g.GET("/riders/:rider_id", s.GetRider)

	g.POST("/warehouses", s.CreateWarehouse)
	g.GET("/warehouses/nearby", s.FindNearbyWarehouses)
	g.POST("/warehouses/:warehouse_id/approve", s.ApproveWarehouse)
	g.PUT("/warehouses/:warehouse_id/active", s.SetWarehouseActive)
	g.GET("/warehouses/:warehouse_id/orders", s.ListWarehouseOrders)
	g.GET("/warehouses/:warehouse_id/items", s.ListItems)
	g.POST("/warehouses/:warehouse_id/items", s.CreateItem)
	g.GET("/warehouses/:warehouse_id/riders", s.ListWarehouseRiders)
	g.GET("/warehouses/:warehouse_id/riders/nearby", s.FindNearbyRiders)
	g.GET("/warehouses/:warehouse_id/payouts", s.ListWarehousePayouts)

	g.PATCH("/items/:item_id", s.UpdateItem)
	g.DELETE("/items/:item_id", s.DeleteItem)
	g.POST("/items/:item_id/restock", s.RestockItem)
}

// NewEcho assembles the HTTP server: recovery, request logging, health,
// swagger UI and the authenticated, schema-validated /api/v1 group.
func NewEcho(server *Server, auth *Authenticator, doc *openapi3.T, logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	if err := RegisterSwagger(e, doc); err != nil {
		return nil, err
	}

	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	api := e.Group("/api/v1", auth.Middleware(), validator)
	server.Register(api)

	return e, nil
}

// respondOrder loads the hydrated order for the caller after a command.
func (s *Server) respondOrder(c echo.Context, principal kernel.Principal, orderID kernel.UUID, status int) error {
	query, err := queries.NewGetOrderQuery(principal, orderID)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(status, newOrderResponse(o))
}
