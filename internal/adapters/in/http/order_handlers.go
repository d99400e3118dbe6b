package http

import (
	"net/http"

	"stockway/internal/core/application/usecases/commands"
	"stockway/internal/core/application/usecases/queries"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req PlaceOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	warehouseID, err := parseUUID("warehouse_id", req.WarehouseID)
	if err != nil {
		return s.fail(c, err)
	}

	lines := make([]services.RequestedLine, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, parseErr := parseUUID("item_id", item.ItemID)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		lines = append(lines, services.RequestedLine{ItemID: itemID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewPlaceOrderCommand(principal, kernel.NewUUID(), warehouseID, lines,
		c.Request().Header.Get("Idempotency-Key"))
	if err != nil {
		return s.fail(c, err)
	}

	orderID, err := s.h.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, principal, orderID, http.StatusCreated)
}

// ListMyOrders handles GET /api/v1/orders.
func (s *Server) ListMyOrders(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListShopkeeperOrdersQuery(principal)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.ListShopkeeperOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newOrderSummaries(rows))
}

// GetOrder handles GET /api/v1/orders/{order_id}.
func (s *Server) GetOrder(c echo.Context) error {
	principal, orderID, err := orderRequest(c)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondOrder(c, principal, orderID, http.StatusOK)
}

func (s *Server) CancelOrder(c echo.Context) error {
	principal, orderID, err := orderRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(principal, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, principal, orderID, http.StatusOK)
}

func (s *Server) AcceptOrder(c echo.Context) error {
	principal, orderID, err := orderRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(principal, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.AcceptOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, principal, orderID, http.StatusOK)
}

func (s *Server) RejectOrder(c echo.Context) error {
	principal, orderID, err := orderRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req RejectOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewRejectOrderCommand(principal, orderID, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RejectOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, principal, orderID, http.StatusOK)
}

func (s *Server) AssignRider(c echo.Context) error {
	principal, orderID, err := orderRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req AssignRiderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	riderID, err := parseUUID("rider_id", req.RiderID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignRiderCommand(principal, orderID, riderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.AssignRider.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, principal, orderID, http.StatusOK)
}

func (s *Server) StartDelivery(c echo.Context) error {
	principal, orderID, err := orderRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewStartDeliveryCommand(principal, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.StartDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, principal, orderID, http.StatusOK)
}

// CompleteDelivery handles POST /api/v1/orders/{order_id}/complete and
// returns the delivered order with the rider payout.
func (s *Server) CompleteDelivery(c echo.Context) error {
	principal, orderID, err := orderRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(principal, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	payout, err := s.h.CompleteDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderQuery(principal, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, CompletedDeliveryResponse{
		Order:  newOrderResponse(o),
		Payout: newPayoutResponse(payout),
	})
}

// ListWarehouseOrders handles GET /api/v1/warehouses/{warehouse_id}/orders.
func (s *Server) ListWarehouseOrders(c echo.Context) error {
	principal, warehouseID, err := warehouseRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	var status string
	if err = queryParam(c, "status", &status); err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListWarehouseOrdersQuery(principal, warehouseID, status)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.ListWarehouseOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newOrderSummaries(rows))
}

func orderRequest(c echo.Context) (kernel.Principal, kernel.UUID, error) {
	principal, err := principalFrom(c)
	if err != nil {
		return kernel.Principal{}, kernel.UUID{}, err
	}
	orderID, err := pathUUID(c, "order_id")
	if err != nil {
		return kernel.Principal{}, kernel.UUID{}, err
	}
	return principal, orderID, nil
}

func warehouseRequest(c echo.Context) (kernel.Principal, kernel.UUID, error) {
	principal, err := principalFrom(c)
	if err != nil {
		return kernel.Principal{}, kernel.UUID{}, err
	}
	warehouseID, err := pathUUID(c, "warehouse_id")
	if err != nil {
		return kernel.Principal{}, kernel.UUID{}, err
	}
	return principal, warehouseID, nil
}
