package http

import (
	"net/http"

	"stockway/internal/core/application/usecases/commands"
	"stockway/internal/core/application/usecases/queries"
	"stockway/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

func (s *Server) CreateWarehouse(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req CreateWarehouseRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var location *kernel.GeoPoint
	if req.Location != nil {
		p, pointErr := req.Location.toGeoPoint()
		if pointErr != nil {
			return s.fail(c, pointErr)
		}
		location = &p
	}

	warehouseID := kernel.NewUUID()
	cmd, err := commands.NewCreateWarehouseCommand(principal, warehouseID, req.Name, req.Address, location)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateWarehouse.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: warehouseID.String()})
}

func (s *Server) ApproveWarehouse(c echo.Context) error {
	principal, warehouseID, err := warehouseRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewApproveWarehouseCommand(principal, warehouseID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.ApproveWarehouse.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) SetWarehouseActive(c echo.Context) error {
	principal, warehouseID, err := warehouseRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req SetWarehouseActiveRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSetWarehouseActiveCommand(principal, warehouseID, req.Active)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.SetWarehouseActive.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// FindNearbyWarehouses handles GET /api/v1/warehouses/nearby. Without both
// coordinates the result is empty.
func (s *Server) FindNearbyWarehouses(c echo.Context) error {
	var (
		lat, lng float64
		radius   = queries.DefaultNearbyRadiusKm
		limit    = queries.DefaultNearbyLimit
	)
	for name, dst := range map[string]*float64{"lat": &lat, "lng": &lng, "radius_km": &radius} {
		if err := queryParam(c, name, dst); err != nil {
			return s.fail(c, err)
		}
	}
	if err := queryParam(c, "limit", &limit); err != nil {
		return s.fail(c, err)
	}

	var point *kernel.GeoPoint
	hasLat, hasLng := c.QueryParams().Has("lat"), c.QueryParams().Has("lng")
	switch {
	case hasLat && hasLng:
		p, err := kernel.NewGeoPoint(lat, lng)
		if err != nil {
			return s.fail(c, err)
		}
		point = &p
	case hasLat || hasLng:
		return badRequest(c, "lat and lng must be given together")
	}

	query, err := queries.NewFindNearbyWarehousesQuery(point, radius, limit)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.FindNearbyWarehouses.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newNearbyWarehouses(rows))
}

func (s *Server) ListWarehousePayouts(c echo.Context) error {
	principal, warehouseID, err := warehouseRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListWarehousePayoutsQuery(principal, warehouseID)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.ListWarehousePayouts.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newPayoutResponses(rows))
}

// CreateItem handles POST /api/v1/warehouses/{warehouse_id}/items.
func (s *Server) CreateItem(c echo.Context) error {
	principal, warehouseID, err := warehouseRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req CreateItemRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewCreateItemCommand(principal, itemID, warehouseID, req.Name, req.SKU, req.Price, req.Quantity)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: itemID.String()})
}

func (s *Server) RestockItem(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	itemID, err := pathUUID(c, "item_id")
	if err != nil {
		return s.fail(c, err)
	}

	var req RestockItemRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewRestockItemCommand(principal, itemID, req.Units)
	if err != nil {
		return s.fail(c, err)
	}
	item, err := s.h.RestockItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newItemResponse(item))
}

// UpdateItem handles PATCH /api/v1/items/{item_id}.
func (s *Server) UpdateItem(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	itemID, err := pathUUID(c, "item_id")
	if err != nil {
		return s.fail(c, err)
	}

	var req UpdateItemRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateItemCommand(principal, itemID, req.Price, req.Quantity)
	if err != nil {
		return s.fail(c, err)
	}
	item, err := s.h.UpdateItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newItemResponse(item))
}

func (s *Server) DeleteItem(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	itemID, err := pathUUID(c, "item_id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteItemCommand(principal, itemID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.DeleteItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListItems handles GET /api/v1/warehouses/{warehouse_id}/items.
func (s *Server) ListItems(c echo.Context) error {
	principal, warehouseID, err := warehouseRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	var includeDeleted bool
	if err = queryParam(c, "include_deleted", &includeDeleted); err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListItemsQuery(principal, warehouseID, includeDeleted)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.ListItems.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newItemResponses(rows))
}
