package http

import (
	"net/http"

	"stockway/internal/core/application/usecases/commands"
	"stockway/internal/core/application/usecases/queries"
	"stockway/internal/core/domain/model/rider"

	"github.com/labstack/echo/v4"
)

// SyncUser handles POST /api/v1/users/me. Identity and role come from the
// token, contact details from the body.
func (s *Server) SyncUser(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req SyncUserRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSyncUserCommand(principal, emailFrom(c), req.FullName, req.PhoneNumber)
	if err != nil {
		return s.fail(c, err)
	}

	u, err := s.h.SyncUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newUserResponse(u))
}

func (s *Server) RegisterRider(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req RegisterRiderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	userID, err := parseUUID("user_id", req.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	warehouseID, err := parseUUID("warehouse_id", req.WarehouseID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRegisterRiderCommand(principal, userID, warehouseID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RegisterRider.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: userID.String()})
}

func (s *Server) UpdateRiderLocation(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req LocationDTO
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	point, err := req.toGeoPoint()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateRiderLocationCommand(principal, point)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.UpdateRiderLocation.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ListMyDeliveries(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListRiderDeliveriesQuery(principal)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.ListRiderDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newRiderDeliveries(rows))
}

// FindNearbyRiders handles GET /api/v1/warehouses/{warehouse_id}/riders/nearby.
func (s *Server) FindNearbyRiders(c echo.Context) error {
	principal, warehouseID, err := warehouseRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	radius, limit := queries.DefaultNearbyRadiusKm, queries.DefaultNearbyLimit
	if err = queryParam(c, "radius_km", &radius); err != nil {
		return s.fail(c, err)
	}
	if err = queryParam(c, "limit", &limit); err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewFindNearbyRidersQuery(principal, warehouseID, radius, limit)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.FindNearbyRiders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newNearbyRiders(rows))
}

// GetMyRiderProfile handles GET /api/v1/riders/me.
func (s *Server) GetMyRiderProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetRiderProfileQuery(principal)
	if err != nil {
		return s.fail(c, err)
	}

	profile, err := s.h.GetRiderProfile.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newRiderResponse(profile))
}

// SetMyRiderStatus handles PUT /api/v1/riders/me/status. Riders may only go
// on or off duty; busy is set by assignment.
func (s *Server) SetMyRiderStatus(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req SetRiderStatusRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	status, err := rider.StatusFromString(req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSetRiderStatusCommand(principal, status)
	if err != nil {
		return s.fail(c, err)
	}
	r, err := s.h.SetRiderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newRiderStatusResponse(r))
}

// ListWarehouseRiders handles GET /api/v1/warehouses/{warehouse_id}/riders.
func (s *Server) ListWarehouseRiders(c echo.Context) error {
	principal, warehouseID, err := warehouseRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	var status string
	if err = queryParam(c, "status", &status); err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListWarehouseRidersQuery(principal, warehouseID, status)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.ListWarehouseRiders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newRiderResponses(rows))
}

func (s *Server) GetRider(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	riderID, err := pathUUID(c, "rider_id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetRiderQuery(principal, riderID)
	if err != nil {
		return s.fail(c, err)
	}

	r, err := s.h.GetRider.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newRiderResponse(r))
}
