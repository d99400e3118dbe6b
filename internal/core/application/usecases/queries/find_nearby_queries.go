package queries

import (
	"context"
	"errors"
	"math"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrFindNearbyWarehousesQueryIsNotConstructed = errors.New(
		"FindNearbyWarehousesQuery must be created via NewFindNearbyWarehousesQuery constructor",
	)
	ErrFindNearbyRidersQueryIsNotConstructed = errors.New(
		"FindNearbyRidersQuery must be created via NewFindNearbyRidersQuery constructor",
	)
)

// FindNearbyWarehousesQuery finds active, approved warehouses around a
// point. A nil point yields an empty result.
type FindNearbyWarehousesQuery struct {
	point    *kernel.GeoPoint
	radiusKm float64
	limit    int

	guard guard.ConstructorGuard
}

func NewFindNearbyWarehousesQuery(point *kernel.GeoPoint, radiusKm float64, limit int) (FindNearbyWarehousesQuery, error) {
	if err := validateNearby(radiusKm, limit); err != nil {
		return FindNearbyWarehousesQuery{}, err
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return FindNearbyWarehousesQuery{}, errs.NewValueIsInvalidErrorWithCause("location", err)
		}
	}

	return FindNearbyWarehousesQuery{
		point:    point,
		radiusKm: radiusKm,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q FindNearbyWarehousesQuery) Validate() error {
	return q.guard.Validate(ErrFindNearbyWarehousesQueryIsNotConstructed)
}

type FindNearbyWarehousesQueryResponse struct {
	ID         kernel.UUID
	Name       string
	Address    string
	Location   kernel.GeoPoint
	DistanceKm float64
}

type FindNearbyWarehousesQueryHandler struct {
	db *gorm.DB
}

func NewFindNearbyWarehousesQueryHandler(db *gorm.DB) FindNearbyWarehousesQueryHandler {
	return FindNearbyWarehousesQueryHandler{db: db}
}

// Handle returns warehouses within the radius, nearest first, ties broken by id.
func (h FindNearbyWarehousesQueryHandler) Handle(
	ctx context.Context,
	query FindNearbyWarehousesQuery,
) ([]FindNearbyWarehousesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result := make([]FindNearbyWarehousesQueryResponse, 0)
	if query.point == nil {
		return result, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, address, latitude, longitude, distance_km
		FROM (
			SELECT id, name, address, latitude, longitude, `+haversineKm+` AS distance_km
			FROM warehouses
			WHERE is_active AND is_approved AND deleted_at IS NULL
				AND latitude IS NOT NULL AND longitude IS NOT NULL
		) nearby
		WHERE distance_km <= @radius
		ORDER BY distance_km, id
		LIMIT @limit
	`, map[string]any{
		"lat":    query.point.Lat(),
		"lng":    query.point.Lng(),
		"radius": query.radiusKm,
		"limit":  query.limit,
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       uuid.UUID
			lat, lng float64
			resp     FindNearbyWarehousesQueryResponse
		)
		if err = rows.Scan(&id, &resp.Name, &resp.Address, &lat, &lng, &resp.DistanceKm); err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.Location, err = kernel.NewGeoPoint(lat, lng); err != nil {
			return nil, err
		}
		resp.DistanceKm = roundKm(resp.DistanceKm)
		result = append(result, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// FindNearbyRidersQuery finds the available riders of a warehouse around
// that warehouse's location. A warehouse without a location yields an
// empty result.
type FindNearbyRidersQuery struct {
	principal   kernel.Principal
	warehouseID kernel.UUID
	radiusKm    float64
	limit       int

	guard guard.ConstructorGuard
}

func NewFindNearbyRidersQuery(
	principal kernel.Principal,
	warehouseID kernel.UUID,
	radiusKm float64,
	limit int,
) (FindNearbyRidersQuery, error) {
	q := FindNearbyRidersQuery{
		radiusKm: radiusKm,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}

	var warehouseErr error
	if err := warehouseID.Validate(); err != nil {
		warehouseErr = errs.NewValueIsRequiredErrorWithCause("warehouse_id", err)
	}
	q.warehouseID = warehouseID

	if err := errors.Join(
		setPrincipal(&q.principal, principal),
		warehouseErr,
		validateNearby(radiusKm, limit),
	); err != nil {
		return FindNearbyRidersQuery{}, err
	}
	return q, nil
}

func (q FindNearbyRidersQuery) Validate() error {
	return q.guard.Validate(ErrFindNearbyRidersQueryIsNotConstructed)
}

type FindNearbyRidersQueryResponse struct {
	RiderID    kernel.UUID
	FullName   string
	Location   kernel.GeoPoint
	DistanceKm float64
}

type FindNearbyRidersQueryHandler struct {
	db *gorm.DB
}

func NewFindNearbyRidersQueryHandler(db *gorm.DB) FindNearbyRidersQueryHandler {
	return FindNearbyRidersQueryHandler{db: db}
}

func (h FindNearbyRidersQueryHandler) Handle(
	ctx context.Context,
	query FindNearbyRidersQuery,
) ([]FindNearbyRidersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeWarehouse(ctx, h.db, query.principal, "find nearby riders", query.warehouseID); err != nil {
		return nil, err
	}

	result := make([]FindNearbyRidersQueryResponse, 0)

	var origins []struct {
		Latitude  *float64
		Longitude *float64
	}
	err := h.db.WithContext(ctx).
		Raw(`SELECT latitude, longitude FROM warehouses WHERE id = ?`, query.warehouseID.Bytes()).
		Scan(&origins).Error
	if err != nil {
		return nil, err
	}
	if len(origins) == 0 || origins[0].Latitude == nil || origins[0].Longitude == nil {
		return result, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT user_id, full_name, latitude, longitude, distance_km
		FROM (
			SELECT r.user_id, COALESCE(u.full_name, '') AS full_name, r.latitude, r.longitude,
				`+haversineKm+` AS distance_km
			FROM riders r
			LEFT JOIN users u ON u.id = r.user_id
			WHERE r.warehouse_id = @warehouse AND r.status = 'available'
				AND r.latitude IS NOT NULL AND r.longitude IS NOT NULL
		) nearby
		WHERE distance_km <= @radius
		ORDER BY distance_km, user_id
		LIMIT @limit
	`, map[string]any{
		"lat":       *origins[0].Latitude,
		"lng":       *origins[0].Longitude,
		"warehouse": query.warehouseID.Bytes(),
		"radius":    query.radiusKm,
		"limit":     query.limit,
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       uuid.UUID
			lat, lng float64
			resp     FindNearbyRidersQueryResponse
		)
		if err = rows.Scan(&id, &resp.FullName, &lat, &lng, &resp.DistanceKm); err != nil {
			return nil, err
		}
		if resp.RiderID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.Location, err = kernel.NewGeoPoint(lat, lng); err != nil {
			return nil, err
		}
		resp.DistanceKm = roundKm(resp.DistanceKm)
		result = append(result, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
