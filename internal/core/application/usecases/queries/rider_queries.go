package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/rider"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrGetRiderProfileQueryIsNotConstructed = errors.New(
		"GetRiderProfileQuery must be created via NewGetRiderProfileQuery constructor",
	)
	ErrGetRiderQueryIsNotConstructed = errors.New(
		"GetRiderQuery must be created via NewGetRiderQuery constructor",
	)
	ErrListWarehouseRidersQueryIsNotConstructed = errors.New(
		"ListWarehouseRidersQuery must be created via NewListWarehouseRidersQuery constructor",
	)
)

// RiderQueryResponse is a rider with the profile and warehouse it belongs to.
type RiderQueryResponse struct {
	RiderID          kernel.UUID
	WarehouseID      kernel.UUID
	WarehouseName    string
	WarehouseAddress string
	FullName         string
	Email            string
	Status           string
	Latitude         *float64
	Longitude        *float64
	TotalEarnings    decimal.Decimal
	CreatedAt        time.Time
}

const riderSelect = `
	SELECT
		r.user_id,
		r.warehouse_id,
		w.admin_id,
		w.name,
		w.address,
		COALESCE(u.full_name, ''),
		COALESCE(u.email, ''),
		r.status,
		r.latitude,
		r.longitude,
		r.total_earnings,
		r.created_at
	FROM riders r
	JOIN warehouses w ON w.id = r.warehouse_id
	LEFT JOIN users u ON u.id = r.user_id`

type riderRow struct {
	RiderQueryResponse
	adminID uuid.UUID
}

func scanRiders(rows *sql.Rows) ([]riderRow, error) {
	defer rows.Close()

	result := make([]riderRow, 0)
	for rows.Next() {
		var (
			riderID, warehouseID uuid.UUID
			row                  riderRow
		)
		err := rows.Scan(
			&riderID,
			&warehouseID,
			&row.adminID,
			&row.WarehouseName,
			&row.WarehouseAddress,
			&row.FullName,
			&row.Email,
			&row.Status,
			&row.Latitude,
			&row.Longitude,
			&row.TotalEarnings,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if row.RiderID, err = kernel.UUIDFromGoogle(riderID); err != nil {
			return nil, err
		}
		if row.WarehouseID, err = kernel.UUIDFromGoogle(warehouseID); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func loadRider(ctx context.Context, db *gorm.DB, riderID kernel.UUID) (*riderRow, error) {
	rows, err := db.WithContext(ctx).Raw(riderSelect+` WHERE r.user_id = ?`, riderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	found, err := scanRiders(rows)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errs.NewObjectNotFoundError("rider", riderID.String())
	}
	return &found[0], nil
}

// GetRiderProfileQuery returns the calling rider's own profile and earnings.
type GetRiderProfileQuery struct {
	principal kernel.Principal

	guard guard.ConstructorGuard
}

func NewGetRiderProfileQuery(principal kernel.Principal) (GetRiderProfileQuery, error) {
	q := GetRiderProfileQuery{guard: guard.NewConstructorGuard()}
	if err := setPrincipal(&q.principal, principal); err != nil {
		return GetRiderProfileQuery{}, err
	}
	return q, nil
}

func (q GetRiderProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderProfileQueryIsNotConstructed)
}

// GetRiderQuery returns one rider to an admin or to the manager of the
// rider's warehouse.
type GetRiderQuery struct {
	principal kernel.Principal
	riderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRiderQuery(principal kernel.Principal, riderID kernel.UUID) (GetRiderQuery, error) {
	q := GetRiderQuery{guard: guard.NewConstructorGuard()}

	var riderErr error
	if err := riderID.Validate(); err != nil {
		riderErr = errs.NewValueIsRequiredErrorWithCause("rider_id", err)
	}
	q.riderID = riderID

	if err := errors.Join(setPrincipal(&q.principal, principal), riderErr); err != nil {
		return GetRiderQuery{}, err
	}
	return q, nil
}

func (q GetRiderQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderQueryIsNotConstructed)
}

// ListWarehouseRidersQuery lists a warehouse's riders, newest first,
// optionally narrowed to one status.
type ListWarehouseRidersQuery struct {
	principal   kernel.Principal
	warehouseID kernel.UUID
	status      *rider.Status

	guard guard.ConstructorGuard
}

// NewListWarehouseRidersQuery accepts an empty status as "all statuses".
func NewListWarehouseRidersQuery(
	principal kernel.Principal,
	warehouseID kernel.UUID,
	status string,
) (ListWarehouseRidersQuery, error) {
	q := ListWarehouseRidersQuery{guard: guard.NewConstructorGuard()}

	var errList []error
	errList = append(errList, setPrincipal(&q.principal, principal))
	if err := warehouseID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("warehouse_id", err))
	}
	q.warehouseID = warehouseID

	if strings.TrimSpace(status) != "" {
		s, err := rider.StatusFromString(status)
		if err != nil {
			errList = append(errList, err)
		}
		q.status = &s
	}

	if err := errors.Join(errList...); err != nil {
		return ListWarehouseRidersQuery{}, err
	}
	return q, nil
}

func (q ListWarehouseRidersQuery) Validate() error {
	return q.guard.Validate(ErrListWarehouseRidersQueryIsNotConstructed)
}

// Status is nil when every status is requested.
func (q ListWarehouseRidersQuery) Status() *rider.Status {
	return q.status
}

type GetRiderProfileQueryHandler struct {
	db *gorm.DB
}

func NewGetRiderProfileQueryHandler(db *gorm.DB) GetRiderProfileQueryHandler {
	return GetRiderProfileQueryHandler{db: db}
}

func (h GetRiderProfileQueryHandler) Handle(ctx context.Context, query GetRiderProfileQuery) (RiderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return RiderQueryResponse{}, err
	}
	if err := requireRole(query.principal, "view rider profile", kernel.RoleRider); err != nil {
		return RiderQueryResponse{}, err
	}

	row, err := loadRider(ctx, h.db, query.principal.UserID())
	if err != nil {
		return RiderQueryResponse{}, err
	}
	return row.RiderQueryResponse, nil
}

type GetRiderQueryHandler struct {
	db *gorm.DB
}

func NewGetRiderQueryHandler(db *gorm.DB) GetRiderQueryHandler {
	return GetRiderQueryHandler{db: db}
}

// Handle hides riders of other warehouses from managers behind not found.
func (h GetRiderQueryHandler) Handle(ctx context.Context, query GetRiderQuery) (RiderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return RiderQueryResponse{}, err
	}
	if err := requireRole(query.principal, "view rider", kernel.RoleAdmin, kernel.RoleWarehouseManager); err != nil {
		return RiderQueryResponse{}, err
	}

	row, err := loadRider(ctx, h.db, query.riderID)
	if err != nil {
		return RiderQueryResponse{}, err
	}
	if !query.principal.IsAdmin() && row.adminID != query.principal.UserID().Bytes() {
		return RiderQueryResponse{}, errs.NewObjectNotFoundError("rider", query.riderID.String())
	}
	return row.RiderQueryResponse, nil
}

type ListWarehouseRidersQueryHandler struct {
	db *gorm.DB
}

func NewListWarehouseRidersQueryHandler(db *gorm.DB) ListWarehouseRidersQueryHandler {
	return ListWarehouseRidersQueryHandler{db: db}
}

func (h ListWarehouseRidersQueryHandler) Handle(
	ctx context.Context,
	query ListWarehouseRidersQuery,
) ([]RiderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeWarehouse(ctx, h.db, query.principal, "list riders", query.warehouseID); err != nil {
		return nil, err
	}

	sqlText := riderSelect + ` WHERE r.warehouse_id = @warehouse`
	args := map[string]any{"warehouse": query.warehouseID.Bytes()}
	if query.status != nil {
		sqlText += ` AND r.status = @status`
		args["status"] = query.status.String()
	}
	sqlText += ` ORDER BY r.created_at DESC, r.user_id`

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args).Rows()
	if err != nil {
		return nil, err
	}
	found, err := scanRiders(rows)
	if err != nil {
		return nil, err
	}

	result := make([]RiderQueryResponse, 0, len(found))
	for _, row := range found {
		result = append(result, row.RiderQueryResponse)
	}
	return result, nil
}
