package queries

import (
	"context"
	"errors"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrListItemsQueryIsNotConstructed = errors.New(
	"ListItemsQuery must be created via NewListItemsQuery constructor",
)

// ListItemsQuery lists a warehouse's catalogue. Any authenticated user may
// list live items; soft-deleted items are only shown to the warehouse's
// manager or an admin who asks for them.
type ListItemsQuery struct {
	principal      kernel.Principal
	warehouseID    kernel.UUID
	includeDeleted bool

	guard guard.ConstructorGuard
}

func NewListItemsQuery(principal kernel.Principal, warehouseID kernel.UUID, includeDeleted bool) (ListItemsQuery, error) {
	q := ListItemsQuery{
		includeDeleted: includeDeleted,
		guard:          guard.NewConstructorGuard(),
	}

	var warehouseErr error
	if err := warehouseID.Validate(); err != nil {
		warehouseErr = errs.NewValueIsRequiredErrorWithCause("warehouse_id", err)
	}
	q.warehouseID = warehouseID

	if err := errors.Join(setPrincipal(&q.principal, principal), warehouseErr); err != nil {
		return ListItemsQuery{}, err
	}
	return q, nil
}

func (q ListItemsQuery) Validate() error {
	return q.guard.Validate(ErrListItemsQueryIsNotConstructed)
}

type ListItemsQueryResponse struct {
	ID        kernel.UUID
	Name      string
	SKU       string
	Price     decimal.Decimal
	Quantity  int
	IsDeleted bool
}

type ListItemsQueryHandler struct {
	db *gorm.DB
}

func NewListItemsQueryHandler(db *gorm.DB) ListItemsQueryHandler {
	return ListItemsQueryHandler{db: db}
}

func (h ListItemsQueryHandler) Handle(ctx context.Context, query ListItemsQuery) ([]ListItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.includeDeleted {
		if err := authorizeWarehouse(ctx, h.db, query.principal, "list deleted items", query.warehouseID); err != nil {
			return nil, err
		}
	} else {
		var count int64
		err := h.db.WithContext(ctx).
			Raw(`SELECT COUNT(*) FROM warehouses WHERE id = ? AND deleted_at IS NULL`, query.warehouseID.Bytes()).
			Scan(&count).Error
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errs.NewObjectNotFoundError("warehouse", query.warehouseID.String())
		}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			sku,
			price,
			quantity,
			deleted_at IS NOT NULL AS is_deleted
		FROM items
		WHERE warehouse_id = ? AND (? OR deleted_at IS NULL)
		ORDER BY name, id
	`, query.warehouseID.Bytes(), query.includeDeleted).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ListItemsQueryResponse, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			item ListItemsQueryResponse
		)
		if err = rows.Scan(&id, &item.Name, &item.SKU, &item.Price, &item.Quantity, &item.IsDeleted); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
