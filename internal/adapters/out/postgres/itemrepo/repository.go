package itemrepo

import (
	"context"
	"errors"

	"stockway/internal/adapters/out/postgres/pgerr"
	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItemRepository implements ports.ItemRepository using GORM.
type GormItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormItemRepository(db *gorm.DB, tracker aggregateTracker) *GormItemRepository {
	return &GormItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new item. A duplicate SKU is reported as errs.ConflictError.
func (r *GormItemRepository) Add(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, SKUIndex) {
			return errs.NewConflictErrorWithCause("item", "An item with this SKU already exists", err)
		}
		return err
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

// Update writes the mutable columns of an item.
func (r *GormItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	result := r.db.WithContext(ctx).Model(&ItemDTO{}).Where("id = ?", dto.ID).
		Select("name", "price", "quantity", "deleted_at", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", item.ID().String())
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID, includeDeleted bool) (*inventory.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("id = ?", id.Bytes())
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var dto ItemDTO
	if err := query.First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate locks the given items in ascending id order so concurrent
// checkouts touching overlapping items cannot deadlock.
func (r *GormItemRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*inventory.Item, error) {
	if len(ids) == 0 {
		return []*inventory.Item{}, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.String())
	}

	var dtos []ItemDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ANY(?)", pq.Array(raw)).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	items := make([]*inventory.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		items = append(items, item)
	}

	return items, nil
}
