package commands

import (
	"context"
	"time"

	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
)

type CreateItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateItemCommandHandler(uowFactory CatalogUoWFactory) CreateItemCommandHandler {
	return CreateItemCommandHandler{uowFactory: uowFactory}
}

// Handle adds the item to a warehouse the caller manages. A duplicate SKU
// fails with errs.ConflictError from the repository.
func (h CreateItemCommandHandler) Handle(ctx context.Context, cmd CreateItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := inventory.NewItem(cmd.ItemID(), cmd.WarehouseID(), cmd.Name(), cmd.SKU(), cmd.Price(), cmd.Quantity())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	w, err := uow.WarehouseRepository().Get(ctx, cmd.WarehouseID())
	if err != nil {
		return err
	}
	if err = authorizeWarehouse(cmd.Principal(), "create item", w); err != nil {
		return err
	}

	if err = uow.ItemRepository().Add(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type RestockItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewRestockItemCommandHandler(uowFactory CatalogUoWFactory) RestockItemCommandHandler {
	return RestockItemCommandHandler{uowFactory: uowFactory}
}

// Handle returns the item with its new quantity. The row is locked the same
// way checkout locks it, so restocks and reservations serialize.
func (h RestockItemCommandHandler) Handle(ctx context.Context, cmd RestockItemCommand) (*inventory.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := lockLiveItem(ctx, uow, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	w, err := uow.WarehouseRepository().Get(ctx, item.WarehouseID())
	if err != nil {
		return nil, err
	}
	if err = authorizeWarehouse(cmd.Principal(), "restock item", w); err != nil {
		return nil, err
	}

	if err = item.Restock(cmd.Units()); err != nil {
		return nil, err
	}

	if err = uow.ItemRepository().Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}

type DeleteItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewDeleteItemCommandHandler(uowFactory CatalogUoWFactory) DeleteItemCommandHandler {
	return DeleteItemCommandHandler{uowFactory: uowFactory}
}

func (h DeleteItemCommandHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := lockLiveItem(ctx, uow, cmd.ItemID())
	if err != nil {
		return err
	}

	w, err := uow.WarehouseRepository().Get(ctx, item.WarehouseID())
	if err != nil {
		return err
	}
	if err = authorizeWarehouse(cmd.Principal(), "delete item", w); err != nil {
		return err
	}

	if err = item.SoftDelete(time.Now()); err != nil {
		return err
	}

	if err = uow.ItemRepository().Update(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdateItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewUpdateItemCommandHandler(uowFactory CatalogUoWFactory) UpdateItemCommandHandler {
	return UpdateItemCommandHandler{uowFactory: uowFactory}
}

// Handle returns the updated item. Order lines keep their price snapshot.
func (h UpdateItemCommandHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*inventory.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := lockLiveItem(ctx, uow, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	w, err := uow.WarehouseRepository().Get(ctx, item.WarehouseID())
	if err != nil {
		return nil, err
	}
	if err = authorizeWarehouse(cmd.Principal(), "update item", w); err != nil {
		return nil, err
	}

	if price := cmd.Price(); price != nil {
		if err = item.ChangePrice(*price); err != nil {
			return nil, err
		}
	}
	if quantity := cmd.Quantity(); quantity != nil {
		if err = item.SetQuantity(*quantity); err != nil {
			return nil, err
		}
	}

	if err = uow.ItemRepository().Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}

func lockLiveItem(ctx context.Context, uow CatalogUoW, itemID kernel.UUID) (*inventory.Item, error) {
	items, err := uow.ItemRepository().GetForUpdate(ctx, []kernel.UUID{itemID})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 || items[0].IsDeleted() {
		return nil, errs.NewObjectNotFoundError("item", itemID.String())
	}
	return items[0], nil
}
