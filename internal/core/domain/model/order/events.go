package order

import (
	"stockway/internal/pkg/ddd"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

type LinePayload struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type PlacedEvent struct {
	ddd.BaseEvent
	OrderID      string        `json:"order_id"`
	ShopkeeperID string        `json:"shopkeeper_id"`
	WarehouseID  string        `json:"warehouse_id"`
	TotalAmount  string        `json:"total_amount"`
	Lines        []LinePayload `json:"lines"`
}

type StatusChangedEvent struct {
	ddd.BaseEvent
	OrderID      string `json:"order_id"`
	ShopkeeperID string `json:"shopkeeper_id"`
	WarehouseID  string `json:"warehouse_id"`
	From         string `json:"from"`
	To           string `json:"to"`
	Reason       string `json:"reason,omitempty"`
}

func newPlacedEvent(o *Order) PlacedEvent {
	lines := make([]LinePayload, 0, len(o.lines))
	for _, l := range o.lines {
		lines = append(lines, LinePayload{
			ItemID:   l.itemID.String(),
			Quantity: l.quantity,
			Price:    l.price.StringFixed(2),
		})
	}

	return PlacedEvent{
		BaseEvent:    ddd.NewBaseEvent(EventOrderPlaced, o.id.Bytes()),
		OrderID:      o.id.String(),
		ShopkeeperID: o.shopkeeperID.String(),
		WarehouseID:  o.warehouseID.String(),
		TotalAmount:  o.totalAmount.StringFixed(2),
		Lines:        lines,
	}
}

func newStatusChangedEvent(o *Order, from Status) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent:    ddd.NewBaseEvent(EventOrderStatusChanged, o.id.Bytes()),
		OrderID:      o.id.String(),
		ShopkeeperID: o.shopkeeperID.String(),
		WarehouseID:  o.warehouseID.String(),
		From:         from.String(),
		To:           o.status.String(),
		Reason:       o.rejectionReason,
	}
}
