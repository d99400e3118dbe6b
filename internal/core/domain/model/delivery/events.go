package delivery

import (
	"stockway/internal/pkg/ddd"
)

const (
	EventRiderAssigned     = "delivery.rider_assigned"
	EventDeliveryCompleted = "delivery.completed"
)

type RiderAssignedEvent struct {
	ddd.BaseEvent
	OrderID     string `json:"order_id"`
	WarehouseID string `json:"warehouse_id"`
	RiderID     string `json:"rider_id"`
}

type CompletedEvent struct {
	ddd.BaseEvent
	OrderID     string `json:"order_id"`
	WarehouseID string `json:"warehouse_id"`
	RiderID     string `json:"rider_id"`
	DeliveryFee string `json:"delivery_fee"`
}
