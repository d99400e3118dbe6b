package http

import (
	"time"

	"stockway/internal/core/application/usecases/queries"
	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/payment"
	"stockway/internal/core/domain/model/rider"
	"stockway/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l LocationDTO) toGeoPoint() (kernel.GeoPoint, error) {
	return kernel.NewGeoPoint(l.Latitude, l.Longitude)
}

func newLocationDTO(p kernel.GeoPoint) LocationDTO {
	return LocationDTO{Latitude: p.Lat(), Longitude: p.Lng()}
}

type SyncUserRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

func newUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID().String(),
		Email:       u.Email(),
		FullName:    u.FullName(),
		PhoneNumber: u.PhoneNumber(),
		Role:        u.Role().String(),
	}
}

type PlaceOrderLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type PlaceOrderRequest struct {
	WarehouseID string           `json:"warehouse_id"`
	Items       []PlaceOrderLine `json:"items"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

type AssignRiderRequest struct {
	RiderID string `json:"rider_id"`
}

type RegisterRiderRequest struct {
	UserID      string `json:"user_id"`
	WarehouseID string `json:"warehouse_id"`
}

type CreateWarehouseRequest struct {
	Name     string       `json:"name"`
	Address  string       `json:"address"`
	Location *LocationDTO `json:"location"`
}

type SetWarehouseActiveRequest struct {
	Active bool `json:"active"`
}

type CreateItemRequest struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type RestockItemRequest struct {
	Units int `json:"units"`
}

// UpdateItemRequest changes whichever of price and quantity is present.
type UpdateItemRequest struct {
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
}

type SetRiderStatusRequest struct {
	Status string `json:"status"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type OrderResponse struct {
	ID              string                  `json:"id"`
	Status          string                  `json:"status"`
	TotalAmount     string                  `json:"total_amount"`
	RejectionReason string                  `json:"rejection_reason,omitempty"`
	Shopkeeper      OrderShopkeeperResponse `json:"shopkeeper"`
	Warehouse       OrderWarehouseResponse  `json:"warehouse"`
	Items           []OrderLineResponse     `json:"items"`
	Delivery        *OrderDeliveryResponse  `json:"delivery"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

type OrderShopkeeperResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type OrderWarehouseResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type OrderLineResponse struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

type OrderDeliveryResponse struct {
	RiderID     *string `json:"rider_id"`
	Status      string  `json:"status"`
	DeliveryFee string  `json:"delivery_fee"`
}

func newOrderResponse(o queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID.String(),
		Status:          o.Status,
		TotalAmount:     money(o.TotalAmount),
		RejectionReason: o.RejectionReason,
		Shopkeeper: OrderShopkeeperResponse{
			ID:          o.Shopkeeper.ID.String(),
			Email:       o.Shopkeeper.Email,
			PhoneNumber: o.Shopkeeper.PhoneNumber,
		},
		Warehouse: OrderWarehouseResponse{
			ID:      o.Warehouse.ID.String(),
			Name:    o.Warehouse.Name,
			Address: o.Warehouse.Address,
		},
		Items:     make([]OrderLineResponse, 0, len(o.Lines)),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}

	for _, l := range o.Lines {
		resp.Items = append(resp.Items, OrderLineResponse{
			ItemID:   l.ItemID.String(),
			Name:     l.Name,
			SKU:      l.SKU,
			Quantity: l.Quantity,
			Price:    money(l.Price),
			Total:    money(l.Total),
		})
	}

	if o.Delivery != nil {
		d := &OrderDeliveryResponse{Status: o.Delivery.Status, DeliveryFee: money(o.Delivery.DeliveryFee)}
		if o.Delivery.RiderID != nil {
			riderID := o.Delivery.RiderID.String()
			d.RiderID = &riderID
		}
		resp.Delivery = d
	}

	return resp
}

type OrderSummaryResponse struct {
	ID              string    `json:"id"`
	ShopkeeperID    string    `json:"shopkeeper_id"`
	ShopkeeperEmail string    `json:"shopkeeper_email"`
	WarehouseID     string    `json:"warehouse_id"`
	WarehouseName   string    `json:"warehouse_name"`
	Status          string    `json:"status"`
	TotalAmount     string    `json:"total_amount"`
	ItemCount       int       `json:"item_count"`
	CreatedAt       time.Time `json:"created_at"`
}

func newOrderSummaries(rows []queries.OrderSummary) []OrderSummaryResponse {
	resp := make([]OrderSummaryResponse, 0, len(rows))
	for _, o := range rows {
		resp = append(resp, OrderSummaryResponse{
			ID:              o.ID.String(),
			ShopkeeperID:    o.ShopkeeperID.String(),
			ShopkeeperEmail: o.ShopkeeperEmail,
			WarehouseID:     o.WarehouseID.String(),
			WarehouseName:   o.WarehouseName,
			Status:          o.Status,
			TotalAmount:     money(o.TotalAmount),
			ItemCount:       o.ItemCount,
			CreatedAt:       o.CreatedAt,
		})
	}
	return resp
}

type PayoutResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	RiderID    string    `json:"rider_id"`
	Amount     string    `json:"amount"`
	DistanceKm string    `json:"distance_km"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func newPayoutResponse(p *payment.Payment) *PayoutResponse {
	if p == nil {
		return nil
	}
	return &PayoutResponse{
		ID:         p.ID().String(),
		OrderID:    p.OrderID().String(),
		RiderID:    p.PayeeID().String(),
		Amount:     money(p.Amount()),
		DistanceKm: money(p.DistanceKm()),
		Status:     string(p.Status()),
		CreatedAt:  p.CreatedAt(),
	}
}

func newPayoutResponses(rows []queries.ListWarehousePayoutsQueryResponse) []PayoutResponse {
	resp := make([]PayoutResponse, 0, len(rows))
	for _, p := range rows {
		resp = append(resp, PayoutResponse{
			ID:         p.ID.String(),
			OrderID:    p.OrderID.String(),
			RiderID:    p.RiderID.String(),
			Amount:     money(p.Amount),
			DistanceKm: money(p.DistanceKm),
			Status:     p.Status,
			CreatedAt:  p.CreatedAt,
		})
	}
	return resp
}

type CompletedDeliveryResponse struct {
	Order  OrderResponse   `json:"order"`
	Payout *PayoutResponse `json:"payout"`
}

type RiderDeliveryResponse struct {
	OrderID          string    `json:"order_id"`
	OrderStatus      string    `json:"order_status"`
	DeliveryStatus   string    `json:"delivery_status"`
	DeliveryFee      string    `json:"delivery_fee"`
	WarehouseName    string    `json:"warehouse_name"`
	WarehouseAddress string    `json:"warehouse_address"`
	TotalAmount      string    `json:"total_amount"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func newRiderDeliveries(rows []queries.ListRiderDeliveriesQueryResponse) []RiderDeliveryResponse {
	resp := make([]RiderDeliveryResponse, 0, len(rows))
	for _, d := range rows {
		resp = append(resp, RiderDeliveryResponse{
			OrderID:          d.OrderID.String(),
			OrderStatus:      d.OrderStatus,
			DeliveryStatus:   d.DeliveryStatus,
			DeliveryFee:      money(d.DeliveryFee),
			WarehouseName:    d.WarehouseName,
			WarehouseAddress: d.WarehouseAddress,
			TotalAmount:      money(d.TotalAmount),
			UpdatedAt:        d.UpdatedAt,
		})
	}
	return resp
}

type ItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	IsDeleted bool   `json:"is_deleted"`
}

func newItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:        i.ID().String(),
		Name:      i.Name(),
		SKU:       i.SKU(),
		Price:     money(i.Price()),
		Quantity:  i.Quantity(),
		IsDeleted: i.IsDeleted(),
	}
}

func newItemResponses(rows []queries.ListItemsQueryResponse) []ItemResponse {
	resp := make([]ItemResponse, 0, len(rows))
	for _, i := range rows {
		resp = append(resp, ItemResponse{
			ID:        i.ID.String(),
			Name:      i.Name,
			SKU:       i.SKU,
			Price:     money(i.Price),
			Quantity:  i.Quantity,
			IsDeleted: i.IsDeleted,
		})
	}
	return resp
}

type NearbyWarehouseResponse struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Address    string      `json:"address"`
	Location   LocationDTO `json:"location"`
	DistanceKm float64     `json:"distance_km"`
}

func newNearbyWarehouses(rows []queries.FindNearbyWarehousesQueryResponse) []NearbyWarehouseResponse {
	resp := make([]NearbyWarehouseResponse, 0, len(rows))
	for _, w := range rows {
		resp = append(resp, NearbyWarehouseResponse{
			ID:         w.ID.String(),
			Name:       w.Name,
			Address:    w.Address,
			Location:   newLocationDTO(w.Location),
			DistanceKm: w.DistanceKm,
		})
	}
	return resp
}

type NearbyRiderResponse struct {
	RiderID    string      `json:"rider_id"`
	FullName   string      `json:"full_name"`
	Location   LocationDTO `json:"location"`
	DistanceKm float64     `json:"distance_km"`
}

func newNearbyRiders(rows []queries.FindNearbyRidersQueryResponse) []NearbyRiderResponse {
	resp := make([]NearbyRiderResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, NearbyRiderResponse{
			RiderID:    r.RiderID.String(),
			FullName:   r.FullName,
			Location:   newLocationDTO(r.Location),
			DistanceKm: r.DistanceKm,
		})
	}
	return resp
}

type RiderResponse struct {
	RiderID          string       `json:"rider_id"`
	FullName         string       `json:"full_name"`
	Email            string       `json:"email"`
	WarehouseID      string       `json:"warehouse_id"`
	WarehouseName    string       `json:"warehouse_name"`
	WarehouseAddress string       `json:"warehouse_address"`
	Status           string       `json:"status"`
	Location         *LocationDTO `json:"location"`
	TotalEarnings    string       `json:"total_earnings"`
	CreatedAt        time.Time    `json:"created_at"`
}

func newRiderResponse(r queries.RiderQueryResponse) RiderResponse {
	resp := RiderResponse{
		RiderID:          r.RiderID.String(),
		FullName:         r.FullName,
		Email:            r.Email,
		WarehouseID:      r.WarehouseID.String(),
		WarehouseName:    r.WarehouseName,
		WarehouseAddress: r.WarehouseAddress,
		Status:           r.Status,
		TotalEarnings:    money(r.TotalEarnings),
		CreatedAt:        r.CreatedAt,
	}
	if r.Latitude != nil && r.Longitude != nil {
		resp.Location = &LocationDTO{Latitude: *r.Latitude, Longitude: *r.Longitude}
	}
	return resp
}

func newRiderResponses(rows []queries.RiderQueryResponse) []RiderResponse {
	resp := make([]RiderResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, newRiderResponse(r))
	}
	return resp
}

// RiderStatusResponse is returned after a rider changes duty status.
type RiderStatusResponse struct {
	RiderID       string `json:"rider_id"`
	Status        string `json:"status"`
	TotalEarnings string `json:"total_earnings"`
}

func newRiderStatusResponse(r *rider.Rider) RiderStatusResponse {
	return RiderStatusResponse{
		RiderID:       r.ID().String(),
		Status:        r.Status().String(),
		TotalEarnings: money(r.TotalEarnings()),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
