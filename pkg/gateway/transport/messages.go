package transport

import (
	"time"

	customermodel "foodplatform/pkg/customer/domain/model"
	deliverymodel "foodplatform/pkg/delivery/domain/model"
	ordermodel "foodplatform/pkg/order/domain/model"
	restaurantmodel "foodplatform/pkg/restaurant/domain/model"
)

type orderItemBody struct {
	ItemID         string   `json:"item_id"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations,omitempty"`
}

type createOrderBody struct {
	CustomerName        string          `json:"customer_name"`
	CustomerEmail       string          `json:"customer_email"`
	CustomerPhone       string          `json:"customer_phone"`
	RestaurantID        string          `json:"restaurant_id"`
	Items               []orderItemBody `json:"items"`
	DeliveryAddress     string          `json:"delivery_address"`
	SpecialInstructions string          `json:"special_instructions"`
}

// Statuses arrive as numeric codes. A pointer tells a missing field from 0.
type updateOrderStatusBody struct {
	Status *int32 `json:"status"`
}

type restaurantResponseBody struct {
	Accepted        bool   `json:"accepted"`
	RejectionReason string `json:"rejection_reason"`
}

type assignDriverBody struct {
	OrderID  string `json:"order_id"`
	DriverID string `json:"driver_id"`
}

type updateDeliveryStatusBody struct {
	Status          *int32 `json:"status"`
	CurrentLocation string `json:"current_location"`
}

type menuItemBody struct {
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   *bool   `json:"available"`
}

type updateMenuBody struct {
	MenuItems []menuItemBody `json:"menu_items"`
}

type updateCustomerBody struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	DeliveryAddresses []string `json:"delivery_addresses"`
}

// Responses carry statuses as symbolic names through the models' MarshalText.

type orderResponse struct {
	OrderID               string                 `json:"order_id"`
	CustomerName          string                 `json:"customer_name"`
	CustomerEmail         string                 `json:"customer_email"`
	CustomerPhone         string                 `json:"customer_phone"`
	RestaurantID          string                 `json:"restaurant_id"`
	Items                 []orderItemBody        `json:"items"`
	DeliveryAddress       string                 `json:"delivery_address"`
	SpecialInstructions   string                 `json:"special_instructions"`
	Status                ordermodel.OrderStatus `json:"status"`
	TotalAmount           float64                `json:"total_amount"`
	RejectionReason       string                 `json:"rejection_reason,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
	EstimatedDeliveryTime time.Time              `json:"estimated_delivery_time"`
}

type deliveryResponse struct {
	DeliveryID            string                       `json:"delivery_id"`
	OrderID               string                       `json:"order_id"`
	DriverID              string                       `json:"driver_id"`
	RestaurantAddress     string                       `json:"restaurant_address"`
	CustomerAddress       string                       `json:"customer_address"`
	Status                deliverymodel.DeliveryStatus `json:"status"`
	CurrentLocation       string                       `json:"current_location"`
	AssignedAt            time.Time                    `json:"assigned_at"`
	PickedUpAt            *time.Time                   `json:"picked_up_at,omitempty"`
	DeliveredAt           *time.Time                   `json:"delivered_at,omitempty"`
	EstimatedDeliveryTime time.Time                    `json:"estimated_delivery_time"`
}

type snapshotResponse struct {
	DeliveryID           string                       `json:"delivery_id"`
	DriverID             string                       `json:"driver_id"`
	CurrentLocation      string                       `json:"current_location"`
	Status               deliverymodel.DeliveryStatus `json:"status"`
	EstimatedArrivalTime time.Time                    `json:"estimated_arrival_time"`
}

type menuItemResponse struct {
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
}

type restaurantResponse struct {
	RestaurantID string             `json:"restaurant_id"`
	Name         string             `json:"name"`
	Address      string             `json:"address"`
	IsOpen       bool               `json:"is_open"`
	MenuItems    []menuItemResponse `json:"menu_items"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty"`
}

type paymentResponse struct {
	PaymentID string    `json:"payment_id"`
	OrderID   string    `json:"order_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type customerResponse struct {
	CustomerID        string   `json:"customer_id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	DeliveryAddresses []string `json:"delivery_addresses"`
}

func toOrderResponse(o *ordermodel.Order) orderResponse {
	items := make([]orderItemBody, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemBody(item))
	}
	return orderResponse{
		OrderID:               o.ID,
		CustomerName:          o.Customer.Name,
		CustomerEmail:         o.Customer.Email,
		CustomerPhone:         o.Customer.Phone,
		RestaurantID:          o.RestaurantID,
		Items:                 items,
		DeliveryAddress:       o.DeliveryAddress,
		SpecialInstructions:   o.SpecialInstructions,
		Status:                o.Status,
		TotalAmount:           o.TotalAmount,
		RejectionReason:       o.RejectionReason,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func toDeliveryResponse(d *deliverymodel.Delivery) deliveryResponse {
	return deliveryResponse{
		DeliveryID:            d.ID,
		OrderID:               d.OrderID,
		DriverID:              d.DriverID,
		RestaurantAddress:     d.RestaurantAddress,
		CustomerAddress:       d.CustomerAddress,
		Status:                d.Status,
		CurrentLocation:       d.CurrentLocation,
		AssignedAt:            d.AssignedAt,
		PickedUpAt:            optionalTime(d.PickedUpAt),
		DeliveredAt:           optionalTime(d.DeliveredAt),
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
	}
}

func toSnapshotResponse(s deliverymodel.DeliverySnapshot) snapshotResponse {
	return snapshotResponse(s)
}

func toRestaurantResponse(r *restaurantmodel.Restaurant) restaurantResponse {
	items := make([]menuItemResponse, 0, len(r.Menu))
	for _, item := range r.Menu {
		items = append(items, menuItemResponse(item))
	}
	return restaurantResponse{
		RestaurantID: r.ID,
		Name:         r.Name,
		Address:      r.Address,
		IsOpen:       r.IsOpen,
		MenuItems:    items,
		UpdatedAt:    optionalTime(r.UpdatedAt),
	}
}

func toCustomerResponse(c *customermodel.Customer) customerResponse {
	return customerResponse{
		CustomerID:        c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		DeliveryAddresses: c.DeliveryAddresses,
	}
}
