package transport

import (
	"time"

	"foodplatform/pkg/order/domain/model"
	"foodplatform/pkg/order/domain/service"
)

type OrderItem struct {
	ItemID         string   `json:"item_id"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations,omitempty"`
}

type CreateOrderRequest struct {
	CustomerName        string      `json:"customer_name"`
	CustomerEmail       string      `json:"customer_email"`
	CustomerPhone       string      `json:"customer_phone"`
	RestaurantID        string      `json:"restaurant_id"`
	Items               []OrderItem `json:"items"`
	DeliveryAddress     string      `json:"delivery_address"`
	SpecialInstructions string      `json:"special_instructions"`
}

type GetOrderRequest struct {
	OrderID string `json:"order_id"`
}

type UpdateOrderStatusRequest struct {
	OrderID string `json:"order_id"`
	Status  int32  `json:"status"`
}

type RestaurantOrderResponseRequest struct {
	RestaurantID    string `json:"restaurant_id"`
	OrderID         string `json:"order_id"`
	Accepted        bool   `json:"accepted"`
	RejectionReason string `json:"rejection_reason"`
}

// Order is the wire form of an order. Status travels as its numeric code.
type Order struct {
	OrderID               string      `json:"order_id"`
	CustomerID            string      `json:"customer_id"`
	CustomerName          string      `json:"customer_name"`
	CustomerEmail         string      `json:"customer_email"`
	CustomerPhone         string      `json:"customer_phone"`
	RestaurantID          string      `json:"restaurant_id"`
	Items                 []OrderItem `json:"items"`
	DeliveryAddress       string      `json:"delivery_address"`
	SpecialInstructions   string      `json:"special_instructions"`
	Status                int32       `json:"status"`
	TotalAmount           float64     `json:"total_amount"`
	RejectionReason       string      `json:"rejection_reason,omitempty"`
	EstimatedDeliveryTime time.Time   `json:"estimated_delivery_time"`
	Version               int         `json:"version"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

func toItems(items []model.Item) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, OrderItem(item))
	}
	return out
}

func fromItems(items []OrderItem) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		out = append(out, model.Item(item))
	}
	return out
}

func toOrder(o *model.Order) *Order {
	return &Order{
		OrderID:               o.ID,
		CustomerID:            o.Customer.ID,
		CustomerName:          o.Customer.Name,
		CustomerEmail:         o.Customer.Email,
		CustomerPhone:         o.Customer.Phone,
		RestaurantID:          o.RestaurantID,
		Items:                 toItems(o.Items),
		DeliveryAddress:       o.DeliveryAddress,
		SpecialInstructions:   o.SpecialInstructions,
		Status:                int32(o.Status),
		TotalAmount:           o.TotalAmount,
		RejectionReason:       o.RejectionReason,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		Version:               o.Version,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

func fromOrder(o *Order) *model.Order {
	return &model.Order{
		ID: o.OrderID,
		Customer: model.Customer{
			ID:    o.CustomerID,
			Name:  o.CustomerName,
			Email: o.CustomerEmail,
			Phone: o.CustomerPhone,
		},
		RestaurantID:          o.RestaurantID,
		Items:                 fromItems(o.Items),
		DeliveryAddress:       o.DeliveryAddress,
		SpecialInstructions:   o.SpecialInstructions,
		Status:                model.OrderStatus(o.Status),
		TotalAmount:           o.TotalAmount,
		RejectionReason:       o.RejectionReason,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		Version:               o.Version,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

func toCreateOrderRequest(p service.CreateOrderParams) *CreateOrderRequest {
	return &CreateOrderRequest{
		CustomerName:        p.CustomerName,
		CustomerEmail:       p.CustomerEmail,
		CustomerPhone:       p.CustomerPhone,
		RestaurantID:        p.RestaurantID,
		Items:               toItems(p.Items),
		DeliveryAddress:     p.DeliveryAddress,
		SpecialInstructions: p.SpecialInstructions,
	}
}

func fromCreateOrderRequest(r *CreateOrderRequest) service.CreateOrderParams {
	return service.CreateOrderParams{
		CustomerName:        r.CustomerName,
		CustomerEmail:       r.CustomerEmail,
		CustomerPhone:       r.CustomerPhone,
		RestaurantID:        r.RestaurantID,
		Items:               fromItems(r.Items),
		DeliveryAddress:     r.DeliveryAddress,
		SpecialInstructions: r.SpecialInstructions,
	}
}
