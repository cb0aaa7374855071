package transport

import (
	"time"

	"foodplatform/pkg/delivery/domain/model"
)

type AssignDriverRequest struct {
	OrderID  string `json:"order_id"`
	DriverID string `json:"driver_id"`
}

type GetDeliveryRequest struct {
	DeliveryID string `json:"delivery_id"`
}

type UpdateDeliveryStatusRequest struct {
	DeliveryID      string `json:"delivery_id"`
	Status          int32  `json:"status"`
	CurrentLocation string `json:"current_location"`
}

type TrackDeliveryRequest struct {
	DeliveryID string `json:"delivery_id"`
}

type Delivery struct {
	DeliveryID            string     `json:"delivery_id"`
	OrderID               string     `json:"order_id"`
	DriverID              string     `json:"driver_id"`
	RestaurantAddress     string     `json:"restaurant_address"`
	CustomerAddress       string     `json:"customer_address"`
	Status                int32      `json:"status"`
	CurrentLocation       string     `json:"current_location"`
	AssignedAt            time.Time  `json:"assigned_at"`
	PickedUpAt            *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt           *time.Time `json:"delivered_at,omitempty"`
	EstimatedDeliveryTime time.Time  `json:"estimated_delivery_time"`
	Version               int        `json:"version"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type DeliverySnapshot struct {
	DeliveryID           string    `json:"delivery_id"`
	DriverID             string    `json:"driver_id"`
	CurrentLocation      string    `json:"current_location"`
	Status               int32     `json:"status"`
	EstimatedArrivalTime time.Time `json:"estimated_arrival_time"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func toDelivery(d *model.Delivery) *Delivery {
	return &Delivery{
		DeliveryID:            d.ID,
		OrderID:               d.OrderID,
		DriverID:              d.DriverID,
		RestaurantAddress:     d.RestaurantAddress,
		CustomerAddress:       d.CustomerAddress,
		Status:                int32(d.Status),
		CurrentLocation:       d.CurrentLocation,
		AssignedAt:            d.AssignedAt,
		PickedUpAt:            optionalTime(d.PickedUpAt),
		DeliveredAt:           optionalTime(d.DeliveredAt),
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		Version:               d.Version,
		UpdatedAt:             d.UpdatedAt,
	}
}

func fromDelivery(d *Delivery) *model.Delivery {
	return &model.Delivery{
		ID:                    d.DeliveryID,
		OrderID:               d.OrderID,
		DriverID:              d.DriverID,
		RestaurantAddress:     d.RestaurantAddress,
		CustomerAddress:       d.CustomerAddress,
		Status:                model.DeliveryStatus(d.Status),
		CurrentLocation:       d.CurrentLocation,
		AssignedAt:            d.AssignedAt,
		PickedUpAt:            timeOrZero(d.PickedUpAt),
		DeliveredAt:           timeOrZero(d.DeliveredAt),
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		Version:               d.Version,
		UpdatedAt:             d.UpdatedAt,
	}
}

func toSnapshot(s model.DeliverySnapshot) *DeliverySnapshot {
	return &DeliverySnapshot{
		DeliveryID:           s.DeliveryID,
		DriverID:             s.DriverID,
		CurrentLocation:      s.CurrentLocation,
		Status:               int32(s.Status),
		EstimatedArrivalTime: s.EstimatedArrivalTime,
	}
}

func fromSnapshot(s *DeliverySnapshot) model.DeliverySnapshot {
	return model.DeliverySnapshot{
		DeliveryID:           s.DeliveryID,
		DriverID:             s.DriverID,
		CurrentLocation:      s.CurrentLocation,
		Status:               model.DeliveryStatus(s.Status),
		EstimatedArrivalTime: s.EstimatedArrivalTime,
	}
}
