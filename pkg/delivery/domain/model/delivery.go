package model

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrDeliveryNotFound = errors.New("delivery not found")
	ErrDeliveryExists   = errors.New("delivery already exists")
	ErrOptimisticLock   = errors.New("delivery has been modified by another transaction")
	ErrInvalidStatus    = errors.New("invalid delivery status")
	ErrOrderNotFound    = errors.New("order not found")
	// ErrOrderServiceFailure means the order store could not be reached or
	// refused a call the delivery store depends on.
	ErrOrderServiceFailure = errors.New("order service call failed")
)

type Delivery struct {
	ID                    string
	OrderID               string
	DriverID              string
	RestaurantAddress     string
	CustomerAddress       string
	Status                DeliveryStatus
	CurrentLocation       string
	AssignedAt            time.Time
	PickedUpAt            time.Time
	DeliveredAt           time.Time
	EstimatedDeliveryTime time.Time
	Version               int
	UpdatedAt             time.Time
}

func (d *Delivery) Clone() *Delivery {
	clone := *d
	return &clone
}

// DeliverySnapshot is what tracking reports about a delivery at one moment.
type DeliverySnapshot struct {
	DeliveryID           string
	DriverID             string
	CurrentLocation      string
	Status               DeliveryStatus
	EstimatedArrivalTime time.Time
}

func (d *Delivery) Snapshot() DeliverySnapshot {
	return DeliverySnapshot{
		DeliveryID:           d.ID,
		DriverID:             d.DriverID,
		CurrentLocation:      d.CurrentLocation,
		Status:               d.Status,
		EstimatedArrivalTime: d.EstimatedDeliveryTime,
	}
}

type DeliveryRepository interface {
	NextID() (string, error)
	Create(delivery *Delivery) error
	Find(id string) (*Delivery, error)
	Update(delivery *Delivery) error
}
