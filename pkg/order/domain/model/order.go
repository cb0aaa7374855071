package model

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderExists        = errors.New("order already exists")
	ErrOptimisticLock     = errors.New("order has been modified by another transaction")
	ErrRestaurantMismatch = errors.New("order does not belong to this restaurant")
	ErrOrderNotPending    = errors.New("order is not in PENDING state")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidItem        = errors.New("invalid order item")
)

// Customer is the contact data captured with the order. It is not linked to
// the customer directory.
type Customer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

type Item struct {
	ItemID         string
	Name           string
	Price          float64
	Quantity       int
	Customizations []string
}

type Order struct {
	ID                    string
	Customer              Customer
	RestaurantID          string
	Items                 []Item
	DeliveryAddress       string
	SpecialInstructions   string
	Status                OrderStatus
	TotalAmount           float64
	RejectionReason       string
	EstimatedDeliveryTime time.Time
	Version               int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (o *Order) Clone() *Order {
	clone := *o
	clone.Items = make([]Item, len(o.Items))
	for i, item := range o.Items {
		item.Customizations = append([]string(nil), item.Customizations...)
		clone.Items[i] = item
	}
	return &clone
}

// TotalAmount sums price times quantity, rounded to cents.
func TotalAmount(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

func ValidateItems(items []Item) error {
	for _, item := range items {
		if item.Quantity < 0 {
			return errors.Wrapf(ErrInvalidItem, "item %s has negative quantity %d", item.ItemID, item.Quantity)
		}
		if item.Price < 0 {
			return errors.Wrapf(ErrInvalidItem, "item %s has negative price %.2f", item.ItemID, item.Price)
		}
	}
	return nil
}

type OrderRepository interface {
	NextID() (string, error)
	Create(order *Order) error
	Find(id string) (*Order, error)
	Update(order *Order) error
}
