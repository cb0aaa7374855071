package model

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrOptimisticLock     = errors.New("restaurant has been modified by another transaction")
	ErrInvalidMenuItem    = errors.New("invalid menu item")
)

type MenuItem struct {
	ItemID      string
	Name        string
	Description string
	Price       float64
	Available   bool
}

type Restaurant struct {
	ID        string
	Name      string
	Address   string
	IsOpen    bool
	Menu      []MenuItem
	Version   int
	UpdatedAt time.Time
}

func (r *Restaurant) Clone() *Restaurant {
	clone := *r
	clone.Menu = append([]MenuItem(nil), r.Menu...)
	return &clone
}

// Payment is synthesized on read. It does not come from a payment ledger.
type Payment struct {
	PaymentID string
	OrderID   string
	Amount    float64
	Status    string
	Timestamp time.Time
}

func ValidateMenu(items []MenuItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Price < 0 {
			return errors.Wrapf(ErrInvalidMenuItem, "item %s has negative price %.2f", item.ItemID, item.Price)
		}
		if _, dup := seen[item.ItemID]; dup && item.ItemID != "" {
			return errors.Wrapf(ErrInvalidMenuItem, "item %s is listed twice", item.ItemID)
		}
		seen[item.ItemID] = struct{}{}
	}
	return nil
}

type RestaurantRepository interface {
	Find(id string) (*Restaurant, error)
	Update(restaurant *Restaurant) error
}
