package model

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOptimisticLock   = errors.New("customer has been modified by another transaction")
)

type Customer struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	DeliveryAddresses []string
	Version           int
	UpdatedAt         time.Time
}

func (c *Customer) Clone() *Customer {
	clone := *c
	clone.DeliveryAddresses = append([]string(nil), c.DeliveryAddresses...)
	return &clone
}

// CustomerUpdate carries the fields to change. Empty fields are left as they are.
type CustomerUpdate struct {
	Name              string
	Email             string
	Phone             string
	DeliveryAddresses []string
}

func (c *Customer) Apply(update CustomerUpdate) {
	if update.Name != "" {
		c.Name = update.Name
	}
	if update.Email != "" {
		c.Email = update.Email
	}
	if update.Phone != "" {
		c.Phone = update.Phone
	}
	if len(update.DeliveryAddresses) > 0 {
		c.DeliveryAddresses = append([]string(nil), update.DeliveryAddresses...)
	}
}

type CustomerRepository interface {
	Find(id string) (*Customer, error)
	Update(customer *Customer) error
}
