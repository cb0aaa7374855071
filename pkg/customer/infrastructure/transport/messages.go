package transport

import (
	"time"

	"foodplatform/pkg/customer/domain/model"
)

type Customer struct {
	CustomerID        string    `json:"customer_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	DeliveryAddresses []string  `json:"delivery_addresses"`
	Version           int       `json:"version"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type GetCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

type UpdateCustomerRequest struct {
	CustomerID        string   `json:"customer_id"`
	Name              string   `json:"name,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	DeliveryAddresses []string `json:"delivery_addresses,omitempty"`
}

func toCustomer(c *model.Customer) *Customer {
	return &Customer{
		CustomerID:        c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		DeliveryAddresses: c.DeliveryAddresses,
		Version:           c.Version,
		UpdatedAt:         c.UpdatedAt,
	}
}

func fromCustomer(c *Customer) *model.Customer {
	return &model.Customer{
		ID:                c.CustomerID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		DeliveryAddresses: c.DeliveryAddresses,
		Version:           c.Version,
		UpdatedAt:         c.UpdatedAt,
	}
}
