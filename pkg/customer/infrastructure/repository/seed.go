package repository

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"foodplatform/pkg/customer/domain/model"
)

type seedFile struct {
	Customers []seedCustomer `json:"customers"`
}

type seedCustomer struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	DeliveryAddresses []string `json:"delivery_addresses"`
}

func DefaultCustomers() []*model.Customer {
	return []*model.Customer{{
		ID:    "customer123",
		Name:  "John Doe",
		Email: "john.doe@example.com",
		Phone: "555-123-4567",
		DeliveryAddresses: []string{
			"123 Main St, Anytown, USA",
			"456 Work Ave, Anytown, USA",
		},
		Version: 1,
	}}
}

func LoadCustomers(filePath string) ([]*model.Customer, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read seed file %s", filePath)
	}

	var data seedFile
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, errors.Wrapf(err, "parse seed file %s", filePath)
	}

	customers := make([]*model.Customer, 0, len(data.Customers))
	for _, c := range data.Customers {
		if c.ID == "" {
			return nil, errors.Errorf("seed file %s: customer without id", filePath)
		}
		customers = append(customers, &model.Customer{
			ID:                c.ID,
			Name:              c.Name,
			Email:             c.Email,
			Phone:             c.Phone,
			DeliveryAddresses: c.DeliveryAddresses,
			Version:           1,
		})
	}
	return customers, nil
}
