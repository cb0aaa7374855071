package repository

import (
	"sync"

	"github.com/pkg/errors"

	"foodplatform/pkg/customer/domain/model"
)

type memoryRepository struct {
	mu        sync.RWMutex
	customers map[string]*model.Customer
}

func NewMemoryRepository(customers []*model.Customer) model.CustomerRepository {
	repo := &memoryRepository{customers: make(map[string]*model.Customer, len(customers))}
	for _, c := range customers {
		repo.customers[c.ID] = c.Clone()
	}
	return repo
}

func (r *memoryRepository) Find(id string) (*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, errors.Wrapf(model.ErrCustomerNotFound, "customer %s", id)
	}
	return customer.Clone(), nil
}

func (r *memoryRepository) Update(customer *model.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.customers[customer.ID]
	if !ok {
		return errors.Wrapf(model.ErrCustomerNotFound, "customer %s", customer.ID)
	}
	if existing.Version != customer.Version-1 {
		return errors.Wrapf(model.ErrOptimisticLock, "customer %s at version %d", customer.ID, existing.Version)
	}
	r.customers[customer.ID] = customer.Clone()
	return nil
}
