package repository

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"foodplatform/pkg/order/domain/model"
)

// memoryRepository keeps orders in a map. Callers always get copies, and
// writes are checked against the stored version.
type memoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
}

func NewMemoryRepository() model.OrderRepository {
	return &memoryRepository{orders: make(map[string]*model.Order)}
}

func (r *memoryRepository) NextID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r *memoryRepository) Create(order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return errors.Wrapf(model.ErrOrderExists, "order %s", order.ID)
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *memoryRepository) Find(id string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.Wrapf(model.ErrOrderNotFound, "order %s", id)
	}
	return order.Clone(), nil
}

func (r *memoryRepository) Update(order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[order.ID]
	if !ok {
		return errors.Wrapf(model.ErrOrderNotFound, "order %s", order.ID)
	}
	if existing.Version != order.Version-1 {
		return errors.Wrapf(model.ErrOptimisticLock, "order %s at version %d", order.ID, existing.Version)
	}
	r.orders[order.ID] = order.Clone()
	return nil
}
