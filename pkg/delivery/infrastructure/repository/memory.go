package repository

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"foodplatform/pkg/delivery/domain/model"
)

type memoryRepository struct {
	mu         sync.RWMutex
	deliveries map[string]*model.Delivery
}

func NewMemoryRepository() model.DeliveryRepository {
	return &memoryRepository{deliveries: make(map[string]*model.Delivery)}
}

func (r *memoryRepository) NextID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r *memoryRepository) Create(delivery *model.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.deliveries[delivery.ID]; exists {
		return errors.Wrapf(model.ErrDeliveryExists, "delivery %s", delivery.ID)
	}
	r.deliveries[delivery.ID] = delivery.Clone()
	return nil
}

func (r *memoryRepository) Find(id string) (*model.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivery, ok := r.deliveries[id]
	if !ok {
		return nil, errors.Wrapf(model.ErrDeliveryNotFound, "delivery %s", id)
	}
	return delivery.Clone(), nil
}

func (r *memoryRepository) Update(delivery *model.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.deliveries[delivery.ID]
	if !ok {
		return errors.Wrapf(model.ErrDeliveryNotFound, "delivery %s", delivery.ID)
	}
	if existing.Version != delivery.Version-1 {
		return errors.Wrapf(model.ErrOptimisticLock, "delivery %s at version %d", delivery.ID, existing.Version)
	}
	r.deliveries[delivery.ID] = delivery.Clone()
	return nil
}
