package repository

import (
	"sync"

	"github.com/pkg/errors"

	"foodplatform/pkg/restaurant/domain/model"
)

type memoryRepository struct {
	mu          sync.RWMutex
	restaurants map[string]*model.Restaurant
}

func NewMemoryRepository(restaurants []*model.Restaurant) model.RestaurantRepository {
	repo := &memoryRepository{restaurants: make(map[string]*model.Restaurant, len(restaurants))}
	for _, r := range restaurants {
		repo.restaurants[r.ID] = r.Clone()
	}
	return repo
}

func (r *memoryRepository) Find(id string) (*model.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, errors.Wrapf(model.ErrRestaurantNotFound, "restaurant %s", id)
	}
	return restaurant.Clone(), nil
}

func (r *memoryRepository) Update(restaurant *model.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.restaurants[restaurant.ID]
	if !ok {
		return errors.Wrapf(model.ErrRestaurantNotFound, "restaurant %s", restaurant.ID)
	}
	if existing.Version != restaurant.Version-1 {
		return errors.Wrapf(model.ErrOptimisticLock, "restaurant %s at version %d", restaurant.ID, existing.Version)
	}
	r.restaurants[restaurant.ID] = restaurant.Clone()
	return nil
}
