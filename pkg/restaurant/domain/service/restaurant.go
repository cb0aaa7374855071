package service

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"foodplatform/pkg/common/domain"
	"foodplatform/pkg/restaurant/domain/model"
)

const (
	mockPaymentCount     = 3
	mockPaymentBase      = 15.99
	mockPaymentIncrement = 5.0
	mockPaymentStatus    = "completed"
)

type RestaurantService interface {
	GetRestaurant(ctx context.Context, restaurantID string) (*model.Restaurant, error)
	// UpdateMenu replaces the whole menu.
	UpdateMenu(ctx context.Context, restaurantID string, items []model.MenuItem) (*model.Restaurant, error)
	// GetRestaurantPayments returns generated sample payments, not real ones.
	GetRestaurantPayments(ctx context.Context, restaurantID string) ([]model.Payment, error)
}

func NewRestaurantService(repo model.RestaurantRepository, dispatcher domain.EventDispatcher) RestaurantService {
	return &restaurantService{repo: repo, dispatcher: dispatcher}
}

type restaurantService struct {
	repo       model.RestaurantRepository
	dispatcher domain.EventDispatcher
}

func (s *restaurantService) GetRestaurant(_ context.Context, restaurantID string) (*model.Restaurant, error) {
	return s.repo.Find(restaurantID)
}

func (s *restaurantService) UpdateMenu(_ context.Context, restaurantID string, items []model.MenuItem) (*model.Restaurant, error) {
	if err := model.ValidateMenu(items); err != nil {
		return nil, err
	}

	var restaurant *model.Restaurant
	err := domain.RetryOnConflict(model.ErrOptimisticLock, func() error {
		var err error
		restaurant, err = s.repo.Find(restaurantID)
		if err != nil {
			return err
		}
		restaurant.Menu = append([]model.MenuItem(nil), items...)
		restaurant.Version++
		restaurant.UpdatedAt = time.Now().UTC()
		return s.repo.Update(restaurant)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"restaurant_id": restaurantID, "items": len(items)}).Info("updated menu")
	if err := s.dispatcher.Dispatch(model.MenuUpdated{RestaurantID: restaurantID, ItemCount: len(items)}); err != nil {
		log.WithError(err).Error("failed to dispatch event")
	}
	return restaurant, nil
}

func (s *restaurantService) GetRestaurantPayments(_ context.Context, restaurantID string) ([]model.Payment, error) {
	if _, err := s.repo.Find(restaurantID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payments := make([]model.Payment, 0, mockPaymentCount)
	for i := range mockPaymentCount {
		payments = append(payments, model.Payment{
			PaymentID: fmt.Sprintf("payment_%d_%s", i, restaurantID),
			OrderID:   fmt.Sprintf("order_%d_%s", i, restaurantID),
			Amount:    math.Round((mockPaymentBase+float64(i)*mockPaymentIncrement)*100) / 100,
			Status:    mockPaymentStatus,
			Timestamp: now,
		})
	}
	return payments, nil
}
