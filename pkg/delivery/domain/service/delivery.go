package service

import (
	"context"
	"iter"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"foodplatform/pkg/common/domain"
	"foodplatform/pkg/delivery/domain/model"
	ordermodel "foodplatform/pkg/order/domain/model"
	restaurantmodel "foodplatform/pkg/restaurant/domain/model"
)

const (
	estimatedDeliveryDuration = 30 * time.Minute
	initialLocation           = "Driver starting location"
)

// OrderStore is the part of the order service a delivery depends on.
type OrderStore interface {
	GetOrder(ctx context.Context, orderID string) (*ordermodel.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status ordermodel.OrderStatus) (*ordermodel.Order, error)
}

type RestaurantLookup interface {
	GetRestaurant(ctx context.Context, restaurantID string) (*restaurantmodel.Restaurant, error)
}

// StatusOutbox applies order status updates one writer per order at a time
// and keeps retrying the ones the order store did not accept.
type StatusOutbox interface {
	Deliver(ctx context.Context, orderID string, status ordermodel.OrderStatus) error
}

type DeliveryService interface {
	// AssignDriver creates a delivery for an existing order and confirms the
	// order. If confirming fails the delivery is kept and the error returned.
	AssignDriver(ctx context.Context, orderID, driverID string) (*model.Delivery, error)
	GetDelivery(ctx context.Context, deliveryID string) (*model.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, deliveryID string, status model.DeliveryStatus, currentLocation string) (*model.Delivery, error)
	// TrackDelivery yields the current state of the delivery once.
	TrackDelivery(ctx context.Context, deliveryID string) (iter.Seq[model.DeliverySnapshot], error)
}

func NewDeliveryService(
	repo model.DeliveryRepository,
	orders OrderStore,
	restaurants RestaurantLookup,
	outbox StatusOutbox,
	dispatcher domain.EventDispatcher,
) DeliveryService {
	return &deliveryService{
		repo:        repo,
		orders:      orders,
		restaurants: restaurants,
		outbox:      outbox,
		dispatcher:  dispatcher,
	}
}

type deliveryService struct {
	repo        model.DeliveryRepository
	orders      OrderStore
	restaurants RestaurantLookup
	outbox      StatusOutbox
	dispatcher  domain.EventDispatcher
}

func (s *deliveryService) AssignDriver(ctx context.Context, orderID, driverID string) (*model.Delivery, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, ordermodel.ErrOrderNotFound) {
		return nil, errors.Wrapf(model.ErrOrderNotFound, "order %s", orderID)
	}
	if err != nil {
		return nil, errors.Wrapf(model.ErrOrderServiceFailure, "get order %s: %v", orderID, err)
	}

	deliveryID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	delivery := &model.Delivery{
		ID:                    deliveryID,
		OrderID:               orderID,
		DriverID:              driverID,
		RestaurantAddress:     s.restaurantAddress(ctx, order.RestaurantID),
		CustomerAddress:       order.DeliveryAddress,
		Status:                model.Assigned,
		CurrentLocation:       initialLocation,
		AssignedAt:            now,
		EstimatedDeliveryTime: now.Add(estimatedDeliveryDuration),
		Version:               1,
		UpdatedAt:             now,
	}
	if err := s.repo.Create(delivery); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"delivery_id": deliveryID,
		"order_id":    orderID,
		"driver_id":   driverID,
	}).Info("assigned driver")
	s.dispatch(model.DriverAssigned{DeliveryID: deliveryID, OrderID: orderID, DriverID: driverID})

	if _, err := s.orders.UpdateOrderStatus(ctx, orderID, ordermodel.Confirmed); err != nil {
		return nil, errors.Wrapf(model.ErrOrderServiceFailure, "confirm order %s: %v", orderID, err)
	}
	return delivery, nil
}

func (s *deliveryService) GetDelivery(_ context.Context, deliveryID string) (*model.Delivery, error) {
	return s.repo.Find(deliveryID)
}

func (s *deliveryService) UpdateDeliveryStatus(ctx context.Context, deliveryID string, status model.DeliveryStatus, currentLocation string) (*model.Delivery, error) {
	if !status.Valid() {
		return nil, errors.Wrapf(model.ErrInvalidStatus, "delivery %s", deliveryID)
	}

	var (
		delivery  *model.Delivery
		oldStatus model.DeliveryStatus
	)
	err := domain.RetryOnConflict(model.ErrOptimisticLock, func() error {
		var err error
		delivery, err = s.repo.Find(deliveryID)
		if err != nil {
			return err
		}
		oldStatus = delivery.Status
		delivery.Status = status
		delivery.CurrentLocation = currentLocation

		now := time.Now().UTC()
		switch status {
		case model.PickedUp:
			delivery.PickedUpAt = now
		case model.Delivered:
			delivery.DeliveredAt = now
		}
		return s.updateDelivery(delivery, now)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"delivery_id": deliveryID,
		"status":      status,
		"location":    currentLocation,
	}).Info("updated delivery status")
	s.dispatch(model.DeliveryStatusChanged{
		DeliveryID: deliveryID,
		OrderID:    delivery.OrderID,
		OldStatus:  oldStatus,
		NewStatus:  status,
		Location:   currentLocation,
	})

	switch status {
	case model.PickedUp:
		s.propagateOrderStatus(ctx, delivery.OrderID, ordermodel.OutForDelivery)
	case model.Delivered:
		s.propagateOrderStatus(ctx, delivery.OrderID, ordermodel.Delivered)
	}
	return delivery, nil
}

func (s *deliveryService) TrackDelivery(_ context.Context, deliveryID string) (iter.Seq[model.DeliverySnapshot], error) {
	delivery, err := s.repo.Find(deliveryID)
	if err != nil {
		return nil, err
	}
	snapshot := delivery.Snapshot()
	return func(yield func(model.DeliverySnapshot) bool) {
		yield(snapshot)
	}, nil
}

// propagateOrderStatus never fails the caller. Updates the order store does
// not accept right away go to the outbox.
func (s *deliveryService) propagateOrderStatus(ctx context.Context, orderID string, status ordermodel.OrderStatus) {
	if err := s.outbox.Deliver(ctx, orderID, status); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"order_id": orderID,
			"status":   status,
		}).Warn("failed to update order status, queued for retry")
	}
}

func (s *deliveryService) restaurantAddress(ctx context.Context, restaurantID string) string {
	restaurant, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		log.WithError(err).WithField("restaurant_id", restaurantID).Warn("failed to look up restaurant address")
		return ""
	}
	return restaurant.Address
}

func (s *deliveryService) updateDelivery(delivery *model.Delivery, now time.Time) error {
	delivery.Version++
	delivery.UpdatedAt = now
	return s.repo.Update(delivery)
}

func (s *deliveryService) dispatch(event domain.Event) {
	if err := s.dispatcher.Dispatch(event); err != nil {
		log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
	}
}
