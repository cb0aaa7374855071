package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"foodplatform/pkg/common/domain"
	"foodplatform/pkg/order/domain/model"
)

const estimatedPreparationTime = time.Hour

type CreateOrderParams struct {
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	RestaurantID        string
	Items               []model.Item
	DeliveryAddress     string
	SpecialInstructions string
}

type OrderService interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	// UpdateOrderStatus overwrites the status without checking the transition.
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error)
	// RestaurantOrderResponse is the only guarded transition: PENDING to
	// CONFIRMED or REJECTED, and only for the restaurant the order was placed with.
	RestaurantOrderResponse(ctx context.Context, restaurantID, orderID string, accepted bool, rejectionReason string) (*model.Order, error)
}

func NewOrderService(repo model.OrderRepository, dispatcher domain.EventDispatcher) OrderService {
	return &orderService{repo: repo, dispatcher: dispatcher}
}

type orderService struct {
	repo       model.OrderRepository
	dispatcher domain.EventDispatcher
}

func (s *orderService) CreateOrder(_ context.Context, params CreateOrderParams) (*model.Order, error) {
	if err := model.ValidateItems(params.Items); err != nil {
		return nil, err
	}

	orderID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID: orderID,
		Customer: model.Customer{
			ID:    uuid.NewString(),
			Name:  params.CustomerName,
			Email: params.CustomerEmail,
			Phone: params.CustomerPhone,
		},
		RestaurantID:          params.RestaurantID,
		Items:                 params.Items,
		DeliveryAddress:       params.DeliveryAddress,
		SpecialInstructions:   params.SpecialInstructions,
		Status:                model.Pending,
		TotalAmount:           model.TotalAmount(params.Items),
		EstimatedDeliveryTime: now.Add(estimatedPreparationTime),
		Version:               1,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Create(order); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id":    orderID,
		"customer_id": order.Customer.ID,
	}).Info("created order")

	s.dispatch(model.OrderCreated{OrderID: orderID, RestaurantID: order.RestaurantID, TotalAmount: order.TotalAmount})
	return order, nil
}

func (s *orderService) GetOrder(_ context.Context, orderID string) (*model.Order, error) {
	return s.repo.Find(orderID)
}

func (s *orderService) UpdateOrderStatus(_ context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, errors.Wrapf(model.ErrInvalidStatus, "order %s", orderID)
	}

	var (
		order     *model.Order
		oldStatus model.OrderStatus
	)
	err := domain.RetryOnConflict(model.ErrOptimisticLock, func() error {
		var err error
		order, err = s.repo.Find(orderID)
		if err != nil {
			return err
		}
		oldStatus = order.Status
		order.Status = status
		return s.updateOrder(order)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"order_id": orderID, "status": status}).Info("updated order status")

	s.dispatch(model.OrderStatusChanged{OrderID: orderID, OldStatus: oldStatus, NewStatus: status})
	return order, nil
}

func (s *orderService) RestaurantOrderResponse(_ context.Context, restaurantID, orderID string, accepted bool, rejectionReason string) (*model.Order, error) {
	var order *model.Order
	err := domain.RetryOnConflict(model.ErrOptimisticLock, func() error {
		var err error
		order, err = s.repo.Find(orderID)
		if err != nil {
			return err
		}
		if order.RestaurantID != restaurantID {
			return errors.Wrapf(model.ErrRestaurantMismatch, "order %s, restaurant %s", orderID, restaurantID)
		}
		if order.Status != model.Pending {
			return errors.Wrapf(model.ErrOrderNotPending, "order %s is %s", orderID, order.Status)
		}

		if accepted {
			order.Status = model.Confirmed
		} else {
			order.Status = model.Rejected
			order.RejectionReason = rejectionReason
		}
		return s.updateOrder(order)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id":      orderID,
		"restaurant_id": restaurantID,
		"accepted":      accepted,
	}).Info("restaurant responded to order")

	s.dispatch(model.OrderStatusChanged{OrderID: orderID, OldStatus: model.Pending, NewStatus: order.Status})
	if !accepted {
		s.dispatch(model.OrderRejected{OrderID: orderID, RestaurantID: restaurantID, Reason: rejectionReason})
	}
	return order, nil
}

func (s *orderService) updateOrder(order *model.Order) error {
	order.Version++
	order.UpdatedAt = time.Now().UTC()
	return s.repo.Update(order)
}

func (s *orderService) dispatch(event domain.Event) {
	if err := s.dispatcher.Dispatch(event); err != nil {
		log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
	}
}
