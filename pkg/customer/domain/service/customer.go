package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"foodplatform/pkg/common/domain"
	"foodplatform/pkg/customer/domain/model"
)

type CustomerService interface {
	GetCustomer(ctx context.Context, customerID string) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, update model.CustomerUpdate) (*model.Customer, error)
}

func NewCustomerService(repo model.CustomerRepository, dispatcher domain.EventDispatcher) CustomerService {
	return &customerService{repo: repo, dispatcher: dispatcher}
}

type customerService struct {
	repo       model.CustomerRepository
	dispatcher domain.EventDispatcher
}

func (s *customerService) GetCustomer(_ context.Context, customerID string) (*model.Customer, error) {
	return s.repo.Find(customerID)
}

func (s *customerService) UpdateCustomer(_ context.Context, customerID string, update model.CustomerUpdate) (*model.Customer, error) {
	var customer *model.Customer
	err := domain.RetryOnConflict(model.ErrOptimisticLock, func() error {
		var err error
		customer, err = s.repo.Find(customerID)
		if err != nil {
			return err
		}
		customer.Apply(update)
		customer.Version++
		customer.UpdatedAt = time.Now().UTC()
		return s.repo.Update(customer)
	})
	if err != nil {
		return nil, err
	}

	log.WithField("customer_id", customerID).Info("updated customer")
	if err := s.dispatcher.Dispatch(model.CustomerUpdated{CustomerID: customerID}); err != nil {
		log.WithError(err).Error("failed to dispatch event")
	}
	return customer, nil
}
