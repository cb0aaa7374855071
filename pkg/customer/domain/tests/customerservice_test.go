package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodplatform/pkg/common/domain"
	"foodplatform/pkg/customer/domain/model"
	"foodplatform/pkg/customer/domain/service"
)

func setup(t *testing.T) (service.CustomerService, *mockCustomerRepository, *mockEventDispatcher) {
	t.Helper()
	repo := &mockCustomerRepository{store: map[string]*model.Customer{
		"customer123": {
			ID:                "customer123",
			Name:              "John Doe",
			Email:             "john.doe@example.com",
			Phone:             "555-123-4567",
			DeliveryAddresses: []string{"123 Main St, Anytown, USA"},
			Version:           1,
		},
	}}
	dispatcher := &mockEventDispatcher{}
	return service.NewCustomerService(repo, dispatcher), repo, dispatcher
}

func TestGetCustomer(t *testing.T) {
	customerService, _, _ := setup(t)
	ctx := context.Background()

	customer, err := customerService.GetCustomer(ctx, "customer123")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", customer.Name)

	_, err = customerService.GetCustomer(ctx, "customer999")
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
}

func TestUpdateCustomer(t *testing.T) {
	customerService, repo, dispatcher := setup(t)
	ctx := context.Background()

	t.Run("Only non-empty fields overwrite", func(t *testing.T) {
		customer, err := customerService.UpdateCustomer(ctx, "customer123", model.CustomerUpdate{Phone: "555-000-0000"})
		require.NoError(t, err)
		assert.Equal(t, "555-000-0000", customer.Phone)
		assert.Equal(t, "John Doe", customer.Name)
		assert.Equal(t, "john.doe@example.com", customer.Email)
		assert.Equal(t, []string{"123 Main St, Anytown, USA"}, customer.DeliveryAddresses)
		assert.Equal(t, 2, repo.store["customer123"].Version)
		require.Len(t, dispatcher.events, 1)
	})

	t.Run("Addresses are replaced", func(t *testing.T) {
		customer, err := customerService.UpdateCustomer(ctx, "customer123", model.CustomerUpdate{
			Name:              "Johnny Doe",
			DeliveryAddresses: []string{"9 New Rd"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Johnny Doe", customer.Name)
		assert.Equal(t, []string{"9 New Rd"}, customer.DeliveryAddresses)
	})

	t.Run("Missing customer", func(t *testing.T) {
		_, err := customerService.UpdateCustomer(ctx, "customer999", model.CustomerUpdate{Name: "x"})
		assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	})
}

var _ model.CustomerRepository = &mockCustomerRepository{}

type mockCustomerRepository struct {
	store map[string]*model.Customer
}

func (m *mockCustomerRepository) Find(id string) (*model.Customer, error) {
	if customer, ok := m.store[id]; ok {
		return customer.Clone(), nil
	}
	return nil, model.ErrCustomerNotFound
}

func (m *mockCustomerRepository) Update(customer *model.Customer) error {
	existing, ok := m.store[customer.ID]
	if !ok {
		return model.ErrCustomerNotFound
	}
	if existing.Version != customer.Version-1 {
		return model.ErrOptimisticLock
	}
	m.store[customer.ID] = customer.Clone()
	return nil
}

var _ domain.EventDispatcher = &mockEventDispatcher{}

type mockEventDispatcher struct {
	events []domain.Event
}

func (m *mockEventDispatcher) Dispatch(event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}
