package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodplatform/pkg/common/domain"
	"foodplatform/pkg/delivery/domain/model"
	"foodplatform/pkg/delivery/domain/service"
	ordermodel "foodplatform/pkg/order/domain/model"
	restaurantmodel "foodplatform/pkg/restaurant/domain/model"
)

type fixture struct {
	service    service.DeliveryService
	repo       *mockDeliveryRepository
	orders     *mockOrderStore
	outbox     *mockOutbox
	dispatcher *mockEventDispatcher
}

func setup(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		repo: &mockDeliveryRepository{store: make(map[string]*model.Delivery)},
		orders: &mockOrderStore{orders: map[string]*ordermodel.Order{
			"order1": {
				ID:              "order1",
				RestaurantID:    "restaurant456",
				DeliveryAddress: "123 Main St, Anytown, USA",
				Status:          ordermodel.Pending,
			},
		}},
		dispatcher: &mockEventDispatcher{},
	}
	f.outbox = &mockOutbox{orders: f.orders, pending: make(map[string]ordermodel.OrderStatus)}
	restaurants := mockRestaurantLookup{"restaurant456": "123 Restaurant St, Foodville"}
	f.service = service.NewDeliveryService(f.repo, f.orders, restaurants, f.outbox, f.dispatcher)
	return f
}

func TestAssignDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := setup(t)
		delivery, err := f.service.AssignDriver(ctx, "order1", "driver7")
		require.NoError(t, err)

		assert.Equal(t, model.Assigned, delivery.Status)
		assert.Equal(t, "order1", delivery.OrderID)
		assert.Equal(t, "driver7", delivery.DriverID)
		assert.Equal(t, "123 Main St, Anytown, USA", delivery.CustomerAddress)
		assert.Equal(t, "123 Restaurant St, Foodville", delivery.RestaurantAddress)
		assert.Equal(t, "Driver starting location", delivery.CurrentLocation)
		assert.Equal(t, 30*time.Minute, delivery.EstimatedDeliveryTime.Sub(delivery.AssignedAt))
		assert.True(t, delivery.PickedUpAt.IsZero())

		assert.Contains(t, f.repo.store, delivery.ID)
		assert.Equal(t, ordermodel.Confirmed, f.orders.orders["order1"].Status)

		require.Len(t, f.dispatcher.events, 1)
		assigned, ok := f.dispatcher.events[0].(model.DriverAssigned)
		require.True(t, ok)
		assert.Equal(t, delivery.ID, assigned.DeliveryID)
	})

	t.Run("Missing order creates nothing", func(t *testing.T) {
		f := setup(t)
		_, err := f.service.AssignDriver(ctx, "no-such-order", "driver7")
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
		assert.Empty(t, f.repo.store)
		assert.Empty(t, f.dispatcher.events)
	})

	t.Run("Order lookup failure", func(t *testing.T) {
		f := setup(t)
		f.orders.getErr = errors.New("connection refused")
		_, err := f.service.AssignDriver(ctx, "order1", "driver7")
		assert.ErrorIs(t, err, model.ErrOrderServiceFailure)
		assert.Empty(t, f.repo.store)
	})

	t.Run("Confirm failure keeps the delivery", func(t *testing.T) {
		f := setup(t)
		f.orders.updateErr = errors.New("deadline exceeded")
		_, err := f.service.AssignDriver(ctx, "order1", "driver7")
		assert.ErrorIs(t, err, model.ErrOrderServiceFailure)
		assert.Len(t, f.repo.store, 1)
		assert.Equal(t, ordermodel.Pending, f.orders.orders["order1"].Status)
	})

	t.Run("Unknown restaurant leaves the address empty", func(t *testing.T) {
		f := setup(t)
		f.orders.orders["order1"].RestaurantID = "closed-down"
		delivery, err := f.service.AssignDriver(ctx, "order1", "driver7")
		require.NoError(t, err)
		assert.Empty(t, delivery.RestaurantAddress)
	})
}

func TestUpdateDeliveryStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Picked up and delivered propagate to the order", func(t *testing.T) {
		f := setup(t)
		delivery, err := f.service.AssignDriver(ctx, "order1", "driver7")
		require.NoError(t, err)

		updated, err := f.service.UpdateDeliveryStatus(ctx, delivery.ID, model.PickedUp, "Restaurant door")
		require.NoError(t, err)
		assert.Equal(t, model.PickedUp, updated.Status)
		assert.Equal(t, "Restaurant door", updated.CurrentLocation)
		assert.False(t, updated.PickedUpAt.IsZero())
		assert.True(t, updated.DeliveredAt.IsZero())
		assert.Equal(t, ordermodel.OutForDelivery, f.orders.orders["order1"].Status)

		updated, err = f.service.UpdateDeliveryStatus(ctx, delivery.ID, model.Delivered, "Front porch")
		require.NoError(t, err)
		assert.False(t, updated.DeliveredAt.IsZero())
		assert.Equal(t, ordermodel.Delivered, f.orders.orders["order1"].Status)
		assert.Equal(t, []string{"order1", "order1"}, f.outbox.forgotten)
	})

	t.Run("In progress does not touch the order", func(t *testing.T) {
		f := setup(t)
		delivery, _ := f.service.AssignDriver(ctx, "order1", "driver7")
		calls := f.orders.updateCalls

		_, err := f.service.UpdateDeliveryStatus(ctx, delivery.ID, model.InProgress, "Highway")
		require.NoError(t, err)
		assert.Equal(t, calls, f.orders.updateCalls)
	})

	t.Run("No guard against going backwards", func(t *testing.T) {
		f := setup(t)
		delivery, _ := f.service.AssignDriver(ctx, "order1", "driver7")
		_, err := f.service.UpdateDeliveryStatus(ctx, delivery.ID, model.Delivered, "Porch")
		require.NoError(t, err)

		updated, err := f.service.UpdateDeliveryStatus(ctx, delivery.ID, model.Assigned, "Depot")
		require.NoError(t, err)
		assert.Equal(t, model.Assigned, updated.Status)
	})

	t.Run("Propagation failure goes to the outbox", func(t *testing.T) {
		f := setup(t)
		delivery, _ := f.service.AssignDriver(ctx, "order1", "driver7")
		f.orders.updateErr = errors.New("unavailable")

		updated, err := f.service.UpdateDeliveryStatus(ctx, delivery.ID, model.PickedUp, "Restaurant door")
		require.NoError(t, err)
		assert.Equal(t, model.PickedUp, updated.Status)
		assert.Equal(t, ordermodel.OutForDelivery, f.outbox.pending["order1"])
	})

	t.Run("Missing delivery", func(t *testing.T) {
		f := setup(t)
		_, err := f.service.UpdateDeliveryStatus(ctx, uuid.NewString(), model.PickedUp, "x")
		assert.ErrorIs(t, err, model.ErrDeliveryNotFound)
	})

	t.Run("Invalid status", func(t *testing.T) {
		f := setup(t)
		delivery, _ := f.service.AssignDriver(ctx, "order1", "driver7")
		_, err := f.service.UpdateDeliveryStatus(ctx, delivery.ID, model.DeliveryStatus(17), "x")
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
	})
}

func TestTrackDelivery(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	delivery, err := f.service.AssignDriver(ctx, "order1", "driver7")
	require.NoError(t, err)

	snapshots, err := f.service.TrackDelivery(ctx, delivery.ID)
	require.NoError(t, err)

	var got []model.DeliverySnapshot
	for s := range snapshots {
		got = append(got, s)
	}
	require.Len(t, got, 1)
	assert.Equal(t, delivery.Snapshot(), got[0])

	_, err = f.service.TrackDelivery(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrDeliveryNotFound)
}

var _ model.DeliveryRepository = &mockDeliveryRepository{}

type mockDeliveryRepository struct {
	store map[string]*model.Delivery
}

func (m *mockDeliveryRepository) NextID() (string, error) { return uuid.NewString(), nil }

func (m *mockDeliveryRepository) Create(delivery *model.Delivery) error {
	if _, exists := m.store[delivery.ID]; exists {
		return model.ErrDeliveryExists
	}
	m.store[delivery.ID] = delivery.Clone()
	return nil
}

func (m *mockDeliveryRepository) Find(id string) (*model.Delivery, error) {
	if delivery, ok := m.store[id]; ok {
		return delivery.Clone(), nil
	}
	return nil, model.ErrDeliveryNotFound
}

func (m *mockDeliveryRepository) Update(delivery *model.Delivery) error {
	existing, ok := m.store[delivery.ID]
	if !ok {
		return model.ErrDeliveryNotFound
	}
	if existing.Version != delivery.Version-1 {
		return model.ErrOptimisticLock
	}
	m.store[delivery.ID] = delivery.Clone()
	return nil
}

var _ service.OrderStore = &mockOrderStore{}

type mockOrderStore struct {
	orders      map[string]*ordermodel.Order
	getErr      error
	updateErr   error
	updateCalls int
}

func (m *mockOrderStore) GetOrder(_ context.Context, orderID string) (*ordermodel.Order, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	order, ok := m.orders[orderID]
	if !ok {
		return nil, errors.Wrapf(ordermodel.ErrOrderNotFound, "order %s", orderID)
	}
	return order.Clone(), nil
}

func (m *mockOrderStore) UpdateOrderStatus(_ context.Context, orderID string, status ordermodel.OrderStatus) (*ordermodel.Order, error) {
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	order, ok := m.orders[orderID]
	if !ok {
		return nil, ordermodel.ErrOrderNotFound
	}
	order.Status = status
	return order.Clone(), nil
}

type mockRestaurantLookup map[string]string

func (m mockRestaurantLookup) GetRestaurant(_ context.Context, restaurantID string) (*restaurantmodel.Restaurant, error) {
	address, ok := m[restaurantID]
	if !ok {
		return nil, restaurantmodel.ErrRestaurantNotFound
	}
	return &restaurantmodel.Restaurant{ID: restaurantID, Address: address}, nil
}

var _ service.StatusOutbox = &mockOutbox{}

type mockOutbox struct {
	orders    *mockOrderStore
	pending   map[string]ordermodel.OrderStatus
	forgotten []string
}

func (m *mockOutbox) Deliver(ctx context.Context, orderID string, status ordermodel.OrderStatus) error {
	if _, err := m.orders.UpdateOrderStatus(ctx, orderID, status); err != nil {
		m.pending[orderID] = status
		return err
	}
	delete(m.pending, orderID)
	m.forgotten = append(m.forgotten, orderID)
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
