package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"foodplatform/pkg/common/infrastructure/event"
	"foodplatform/pkg/common/infrastructure/transport/transporttest"
	"foodplatform/pkg/order/domain/model"
	"foodplatform/pkg/order/domain/service"
	"foodplatform/pkg/order/infrastructure/repository"
)

func setup(t *testing.T) service.OrderService {
	svc := service.NewOrderService(repository.NewMemoryRepository(), event.NewLogDispatcher("order"))
	conn := transporttest.Start(t, func(s *grpc.Server) {
		RegisterOrderServer(s, svc)
	})
	return NewOrderClient(conn, 5*time.Second)
}

func TestOrderTransport(t *testing.T) {
	client := setup(t)
	ctx := context.Background()

	created, err := client.CreateOrder(ctx, service.CreateOrderParams{
		CustomerName:    "Jane",
		CustomerEmail:   "jane@example.com",
		RestaurantID:    "restaurant456",
		DeliveryAddress: "1 Elm St",
		Items: []model.Item{
			{ItemID: "pizza1", Name: "Pepperoni Pizza", Price: 12.99, Quantity: 2, Customizations: []string{"extra cheese"}},
			{ItemID: "salad1", Name: "Caesar Salad", Price: 7.99, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.Customer.ID)
	assert.Equal(t, model.Pending, created.Status)
	assert.Equal(t, 33.97, created.TotalAmount)
	assert.Equal(t, []string{"extra cheese"}, created.Items[0].Customizations)

	t.Run("GetOrder", func(t *testing.T) {
		order, err := client.GetOrder(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, order.ID)
		assert.Equal(t, "1 Elm St", order.DeliveryAddress)
	})

	t.Run("GetOrder unknown", func(t *testing.T) {
		_, err := client.GetOrder(ctx, "missing")
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})

	t.Run("Wrong restaurant", func(t *testing.T) {
		_, err := client.RestaurantOrderResponse(ctx, "other", created.ID, true, "")
		assert.ErrorIs(t, err, model.ErrRestaurantMismatch)
	})

	t.Run("Reject", func(t *testing.T) {
		order, err := client.RestaurantOrderResponse(ctx, "restaurant456", created.ID, false, "out of dough")
		require.NoError(t, err)
		assert.Equal(t, model.Rejected, order.Status)
		assert.Equal(t, "out of dough", order.RejectionReason)
	})

	t.Run("Respond twice", func(t *testing.T) {
		_, err := client.RestaurantOrderResponse(ctx, "restaurant456", created.ID, true, "")
		assert.ErrorIs(t, err, model.ErrOrderNotPending)
	})

	t.Run("Invalid status code", func(t *testing.T) {
		_, err := client.UpdateOrderStatus(ctx, created.ID, model.OrderStatus(42))
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
	})

	t.Run("Unguarded update", func(t *testing.T) {
		order, err := client.UpdateOrderStatus(ctx, created.ID, model.Delivered)
		require.NoError(t, err)
		assert.Equal(t, model.Delivered, order.Status)
	})
}
