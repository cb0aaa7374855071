package transport

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"foodplatform/pkg/common/infrastructure/transport"
	"foodplatform/pkg/order/domain/model"
	"foodplatform/pkg/order/domain/service"
)

type orderClient struct {
	client *transport.Client
}

// NewOrderClient returns an OrderService that calls a remote order store.
// Remote failures come back as the model's sentinel errors.
func NewOrderClient(conn grpc.ClientConnInterface, timeout time.Duration) service.OrderService {
	return &orderClient{client: transport.NewClient(conn, timeout, errorCodes)}
}

func (c *orderClient) CreateOrder(ctx context.Context, params service.CreateOrderParams) (*model.Order, error) {
	return c.call(ctx, createOrderMethod, toCreateOrderRequest(params))
}

func (c *orderClient) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return c.call(ctx, getOrderMethod, &GetOrderRequest{OrderID: orderID})
}

func (c *orderClient) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	return c.call(ctx, updateOrderStatusMethod, &UpdateOrderStatusRequest{OrderID: orderID, Status: int32(status)})
}

func (c *orderClient) RestaurantOrderResponse(ctx context.Context, restaurantID, orderID string, accepted bool, rejectionReason string) (*model.Order, error) {
	return c.call(ctx, restaurantOrderResponseMethod, &RestaurantOrderResponseRequest{
		RestaurantID:    restaurantID,
		OrderID:         orderID,
		Accepted:        accepted,
		RejectionReason: rejectionReason,
	})
}

func (c *orderClient) call(ctx context.Context, method string, req any) (*model.Order, error) {
	var resp Order
	if err := c.client.Invoke(ctx, method, req, &resp); err != nil {
		return nil, err
	}
	return fromOrder(&resp), nil
}
