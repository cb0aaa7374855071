package transport

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"foodplatform/pkg/common/infrastructure/transport"
	"foodplatform/pkg/restaurant/domain/model"
	"foodplatform/pkg/restaurant/domain/service"
)

type restaurantClient struct {
	client *transport.Client
}

func NewRestaurantClient(conn grpc.ClientConnInterface, timeout time.Duration) service.RestaurantService {
	return &restaurantClient{client: transport.NewClient(conn, timeout, errorCodes)}
}

func (c *restaurantClient) GetRestaurant(ctx context.Context, restaurantID string) (*model.Restaurant, error) {
	var resp Restaurant
	if err := c.client.Invoke(ctx, getRestaurantMethod, &GetRestaurantRequest{RestaurantID: restaurantID}, &resp); err != nil {
		return nil, err
	}
	return fromRestaurant(&resp), nil
}

func (c *restaurantClient) UpdateMenu(ctx context.Context, restaurantID string, items []model.MenuItem) (*model.Restaurant, error) {
	var resp Restaurant
	req := &UpdateMenuRequest{RestaurantID: restaurantID, MenuItems: toMenu(items)}
	if err := c.client.Invoke(ctx, updateMenuMethod, req, &resp); err != nil {
		return nil, err
	}
	return fromRestaurant(&resp), nil
}

func (c *restaurantClient) GetRestaurantPayments(ctx context.Context, restaurantID string) ([]model.Payment, error) {
	var resp GetPaymentsResponse
	if err := c.client.Invoke(ctx, getPaymentsMethod, &GetPaymentsRequest{RestaurantID: restaurantID}, &resp); err != nil {
		return nil, err
	}
	payments := make([]model.Payment, 0, len(resp.Payments))
	for _, p := range resp.Payments {
		payments = append(payments, model.Payment(p))
	}
	return payments, nil
}
