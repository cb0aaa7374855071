package transport

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"foodplatform/pkg/common/infrastructure/transport"
	"foodplatform/pkg/customer/domain/model"
	"foodplatform/pkg/customer/domain/service"
)

type customerClient struct {
	client *transport.Client
}

func NewCustomerClient(conn grpc.ClientConnInterface, timeout time.Duration) service.CustomerService {
	return &customerClient{client: transport.NewClient(conn, timeout, errorCodes)}
}

func (c *customerClient) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	var resp Customer
	if err := c.client.Invoke(ctx, getCustomerMethod, &GetCustomerRequest{CustomerID: customerID}, &resp); err != nil {
		return nil, err
	}
	return fromCustomer(&resp), nil
}

func (c *customerClient) UpdateCustomer(ctx context.Context, customerID string, update model.CustomerUpdate) (*model.Customer, error) {
	req := &UpdateCustomerRequest{
		CustomerID:        customerID,
		Name:              update.Name,
		Email:             update.Email,
		Phone:             update.Phone,
		DeliveryAddresses: update.DeliveryAddresses,
	}
	var resp Customer
	if err := c.client.Invoke(ctx, updateCustomerMethod, req, &resp); err != nil {
		return nil, err
	}
	return fromCustomer(&resp), nil
}
