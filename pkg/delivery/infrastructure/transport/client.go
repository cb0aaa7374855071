package transport

import (
	"context"
	"iter"
	"time"

	"google.golang.org/grpc"

	"foodplatform/pkg/common/infrastructure/transport"
	"foodplatform/pkg/delivery/domain/model"
	"foodplatform/pkg/delivery/domain/service"
)

type deliveryClient struct {
	client *transport.Client
}

func NewDeliveryClient(conn grpc.ClientConnInterface, timeout time.Duration) service.DeliveryService {
	return &deliveryClient{client: transport.NewClient(conn, timeout, errorCodes)}
}

func (c *deliveryClient) AssignDriver(ctx context.Context, orderID, driverID string) (*model.Delivery, error) {
	return c.call(ctx, assignDriverMethod, &AssignDriverRequest{OrderID: orderID, DriverID: driverID})
}

func (c *deliveryClient) GetDelivery(ctx context.Context, deliveryID string) (*model.Delivery, error) {
	return c.call(ctx, getDeliveryMethod, &GetDeliveryRequest{DeliveryID: deliveryID})
}

func (c *deliveryClient) UpdateDeliveryStatus(ctx context.Context, deliveryID string, status model.DeliveryStatus, currentLocation string) (*model.Delivery, error) {
	return c.call(ctx, updateDeliveryStatusMethod, &UpdateDeliveryStatusRequest{
		DeliveryID:      deliveryID,
		Status:          int32(status),
		CurrentLocation: currentLocation,
	})
}

// TrackDelivery drains the server stream before returning, so lookup errors
// surface here rather than during iteration.
func (c *deliveryClient) TrackDelivery(ctx context.Context, deliveryID string) (iter.Seq[model.DeliverySnapshot], error) {
	var snapshots []model.DeliverySnapshot
	err := c.client.Stream(ctx, &serviceDesc.Streams[0], trackDeliveryMethod,
		&TrackDeliveryRequest{DeliveryID: deliveryID},
		func() any { return new(DeliverySnapshot) },
		func(msg any) { snapshots = append(snapshots, fromSnapshot(msg.(*DeliverySnapshot))) },
	)
	if err != nil {
		return nil, err
	}
	return func(yield func(model.DeliverySnapshot) bool) {
		for _, s := range snapshots {
			if !yield(s) {
				return
			}
		}
	}, nil
}

func (c *deliveryClient) call(ctx context.Context, method string, req any) (*model.Delivery, error) {
	var resp Delivery
	if err := c.client.Invoke(ctx, method, req, &resp); err != nil {
		return nil, err
	}
	return fromDelivery(&resp), nil
}
