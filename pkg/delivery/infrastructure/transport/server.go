package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"foodplatform/pkg/common/infrastructure/transport"
	"foodplatform/pkg/delivery/domain/model"
	"foodplatform/pkg/delivery/domain/service"
)

const (
	serviceName = "food.delivery.DeliveryService"

	assignDriverMethod         = "/" + serviceName + "/AssignDriver"
	getDeliveryMethod          = "/" + serviceName + "/GetDelivery"
	updateDeliveryStatusMethod = "/" + serviceName + "/UpdateDeliveryStatus"
	trackDeliveryMethod        = "/" + serviceName + "/TrackDelivery"
)

var errorCodes = transport.ErrorCodes{
	{Err: model.ErrDeliveryNotFound, Code: codes.NotFound},
	{Err: model.ErrOrderNotFound, Code: codes.NotFound},
	{Err: model.ErrInvalidStatus, Code: codes.InvalidArgument},
	{Err: model.ErrDeliveryExists, Code: codes.AlreadyExists},
	{Err: model.ErrOptimisticLock, Code: codes.Aborted},
	{Err: model.ErrOrderServiceFailure, Code: codes.Internal},
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*service.DeliveryService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AssignDriver", Handler: transport.Unary(errorCodes, assignDriverMethod, assignDriver)},
		{MethodName: "GetDelivery", Handler: transport.Unary(errorCodes, getDeliveryMethod, getDelivery)},
		{MethodName: "UpdateDeliveryStatus", Handler: transport.Unary(errorCodes, updateDeliveryStatusMethod, updateDeliveryStatus)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "TrackDelivery", Handler: transport.ServerStream(errorCodes, trackDelivery), ServerStreams: true},
	},
	Metadata: "delivery.proto",
}

func RegisterDeliveryServer(s grpc.ServiceRegistrar, svc service.DeliveryService) {
	s.RegisterService(&serviceDesc, svc)
}

func assignDriver(svc service.DeliveryService, ctx context.Context, req *AssignDriverRequest) (*Delivery, error) {
	delivery, err := svc.AssignDriver(ctx, req.OrderID, req.DriverID)
	if err != nil {
		return nil, err
	}
	return toDelivery(delivery), nil
}

func getDelivery(svc service.DeliveryService, ctx context.Context, req *GetDeliveryRequest) (*Delivery, error) {
	delivery, err := svc.GetDelivery(ctx, req.DeliveryID)
	if err != nil {
		return nil, err
	}
	return toDelivery(delivery), nil
}

func updateDeliveryStatus(svc service.DeliveryService, ctx context.Context, req *UpdateDeliveryStatusRequest) (*Delivery, error) {
	delivery, err := svc.UpdateDeliveryStatus(ctx, req.DeliveryID, model.DeliveryStatus(req.Status), req.CurrentLocation)
	if err != nil {
		return nil, err
	}
	return toDelivery(delivery), nil
}

func trackDelivery(svc service.DeliveryService, req *TrackDeliveryRequest, stream grpc.ServerStream) error {
	snapshots, err := svc.TrackDelivery(stream.Context(), req.DeliveryID)
	if err != nil {
		return err
	}
	for snapshot := range snapshots {
		if err := stream.SendMsg(toSnapshot(snapshot)); err != nil {
			return err
		}
	}
	return nil
}
