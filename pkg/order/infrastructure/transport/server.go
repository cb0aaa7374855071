package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"foodplatform/pkg/common/infrastructure/transport"
	"foodplatform/pkg/order/domain/model"
	"foodplatform/pkg/order/domain/service"
)

const (
	serviceName = "food.order.OrderService"

	createOrderMethod             = "/" + serviceName + "/CreateOrder"
	getOrderMethod                = "/" + serviceName + "/GetOrder"
	updateOrderStatusMethod       = "/" + serviceName + "/UpdateOrderStatus"
	restaurantOrderResponseMethod = "/" + serviceName + "/RestaurantOrderResponse"
)

var errorCodes = transport.ErrorCodes{
	{Err: model.ErrOrderNotFound, Code: codes.NotFound},
	{Err: model.ErrRestaurantMismatch, Code: codes.PermissionDenied},
	{Err: model.ErrOrderNotPending, Code: codes.FailedPrecondition},
	{Err: model.ErrInvalidStatus, Code: codes.InvalidArgument},
	{Err: model.ErrInvalidItem, Code: codes.InvalidArgument},
	{Err: model.ErrOrderExists, Code: codes.AlreadyExists},
	{Err: model.ErrOptimisticLock, Code: codes.Aborted},
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*service.OrderService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateOrder", Handler: transport.Unary(errorCodes, createOrderMethod, createOrder)},
		{MethodName: "GetOrder", Handler: transport.Unary(errorCodes, getOrderMethod, getOrder)},
		{MethodName: "UpdateOrderStatus", Handler: transport.Unary(errorCodes, updateOrderStatusMethod, updateOrderStatus)},
		{MethodName: "RestaurantOrderResponse", Handler: transport.Unary(errorCodes, restaurantOrderResponseMethod, restaurantOrderResponse)},
	},
	Metadata: "order.proto",
}

func RegisterOrderServer(s grpc.ServiceRegistrar, svc service.OrderService) {
	s.RegisterService(&serviceDesc, svc)
}

func createOrder(svc service.OrderService, ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	order, err := svc.CreateOrder(ctx, fromCreateOrderRequest(req))
	if err != nil {
		return nil, err
	}
	return toOrder(order), nil
}

func getOrder(svc service.OrderService, ctx context.Context, req *GetOrderRequest) (*Order, error) {
	order, err := svc.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	return toOrder(order), nil
}

func updateOrderStatus(svc service.OrderService, ctx context.Context, req *UpdateOrderStatusRequest) (*Order, error) {
	order, err := svc.UpdateOrderStatus(ctx, req.OrderID, model.OrderStatus(req.Status))
	if err != nil {
		return nil, err
	}
	return toOrder(order), nil
}

func restaurantOrderResponse(svc service.OrderService, ctx context.Context, req *RestaurantOrderResponseRequest) (*Order, error) {
	order, err := svc.RestaurantOrderResponse(ctx, req.RestaurantID, req.OrderID, req.Accepted, req.RejectionReason)
	if err != nil {
		return nil, err
	}
	return toOrder(order), nil
}
