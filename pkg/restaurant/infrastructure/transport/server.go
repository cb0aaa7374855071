package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"foodplatform/pkg/common/infrastructure/transport"
	"foodplatform/pkg/restaurant/domain/model"
	"foodplatform/pkg/restaurant/domain/service"
)

const (
	serviceName = "food.restaurant.RestaurantService"

	getRestaurantMethod = "/" + serviceName + "/GetRestaurant"
	updateMenuMethod    = "/" + serviceName + "/UpdateMenu"
	getPaymentsMethod   = "/" + serviceName + "/GetRestaurantPayments"
)

var errorCodes = transport.ErrorCodes{
	{Err: model.ErrRestaurantNotFound, Code: codes.NotFound},
	{Err: model.ErrInvalidMenuItem, Code: codes.InvalidArgument},
	{Err: model.ErrOptimisticLock, Code: codes.Aborted},
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*service.RestaurantService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetRestaurant", Handler: transport.Unary(errorCodes, getRestaurantMethod, getRestaurant)},
		{MethodName: "UpdateMenu", Handler: transport.Unary(errorCodes, updateMenuMethod, updateMenu)},
		{MethodName: "GetRestaurantPayments", Handler: transport.Unary(errorCodes, getPaymentsMethod, getPayments)},
	},
	Metadata: "restaurant.proto",
}

func RegisterRestaurantServer(s grpc.ServiceRegistrar, svc service.RestaurantService) {
	s.RegisterService(&serviceDesc, svc)
}

func getRestaurant(svc service.RestaurantService, ctx context.Context, req *GetRestaurantRequest) (*Restaurant, error) {
	restaurant, err := svc.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	return toRestaurant(restaurant), nil
}

func updateMenu(svc service.RestaurantService, ctx context.Context, req *UpdateMenuRequest) (*Restaurant, error) {
	restaurant, err := svc.UpdateMenu(ctx, req.RestaurantID, fromMenu(req.MenuItems))
	if err != nil {
		return nil, err
	}
	return toRestaurant(restaurant), nil
}

func getPayments(svc service.RestaurantService, ctx context.Context, req *GetPaymentsRequest) (*GetPaymentsResponse, error) {
	payments, err := svc.GetRestaurantPayments(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	resp := &GetPaymentsResponse{Payments: make([]Payment, 0, len(payments))}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, Payment(p))
	}
	return resp, nil
}
