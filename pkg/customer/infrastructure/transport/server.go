package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"foodplatform/pkg/common/infrastructure/transport"
	"foodplatform/pkg/customer/domain/model"
	"foodplatform/pkg/customer/domain/service"
)

const (
	serviceName = "food.customer.CustomerService"

	getCustomerMethod    = "/" + serviceName + "/GetCustomer"
	updateCustomerMethod = "/" + serviceName + "/UpdateCustomer"
)

var errorCodes = transport.ErrorCodes{
	{Err: model.ErrCustomerNotFound, Code: codes.NotFound},
	{Err: model.ErrOptimisticLock, Code: codes.Aborted},
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*service.CustomerService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCustomer", Handler: transport.Unary(errorCodes, getCustomerMethod, getCustomer)},
		{MethodName: "UpdateCustomer", Handler: transport.Unary(errorCodes, updateCustomerMethod, updateCustomer)},
	},
	Metadata: "customer.proto",
}

func RegisterCustomerServer(s grpc.ServiceRegistrar, svc service.CustomerService) {
	s.RegisterService(&serviceDesc, svc)
}

func getCustomer(svc service.CustomerService, ctx context.Context, req *GetCustomerRequest) (*Customer, error) {
	customer, err := svc.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	return toCustomer(customer), nil
}

func updateCustomer(svc service.CustomerService, ctx context.Context, req *UpdateCustomerRequest) (*Customer, error) {
	customer, err := svc.UpdateCustomer(ctx, req.CustomerID, model.CustomerUpdate{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		DeliveryAddresses: req.DeliveryAddresses,
	})
	if err != nil {
		return nil, err
	}
	return toCustomer(customer), nil
}
