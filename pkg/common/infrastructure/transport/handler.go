package transport

import (
	"context"

	"google.golang.org/grpc"
)

// Unary adapts a typed method of the service S into a grpc.MethodHandler.
// Domain errors returned by fn are converted with codes.
func Unary[S, Req, Resp any](codes ErrorCodes, fullMethod string, fn func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	call := func(srv any, ctx context.Context, req *Req) (any, error) {
		resp, err := fn(srv.(S), ctx, req)
		if err != nil {
			return nil, codes.ToStatus(err)
		}
		return resp, nil
	}
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, req)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(*Req))
		})
	}
}

// ServerStream adapts a server-streaming method that reads a single request.
func ServerStream[S, Req any](codes ErrorCodes, fn func(S, *Req, grpc.ServerStream) error) grpc.StreamHandler {
	return func(srv any, stream grpc.ServerStream) error {
		req := new(Req)
		if err := stream.RecvMsg(req); err != nil {
			return err
		}
		return codes.ToStatus(fn(srv.(S), req, stream))
	}
}
