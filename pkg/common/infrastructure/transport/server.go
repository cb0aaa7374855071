package transport

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

const defaultWorkers = 10

// NewServer builds a gRPC server that handles at most workers requests at a
// time per connection on a fixed pool of goroutines.
func NewServer(workers int) *grpc.Server {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return grpc.NewServer(
		grpc.ForceServerCodec(Codec()),
		grpc.NumStreamWorkers(uint32(workers)),
		grpc.MaxConcurrentStreams(uint32(workers)),
		grpc.ChainUnaryInterceptor(unaryLogInterceptor),
		grpc.ChainStreamInterceptor(streamLogInterceptor),
	)
}

// Serve runs srv on addr until ctx is cancelled, then stops it gracefully.
func Serve(ctx context.Context, srv *grpc.Server, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	return ServeListener(ctx, srv, lis)
}

func ServeListener(ctx context.Context, srv *grpc.Server, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", lis.Addr().String()).Info("gRPC server started")
		errCh <- srv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		log.Info("stopping gRPC server")
		srv.GracefulStop()
		return nil
	case err := <-errCh:
		return errors.Wrap(err, "gRPC server stopped")
	}
}

func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec())),
	}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s", addr)
	}
	return conn, nil
}

func unaryLogInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	logCall(info.FullMethod, start, err)
	return resp, err
}

func streamLogInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)
	logCall(info.FullMethod, start, err)
	return err
}

func logCall(method string, start time.Time, err error) {
	entry := log.WithFields(log.Fields{
		"method":   method,
		"duration": time.Since(start).String(),
		"code":     status.Code(err).String(),
	})
	if err != nil {
		entry.WithError(err).Warn("rpc failed")
		return
	}
	entry.Info("rpc handled")
}
