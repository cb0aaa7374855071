// Package transporttest runs gRPC services in-process for tests.
package transporttest

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"foodplatform/pkg/common/infrastructure/transport"
)

const bufSize = 1 << 20

// Start serves the services registered by register on an in-memory listener
// and returns a client connection to it. Both are torn down when t finishes.
func Start(t *testing.T, register func(*grpc.Server)) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(bufSize)
	srv := transport.NewServer(4)
	register(srv)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = transport.ServeListener(ctx, srv, lis)
	}()

	conn, err := transport.Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return conn
}
