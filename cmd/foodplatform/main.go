package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"foodplatform/pkg/common/infrastructure/transport"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "foodplatform",
		Usage: "food delivery platform services",
		Commands: []*cli.Command{
			{Name: "order", Usage: "run the order store", Action: runOrder},
			{Name: "delivery", Usage: "run the delivery store", Action: runDelivery},
			{Name: "restaurant", Usage: "run the restaurant directory", Action: runRestaurant},
			{Name: "customer", Usage: "run the customer directory", Action: runCustomer},
			{Name: "gateway", Usage: "run the HTTP gateway", Action: runGateway},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("foodplatform stopped with error")
	}
}

// serveGRPC runs srv and any background tasks until a termination signal
// arrives or one of them fails.
func serveGRPC(ctx context.Context, srv *grpc.Server, addr string, background ...func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return transport.Serve(ctx, srv, addr)
	})
	for _, task := range background {
		g.Go(func() error {
			return task(ctx)
		})
	}
	return g.Wait()
}

func serveHTTP(ctx context.Context, srv *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "HTTP server stopped")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func dialAll(addrs ...string) ([]*grpc.ClientConn, func(), error) {
	conns := make([]*grpc.ClientConn, 0, len(addrs))
	closeAll := func() {
		for _, conn := range conns {
			if err := conn.Close(); err != nil {
				log.WithError(err).Warn("failed to close connection")
			}
		}
	}
	for _, addr := range addrs {
		conn, err := transport.Dial(addr)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		conns = append(conns, conn)
	}
	return conns, closeAll, nil
}

func closeWithLog(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.WithError(err).WithField("resource", name).Warn("failed to close")
	}
}
