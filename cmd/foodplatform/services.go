package main

import (
	"net"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"foodplatform/pkg/common/infrastructure/event"
	"foodplatform/pkg/common/infrastructure/transport"
	customerservice "foodplatform/pkg/customer/domain/service"
	customerrepository "foodplatform/pkg/customer/infrastructure/repository"
	customertransport "foodplatform/pkg/customer/infrastructure/transport"
	deliveryservice "foodplatform/pkg/delivery/domain/service"
	"foodplatform/pkg/delivery/infrastructure/outbox"
	deliveryrepository "foodplatform/pkg/delivery/infrastructure/repository"
	deliverytransport "foodplatform/pkg/delivery/infrastructure/transport"
	gatewaytransport "foodplatform/pkg/gateway/transport"
	ordermodel "foodplatform/pkg/order/domain/model"
	orderservice "foodplatform/pkg/order/domain/service"
	orderrepository "foodplatform/pkg/order/infrastructure/repository"
	ordertransport "foodplatform/pkg/order/infrastructure/transport"
	restaurantservice "foodplatform/pkg/restaurant/domain/service"
	restaurantrepository "foodplatform/pkg/restaurant/infrastructure/repository"
	restauranttransport "foodplatform/pkg/restaurant/infrastructure/transport"
)

const (
	defaultOrderAddr      = ":50051"
	defaultDeliveryAddr   = ":50052"
	defaultRestaurantAddr = ":50053"
	defaultCustomerAddr   = ":50054"
)

func runOrder(c *cli.Context) error {
	var cfg orderConfig
	if err := loadConfig(&cfg); err != nil {
		return err
	}

	repo, closeRepo, err := newOrderRepository(cfg)
	if err != nil {
		return err
	}
	defer closeWithLog("order storage", closeRepo)

	dispatcher, closeDispatcher, err := event.NewDispatcher(cfg.Config, "order")
	if err != nil {
		return err
	}
	defer closeWithLog("event dispatcher", closeDispatcher)

	srv := transport.NewServer(cfg.GRPCWorkers)
	ordertransport.RegisterOrderServer(srv, orderservice.NewOrderService(repo, dispatcher))
	return serveGRPC(c.Context, srv, cfg.listenAddr(defaultOrderAddr))
}

func newOrderRepository(cfg orderConfig) (ordermodel.OrderRepository, func() error, error) {
	switch cfg.Storage {
	case storageMemory, "":
		return orderrepository.NewMemoryRepository(), func() error { return nil }, nil
	case storageMySQL:
		log.Info("using MySQL order storage")
		return orderrepository.NewMySQLRepository(cfg.MySQLDSN)
	default:
		return nil, nil, errors.Errorf("unknown order storage %q", cfg.Storage)
	}
}

func runDelivery(c *cli.Context) error {
	cfg, err := loadDeliveryConfig()
	if err != nil {
		return err
	}

	conns, closeConns, err := dialAll(cfg.OrderServiceAddr, cfg.RestaurantServiceAddr)
	if err != nil {
		return err
	}
	defer closeConns()

	dispatcher, closeDispatcher, err := event.NewDispatcher(cfg.Config, "delivery")
	if err != nil {
		return err
	}
	defer closeWithLog("event dispatcher", closeDispatcher)

	orders := ordertransport.NewOrderClient(conns[0], cfg.RPCTimeout)
	restaurants := restauranttransport.NewRestaurantClient(conns[1], cfg.RPCTimeout)
	box := outbox.New(cfg.Outbox, orders)

	srv := transport.NewServer(cfg.GRPCWorkers)
	deliverytransport.RegisterDeliveryServer(srv, deliveryservice.NewDeliveryService(
		deliveryrepository.NewMemoryRepository(),
		orders,
		restaurants,
		box,
		dispatcher,
	))
	return serveGRPC(c.Context, srv, cfg.listenAddr(defaultDeliveryAddr), box.Run)
}

func runRestaurant(c *cli.Context) error {
	var cfg restaurantConfig
	if err := loadConfig(&cfg); err != nil {
		return err
	}

	restaurants := restaurantrepository.DefaultRestaurants()
	if cfg.SeedFile != "" {
		loaded, err := restaurantrepository.LoadRestaurants(cfg.SeedFile)
		if err != nil {
			return err
		}
		restaurants = loaded
	}
	logSeed("restaurants", len(restaurants), cfg.SeedFile)

	dispatcher, closeDispatcher, err := event.NewDispatcher(cfg.Config, "restaurant")
	if err != nil {
		return err
	}
	defer closeWithLog("event dispatcher", closeDispatcher)

	srv := transport.NewServer(cfg.GRPCWorkers)
	restauranttransport.RegisterRestaurantServer(srv, restaurantservice.NewRestaurantService(
		restaurantrepository.NewMemoryRepository(restaurants),
		dispatcher,
	))
	return serveGRPC(c.Context, srv, cfg.listenAddr(defaultRestaurantAddr))
}

func runCustomer(c *cli.Context) error {
	var cfg customerConfig
	if err := loadConfig(&cfg); err != nil {
		return err
	}

	customers := customerrepository.DefaultCustomers()
	if cfg.SeedFile != "" {
		loaded, err := customerrepository.LoadCustomers(cfg.SeedFile)
		if err != nil {
			return err
		}
		customers = loaded
	}
	logSeed("customers", len(customers), cfg.SeedFile)

	dispatcher, closeDispatcher, err := event.NewDispatcher(cfg.Config, "customer")
	if err != nil {
		return err
	}
	defer closeWithLog("event dispatcher", closeDispatcher)

	srv := transport.NewServer(cfg.GRPCWorkers)
	customertransport.RegisterCustomerServer(srv, customerservice.NewCustomerService(
		customerrepository.NewMemoryRepository(customers),
		dispatcher,
	))
	return serveGRPC(c.Context, srv, cfg.listenAddr(defaultCustomerAddr))
}

func runGateway(c *cli.Context) error {
	var cfg gatewayConfig
	if err := loadConfig(&cfg); err != nil {
		return err
	}

	conns, closeConns, err := dialAll(
		cfg.OrderServiceAddr,
		cfg.DeliveryServiceAddr,
		cfg.RestaurantServiceAddr,
		cfg.CustomerServiceAddr,
	)
	if err != nil {
		return err
	}
	defer closeConns()

	router := gatewaytransport.Router(gatewaytransport.Backends{
		Orders:      ordertransport.NewOrderClient(conns[0], cfg.RPCTimeout),
		Deliveries:  deliverytransport.NewDeliveryClient(conns[1], cfg.RPCTimeout),
		Restaurants: restauranttransport.NewRestaurantClient(conns[2], cfg.RPCTimeout),
		Customers:   customertransport.NewCustomerClient(conns[3], cfg.RPCTimeout),
		Addresses: map[string]string{
			"order_service":      cfg.OrderServiceAddr,
			"delivery_service":   cfg.DeliveryServiceAddr,
			"restaurant_service": cfg.RestaurantServiceAddr,
			"customer_service":   cfg.CustomerServiceAddr,
		},
	})
	return serveHTTP(c.Context, &http.Server{
		Addr:    net.JoinHostPort("", cfg.Port),
		Handler: router,
	})
}

func logSeed(kind string, count int, file string) {
	source := file
	if source == "" {
		source = "built-in"
	}
	log.WithFields(log.Fields{"kind": kind, "count": count, "source": source}).Info("loaded seed data")
}
