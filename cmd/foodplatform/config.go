package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"foodplatform/pkg/common/infrastructure/event"
	"foodplatform/pkg/common/infrastructure/logging"
	"foodplatform/pkg/delivery/infrastructure/outbox"
)

const (
	storageMemory = "memory"
	storageMySQL  = "mysql"
)

// Embedded config structs are exported so envconfig can set their fields.
type LoggingConfig struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

func (c LoggingConfig) logSettings() LoggingConfig { return c }

type loggingSettings interface {
	logSettings() LoggingConfig
}

type ServiceAddrs struct {
	OrderServiceAddr      string `envconfig:"ORDER_SERVICE_ADDR" default:"localhost:50051"`
	DeliveryServiceAddr   string `envconfig:"DELIVERY_SERVICE_ADDR" default:"localhost:50052"`
	RestaurantServiceAddr string `envconfig:"RESTAURANT_SERVICE_ADDR" default:"localhost:50053"`
	CustomerServiceAddr   string `envconfig:"CUSTOMER_SERVICE_ADDR" default:"localhost:50054"`
}

// BackendConfig is shared by every gRPC service. ListenAddr falls back to the
// service's own default port when unset.
type BackendConfig struct {
	LoggingConfig
	event.Config
	ListenAddr  string        `envconfig:"LISTEN_ADDR"`
	GRPCWorkers int           `envconfig:"GRPC_WORKERS" default:"10"`
	RPCTimeout  time.Duration `envconfig:"RPC_TIMEOUT" default:"5s"`
}

type orderConfig struct {
	BackendConfig
	Storage  string `envconfig:"ORDER_STORAGE" default:"memory"`
	MySQLDSN string `envconfig:"ORDER_MYSQL_DSN" default:"food:food@tcp(localhost:3306)/food"`
}

type deliveryConfig struct {
	BackendConfig
	ServiceAddrs
	Outbox outbox.Config `ignored:"true"`
}

type restaurantConfig struct {
	BackendConfig
	SeedFile string `envconfig:"RESTAURANT_SEED_FILE"`
}

type customerConfig struct {
	BackendConfig
	SeedFile string `envconfig:"CUSTOMER_SEED_FILE"`
}

type gatewayConfig struct {
	LoggingConfig
	ServiceAddrs
	Port       string        `envconfig:"PORT" default:"50050"`
	RPCTimeout time.Duration `envconfig:"RPC_TIMEOUT" default:"5s"`
}

func (c BackendConfig) listenAddr(defaultAddr string) string {
	if c.ListenAddr != "" {
		return c.ListenAddr
	}
	return defaultAddr
}

// loadConfig fills cfg from the environment and applies its logging settings.
func loadConfig(cfg loggingSettings) error {
	if err := envconfig.Process("", cfg); err != nil {
		return errors.Wrap(err, "read configuration")
	}
	l := cfg.logSettings()
	return logging.Configure(l.LogLevel, l.LogFormat)
}

func loadDeliveryConfig() (*deliveryConfig, error) {
	cfg := new(deliveryConfig)
	if err := loadConfig(cfg); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Outbox); err != nil {
		return nil, errors.Wrap(err, "read outbox configuration")
	}
	return cfg, nil
}
