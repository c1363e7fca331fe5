package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"pancakehouse/internal/core/application/usecases/delivery"
	"pancakehouse/internal/pkg/errs"
)

type Config struct {
	HTTPPort string
	LogLevel slog.Level

	KitchenWorkers        int
	DeliveryWorkers       int
	KitchenQueueCapacity  int
	DeliveryQueueCapacity int
	PreparationTime       time.Duration
	ShutdownGracePeriod   time.Duration

	DeliveryProtocol      string
	HandshakePollInterval time.Duration
	HandshakeTimeout      time.Duration
	PartnerSimulation     bool

	RabbitMQURL      string
	RabbitMQExchange string

	UsersFile         string
	KitchenPrincipal  string
	DeliveryPrincipal string
}

// LookupFunc reads a variable, os.LookupEnv in production.
type LookupFunc func(key string) (string, bool)

// LoadConfig reads the configuration from the environment, applying defaults
// for unset variables. All malformed values are reported together.
func LoadConfig(lookup LookupFunc) (Config, error) {
	r := reader{lookup: lookup}

	cfg := Config{
		HTTPPort:              r.string("HTTP_PORT", "8080"),
		LogLevel:              r.level("LOG_LEVEL", slog.LevelInfo),
		KitchenWorkers:        r.int("KITCHEN_WORKERS", 2, 1),
		DeliveryWorkers:       r.int("DELIVERY_WORKERS", 2, 1),
		KitchenQueueCapacity:  r.int("KITCHEN_QUEUE_CAPACITY", 0, 0),
		DeliveryQueueCapacity: r.int("DELIVERY_QUEUE_CAPACITY", 0, 0),
		PreparationTime:       r.duration("PREPARATION_TIME", 0),
		ShutdownGracePeriod:   r.duration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		DeliveryProtocol:      r.string("DELIVERY_PROTOCOL", delivery.ProtocolHandshake),
		HandshakePollInterval: r.duration("HANDSHAKE_POLL_INTERVAL", delivery.DefaultPollInterval),
		HandshakeTimeout:      r.duration("HANDSHAKE_TIMEOUT", delivery.DefaultHandshakeTimeout),
		PartnerSimulation:     r.bool("PARTNER_SIMULATION", true),
		RabbitMQURL:           r.string("RABBITMQ_URL", ""),
		RabbitMQExchange:      r.string("RABBITMQ_EXCHANGE", "order_notifications"),
		UsersFile:             r.string("USERS_FILE", ""),
		KitchenPrincipal:      r.string("KITCHEN_PRINCIPAL", "kitchen-crew"),
		DeliveryPrincipal:     r.string("DELIVERY_PRINCIPAL", "delivery-crew"),
	}

	if cfg.DeliveryProtocol != delivery.ProtocolDirect && cfg.DeliveryProtocol != delivery.ProtocolHandshake {
		r.fail(errs.NewValueIsInvalidErrorWithCause("DELIVERY_PROTOCOL",
			fmt.Errorf("%q is neither %s nor %s", cfg.DeliveryProtocol, delivery.ProtocolDirect, delivery.ProtocolHandshake)))
	}

	if err := errors.Join(r.problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type reader struct {
	lookup   LookupFunc
	problems []error
}

func (r *reader) fail(err error) {
	r.problems = append(r.problems, err)
}

func (r *reader) string(key, def string) string {
	if v, ok := r.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (r *reader) int(key string, def, minValue int) int {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	if n < minValue {
		r.fail(errs.NewValueIsOutOfRangeError(key, n, minValue, "unbounded"))
		return def
	}
	return n
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	if d < 0 {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%s is negative", d)))
		return def
	}
	return d
}

func (r *reader) bool(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return b
}

func (r *reader) level(key string, def slog.Level) slog.Level {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return def
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return level
}
