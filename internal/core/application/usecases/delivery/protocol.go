package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pancakehouse/internal/core/application/usecases/stage"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/ports"
	"pancakehouse/internal/pkg/errs"
)

const (
	ProtocolDirect    = "direct"
	ProtocolHandshake = "handshake"

	DefaultPollInterval     = time.Second
	DefaultHandshakeTimeout = 5 * time.Minute
)

var (
	// ErrDeliveryInterrupted is returned when the worker context ends while
	// waiting for the partner. The order keeps its status.
	ErrDeliveryInterrupted = errors.New("delivery interrupted")

	// ErrPartnerTimedOut is returned when the partner never confirmed the
	// delivery. The order is moved to Error.
	ErrPartnerTimedOut = errors.New("delivery partner timed out")
)

// Protocol finishes the delivery of an order already taken out of the store.
// The order arrives in OutForDelivery.
type Protocol interface {
	Name() string
	Deliver(ctx context.Context, o *order.Order) error
}

// ProtocolConfig selects and tunes a Protocol.
type ProtocolConfig struct {
	Name         string
	PollInterval time.Duration
	Timeout      time.Duration
}

// NewProtocol builds the protocol named by cfg.Name. Zero durations fall back to defaults.
func NewProtocol(
	cfg ProtocolConfig,
	statuses ports.StatusStore,
	notifier ports.Notifier,
	signals *Signals,
	logger *slog.Logger,
) (Protocol, error) {
	switch cfg.Name {
	case ProtocolDirect:
		return NewDirectProtocol(statuses, notifier, logger), nil
	case ProtocolHandshake, "":
		return NewHandshakeProtocol(statuses, notifier, signals, cfg.PollInterval, cfg.Timeout, logger), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("delivery protocol",
			fmt.Errorf("%q is neither %s nor %s", cfg.Name, ProtocolDirect, ProtocolHandshake))
	}
}

// DirectProtocol delivers immediately: OutForDelivery -> Delivered.
type DirectProtocol struct {
	statuses ports.StatusStore
	notifier ports.Notifier
	logger   *slog.Logger
}

func NewDirectProtocol(statuses ports.StatusStore, notifier ports.Notifier, logger *slog.Logger) *DirectProtocol {
	return &DirectProtocol{
		statuses: statuses,
		notifier: notifier,
		logger:   logger.With("component", "direct_delivery"),
	}
}

func (p *DirectProtocol) Name() string {
	return ProtocolDirect
}

func (p *DirectProtocol) Deliver(ctx context.Context, o *order.Order) error {
	if err := p.statuses.Transition(o.ID(), order.Delivered); err != nil {
		stage.Fail(p.statuses, o.ID())
		return stage.Refuse(o.ID(), err)
	}

	notify(ctx, p.logger, o.ID(), p.notifier.NotifyDelivered(ctx, o.Owner(), o.ID()))
	return nil
}

// HandshakeProtocol hands the order to an external delivery partner and parks
// until the partner reports it delivered.
//
// The wait ends on the first of:
//   - the order's signal, raised by Desk.ConfirmDelivery
//   - a poll of the status store finding Delivered, for statuses set by other means
//   - the timeout, which moves the order to Error
//   - cancellation of ctx, which leaves the status alone
//
// A worker waits at most once per order.
type HandshakeProtocol struct {
	statuses     ports.StatusStore
	notifier     ports.Notifier
	signals      *Signals
	pollInterval time.Duration
	timeout      time.Duration
	logger       *slog.Logger
}

func NewHandshakeProtocol(
	statuses ports.StatusStore,
	notifier ports.Notifier,
	signals *Signals,
	pollInterval, timeout time.Duration,
	logger *slog.Logger,
) *HandshakeProtocol {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultHandshakeTimeout
	}

	return &HandshakeProtocol{
		statuses:     statuses,
		notifier:     notifier,
		signals:      signals,
		pollInterval: pollInterval,
		timeout:      timeout,
		logger:       logger.With("component", "handshake_delivery"),
	}
}

func (p *HandshakeProtocol) Name() string {
	return ProtocolHandshake
}

func (p *HandshakeProtocol) Deliver(ctx context.Context, o *order.Order) error {
	id := o.ID()

	// Registered before the status change so that a confirmation can never
	// arrive before the worker listens.
	signal := p.signals.Register(id)
	defer p.signals.Unregister(id)

	if err := p.statuses.CompareAndSet(id, order.OutForDelivery, order.DeliveryPartnerAssigned); err != nil {
		stage.Fail(p.statuses, id)
		return stage.Refuse(id, err)
	}
	notify(ctx, p.logger, id, p.notifier.NotifyPartnerAssigned(ctx, o.Owner(), id))

	if err := p.await(ctx, id, signal); err != nil {
		return err
	}

	notify(ctx, p.logger, id, p.notifier.NotifyDelivered(ctx, o.Owner(), id))
	return nil
}

func (p *HandshakeProtocol) await(ctx context.Context, id kernel.UUID, signal <-chan struct{}) error {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(p.timeout)
	defer deadline.Stop()

	for {
		select {
		case <-signal:
			return nil

		case <-ticker.C:
			st, err := p.statuses.Get(id)
			if err != nil {
				return stage.Refuse(id, err)
			}
			if st == order.Delivered {
				return nil
			}
			if st.IsTerminal() {
				return stage.Refuse(id, fmt.Errorf("status changed to %s while waiting for the partner", st))
			}

		case <-deadline.C:
			stage.Fail(p.statuses, id)
			if st, _ := p.statuses.Get(id); st == order.Delivered {
				return nil
			}
			return fmt.Errorf("order %s: %w after %s", id, ErrPartnerTimedOut, p.timeout)

		case <-ctx.Done():
			return fmt.Errorf("order %s: %w: %w", id, ErrDeliveryInterrupted, ctx.Err())
		}
	}
}

func notify(ctx context.Context, logger *slog.Logger, id kernel.UUID, err error) {
	if err != nil {
		logger.WarnContext(ctx, "Owner notification failed", "order_id", id.String(), "error", err)
	}
}
