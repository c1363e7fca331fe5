// Package kitchen is the kitchen-facing side of the system: the operations the
// kitchen crew performs on orders checked out by their owners.
package kitchen

import (
	"context"
	"log/slog"

	"pancakehouse/internal/core/application/usecases/stage"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/core/ports"
)

// Desk is the kitchen capability. Orders reach it without an owner binding,
// so access is decided by the "kitchen" privilege alone.
type Desk interface {
	// ViewOrders lists orders waiting for or being prepared by the kitchen.
	ViewOrders(ctx context.Context, caller user.User) ([]order.Ticket, error)

	// AcceptOrder takes a Completed order into preparation and returns it.
	AcceptOrder(ctx context.Context, caller user.User, id kernel.UUID) (*order.Order, error)

	// NotifyOrderCompletion marks a prepared order ReadyForDelivery and hands
	// it to the delivery queue.
	NotifyOrderCompletion(ctx context.Context, caller user.User, id kernel.UUID) error

	// ReportFailure moves an order the kitchen could not prepare to Error.
	ReportFailure(ctx context.Context, caller user.User, id kernel.UUID, cause error) error
}

// Service implements Desk on the stores. Any order it cannot process is moved
// to Error before the error is returned.
type Service struct {
	orders        ports.OrderStore
	statuses      ports.StatusStore
	deliveryQueue ports.OrderQueue
	logger        *slog.Logger
}

var _ Desk = (*Service)(nil)

func NewService(
	orders ports.OrderStore,
	statuses ports.StatusStore,
	deliveryQueue ports.OrderQueue,
	logger *slog.Logger,
) *Service {
	return &Service{
		orders:        orders,
		statuses:      statuses,
		deliveryQueue: deliveryQueue,
		logger:        logger.With("component", "kitchen_desk"),
	}
}

func (s *Service) ViewOrders(_ context.Context, _ user.User) ([]order.Ticket, error) {
	return stage.Tickets(s.orders, s.statuses, order.Completed, order.InProgress), nil
}

// AcceptOrder fails for an order missing from the store, e.g. one cancelled
// after it was queued, and for an order not in Completed.
func (s *Service) AcceptOrder(ctx context.Context, caller user.User, id kernel.UUID) (*order.Order, error) {
	o, err := s.orders.Get(id)
	if err != nil {
		return nil, s.refuse(ctx, id, err)
	}

	if err = s.statuses.CompareAndSet(id, order.Completed, order.InProgress); err != nil {
		return nil, s.refuse(ctx, id, err)
	}

	s.logger.InfoContext(ctx, "Order accepted", "order_id", id.String(), "crew", caller.Name())
	return o, nil
}

// NotifyOrderCompletion sets ReadyForDelivery before the hand-off, so a
// delivery worker never sees the order in an earlier status.
func (s *Service) NotifyOrderCompletion(ctx context.Context, caller user.User, id kernel.UUID) error {
	if err := s.statuses.CompareAndSet(id, order.InProgress, order.ReadyForDelivery); err != nil {
		return s.refuse(ctx, id, err)
	}

	if err := s.deliveryQueue.Put(ctx, id); err != nil {
		return s.refuse(ctx, id, err)
	}

	s.logger.InfoContext(ctx, "Order ready for delivery", "order_id", id.String(), "crew", caller.Name())
	return nil
}

func (s *Service) ReportFailure(ctx context.Context, caller user.User, id kernel.UUID, cause error) error {
	stage.Fail(s.statuses, id)
	s.logger.ErrorContext(ctx, "Order preparation failed", "order_id", id.String(), "crew", caller.Name(),
		"error", cause)
	return nil
}

func (s *Service) refuse(ctx context.Context, id kernel.UUID, cause error) error {
	stage.Fail(s.statuses, id)
	s.logger.ErrorContext(ctx, "Kitchen cannot process order", "order_id", id.String(), "error", cause)
	return stage.Refuse(id, cause)
}
