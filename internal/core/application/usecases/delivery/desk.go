// Package delivery is the delivery-facing side of the system: taking prepared
// orders out of the store and delivering them, directly or through a partner.
package delivery

import (
	"context"
	"log/slog"

	"pancakehouse/internal/core/application/usecases/stage"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/core/ports"
)

// Desk is the delivery capability, guarded by the "delivery" privilege.
type Desk interface {
	// ViewCompletedOrders lists prepared orders waiting for a delivery worker.
	ViewCompletedOrders(ctx context.Context, caller user.User) ([]order.Ticket, error)

	// ViewAssignedOrders lists orders handed to the partner and not yet delivered.
	ViewAssignedOrders(ctx context.Context, caller user.User) ([]kernel.UUID, error)

	// AcceptOrder moves a ReadyForDelivery order to OutForDelivery and removes
	// it from the order store. The removed record is returned.
	AcceptOrder(ctx context.Context, caller user.User, id kernel.UUID) (*order.Order, error)

	// SendForTheDelivery runs the configured protocol for an accepted order.
	SendForTheDelivery(ctx context.Context, caller user.User, o *order.Order) error

	// ConfirmDelivery is the partner's "delivered" signal for an assigned order.
	ConfirmDelivery(ctx context.Context, caller user.User, id kernel.UUID) error
}

// Service implements Desk on the stores.
type Service struct {
	orders   ports.OrderStore
	statuses ports.StatusStore
	protocol Protocol
	signals  *Signals
	logger   *slog.Logger
}

var _ Desk = (*Service)(nil)

func NewService(
	orders ports.OrderStore,
	statuses ports.StatusStore,
	protocol Protocol,
	signals *Signals,
	logger *slog.Logger,
) *Service {
	return &Service{
		orders:   orders,
		statuses: statuses,
		protocol: protocol,
		signals:  signals,
		logger:   logger.With("component", "delivery_desk", "protocol", protocol.Name()),
	}
}

func (s *Service) ViewCompletedOrders(_ context.Context, _ user.User) ([]order.Ticket, error) {
	return stage.Tickets(s.orders, s.statuses, order.ReadyForDelivery), nil
}

func (s *Service) ViewAssignedOrders(_ context.Context, _ user.User) ([]kernel.UUID, error) {
	return stage.IDs(s.statuses, order.DeliveryPartnerAssigned), nil
}

// AcceptOrder moves any order that is not ReadyForDelivery, or is gone from the
// store, to Error.
func (s *Service) AcceptOrder(ctx context.Context, caller user.User, id kernel.UUID) (*order.Order, error) {
	if err := s.statuses.CompareAndSet(id, order.ReadyForDelivery, order.OutForDelivery); err != nil {
		return nil, s.refuse(ctx, id, err)
	}

	o, err := s.orders.Remove(id)
	if err != nil {
		return nil, s.refuse(ctx, id, err)
	}

	s.logger.InfoContext(ctx, "Order out for delivery", "order_id", id.String(), "crew", caller.Name(),
		"delivery_info", o.DeliveryInfo().String())
	return o, nil
}

func (s *Service) SendForTheDelivery(ctx context.Context, caller user.User, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := s.protocol.Deliver(ctx, o); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Order delivered", "order_id", o.ID().String(), "crew", caller.Name(),
		"owner", o.Owner())
	return nil
}

// ConfirmDelivery rejects orders not waiting for the partner and leaves their status alone.
func (s *Service) ConfirmDelivery(ctx context.Context, caller user.User, id kernel.UUID) error {
	if err := s.statuses.CompareAndSet(id, order.DeliveryPartnerAssigned, order.Delivered); err != nil {
		return stage.Refuse(id, err)
	}

	woken := s.signals.Signal(id)
	s.logger.InfoContext(ctx, "Delivery confirmed", "order_id", id.String(), "partner", caller.Name(),
		"worker_woken", woken)
	return nil
}

func (s *Service) refuse(ctx context.Context, id kernel.UUID, cause error) error {
	stage.Fail(s.statuses, id)
	s.logger.ErrorContext(ctx, "Delivery cannot process order", "order_id", id.String(), "error", cause)
	return stage.Refuse(id, cause)
}
