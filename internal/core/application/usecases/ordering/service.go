package ordering

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/menu"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/core/ports"
	"pancakehouse/internal/pkg/errs"
)

// ErrOrderIsNotPending is the cause returned for changes to an order already checked out.
var ErrOrderIsNotPending = errors.New("order is not pending")

// Service is the innermost Workflow. It trusts its caller: authentication and
// authorization happen in the layers wrapping it.
type Service struct {
	orders       ports.OrderStore
	statuses     ports.StatusStore
	ownership    ports.OwnershipMap
	catalog      menu.Catalog
	kitchenQueue ports.OrderQueue
	newID        func() kernel.UUID
	logger       *slog.Logger
}

var _ Workflow = (*Service)(nil)

// NewService creates the workflow core. Completed orders are put on kitchenQueue.
func NewService(
	orders ports.OrderStore,
	statuses ports.StatusStore,
	ownership ports.OwnershipMap,
	catalog menu.Catalog,
	kitchenQueue ports.OrderQueue,
	logger *slog.Logger,
) *Service {
	return &Service{
		orders:       orders,
		statuses:     statuses,
		ownership:    ownership,
		catalog:      catalog,
		kitchenQueue: kitchenQueue,
		newID:        kernel.NewUUID,
		logger:       logger.With("component", "order_workflow"),
	}
}

// CreateOrder fails fast with IllegalState when the generated id is already taken.
// If ownership cannot be recorded the order and its status are rolled back.
func (s *Service) CreateOrder(ctx context.Context, caller user.User, info kernel.DeliveryInfo) (kernel.UUID, error) {
	if err := info.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	o, err := order.NewOrder(s.newID(), caller.Name(), info)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = s.orders.Insert(o); err != nil {
		return kernel.UUID{}, err
	}
	s.statuses.Set(o.ID(), order.Pending)

	if err = s.ownership.Assign(o.ID(), caller.Name()); err != nil {
		_, _ = s.orders.Remove(o.ID())
		s.statuses.Delete(o.ID())
		return kernel.UUID{}, err
	}

	s.logger.InfoContext(ctx, "Order created", "order_id", o.ID().String(), "owner", caller.Name(),
		"delivery_info", info.String())
	return o.ID(), nil
}

func (s *Service) AddPancakes(_ context.Context, _ user.User, id kernel.UUID, items order.Items) error {
	if err := items.Validate(); err != nil {
		return err
	}
	for pancake := range items {
		if _, err := s.catalog.Recipe(pancake); err != nil {
			return err
		}
	}

	if err := s.requirePending(id); err != nil {
		return err
	}

	return storageError(s.orders.Update(id, func(o *order.Order) error {
		return o.AddPancakes(items)
	}))
}

func (s *Service) OrderSummary(_ context.Context, _ user.User, id kernel.UUID) (order.Items, error) {
	o, err := s.orders.Get(id)
	if err != nil {
		return nil, storageError(err)
	}
	return o.Items(), nil
}

func (s *Service) Status(_ context.Context, _ user.User, id kernel.UUID) (order.Status, error) {
	st, err := s.statuses.Get(id)
	if err != nil {
		return order.Unknown, storageError(err)
	}
	return st, nil
}

// Complete checks a non-empty Pending order out, moves it to Completed, puts it
// on the kitchen queue and releases ownership. A queue that refuses the order (shut down, or
// ctx cancelled while waiting for room) leaves the order in Error.
func (s *Service) Complete(ctx context.Context, caller user.User, id kernel.UUID) error {
	// Checking out goes through the same optimistic update as AddPancakes, so
	// an addition either lands before the checkout or is refused.
	var total int
	err := s.orders.Update(id, func(o *order.Order) error {
		total = o.Items().Total()
		return o.CheckOut()
	})
	if err != nil {
		return storageError(err)
	}

	if err = s.statuses.CompareAndSet(id, order.Pending, order.Completed); err != nil {
		return storageError(err)
	}

	if err = s.kitchenQueue.Put(ctx, id); err != nil {
		_ = s.statuses.Transition(id, order.Error)
		s.ownership.Release(id)
		s.logger.ErrorContext(ctx, "Kitchen refused order", "order_id", id.String(), "error", err)
		return errs.NewIllegalStateErrorWithCause("kitchen intake", err)
	}

	s.ownership.Release(id)
	s.logger.InfoContext(ctx, "Order sent to kitchen", "order_id", id.String(), "owner", caller.Name(),
		"pancakes", total)
	return nil
}

// Cancel only succeeds while the order is Pending.
func (s *Service) Cancel(ctx context.Context, caller user.User, id kernel.UUID) error {
	if err := s.statuses.CompareAndSet(id, order.Pending, order.Cancelled); err != nil {
		return storageError(err)
	}

	if _, err := s.orders.Remove(id); err != nil {
		s.logger.WarnContext(ctx, "Cancelled order had no record", "order_id", id.String(), "error", err)
	}
	s.ownership.Release(id)

	s.logger.InfoContext(ctx, "Order cancelled", "order_id", id.String(), "owner", caller.Name())
	return nil
}

func (s *Service) requirePending(id kernel.UUID) error {
	st, err := s.statuses.Get(id)
	if err != nil {
		return storageError(err)
	}
	if st != order.Pending {
		return errs.NewIllegalStateErrorWithCause("order "+id.String(), fmt.Errorf("%w: %s", ErrOrderIsNotPending, st))
	}
	return nil
}

// storageError reports records missing from a store as IllegalState.
func storageError(err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewIllegalStateErrorWithCause("order", err)
	}
	return err
}
