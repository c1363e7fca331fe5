// Package orderrepo keeps order records and order statuses in process memory.
package orderrepo

import (
	"fmt"
	"sync"

	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/pkg/errs"
)

// maxUpdateAttempts bounds the optimistic retries of Update under contention on one order.
const maxUpdateAttempts = 64

// OrderStore implements ports.OrderStore on a map guarded by a RWMutex.
// The lock is held for single map operations only. Records are never shared:
// callers get clones and Update swaps in a modified clone, so an update of one
// order never waits on an update of another.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
}

// NewOrderStore creates an empty store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[kernel.UUID]*order.Order),
	}
}

// Insert adds a new order.
func (s *OrderStore) Insert(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[o.ID()]; exists {
		return errs.NewIllegalStateErrorWithCause("order", fmt.Errorf("id %s already exists", o.ID()))
	}
	s.orders[o.ID()] = o.Clone()
	return nil
}

// Get returns a copy of the order.
func (s *OrderStore) Get(id kernel.UUID) (*order.Order, error) {
	s.mu.RLock()
	o, ok := s.orders[id]
	s.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o.Clone(), nil
}

// Update applies fn to a copy of the order and stores the copy if nothing else
// replaced the record in the meantime; otherwise fn is retried on a fresh copy.
func (s *OrderStore) Update(id kernel.UUID, fn func(o *order.Order) error) error {
	for range maxUpdateAttempts {
		s.mu.RLock()
		current, ok := s.orders[id]
		s.mu.RUnlock()

		if !ok {
			return errs.NewObjectNotFoundError("order", id.String())
		}

		next := current.Clone()
		if err := fn(next); err != nil {
			return err
		}

		s.mu.Lock()
		if s.orders[id] == current {
			s.orders[id] = next
			s.mu.Unlock()
			return nil
		}
		s.mu.Unlock()
	}

	return errs.NewIllegalStateErrorWithCause("order", fmt.Errorf("too many concurrent updates of %s", id))
}

// Remove deletes the order and returns the last stored version.
func (s *OrderStore) Remove(id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	delete(s.orders, id)
	return o, nil
}

// Snapshot copies every order.
func (s *OrderStore) Snapshot() []*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}
