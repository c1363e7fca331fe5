package orderrepo

import (
	"fmt"
	"maps"
	"sync"

	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/pkg/errs"
)

// StatusStore implements ports.StatusStore. Each method is one critical section,
// so a transition check and its write cannot interleave with another writer.
type StatusStore struct {
	mu       sync.RWMutex
	statuses map[kernel.UUID]order.Status
}

func NewStatusStore() *StatusStore {
	return &StatusStore{
		statuses: make(map[kernel.UUID]order.Status),
	}
}

func (s *StatusStore) Get(id kernel.UUID) (order.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.statuses[id]
	if !ok {
		return order.Unknown, errs.NewObjectNotFoundError("status", id.String())
	}
	return st, nil
}

func (s *StatusStore) Set(id kernel.UUID, st order.Status) {
	s.mu.Lock()
	s.statuses[id] = st
	s.mu.Unlock()
}

func (s *StatusStore) Transition(id kernel.UUID, to order.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.statuses[id]
	if !ok {
		return errs.NewObjectNotFoundError("status", id.String())
	}

	next, err := current.TransitionTo(to)
	if err != nil {
		return err
	}
	s.statuses[id] = next
	return nil
}

func (s *StatusStore) CompareAndSet(id kernel.UUID, from, to order.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.statuses[id]
	if !ok {
		return errs.NewObjectNotFoundError("status", id.String())
	}
	if current != from {
		return errs.NewIllegalStateErrorWithCause(
			"order status",
			fmt.Errorf("order %s is %s, expected %s", id, current, from),
		)
	}

	next, err := current.TransitionTo(to)
	if err != nil {
		return err
	}
	s.statuses[id] = next
	return nil
}

func (s *StatusStore) Delete(id kernel.UUID) {
	s.mu.Lock()
	delete(s.statuses, id)
	s.mu.Unlock()
}

func (s *StatusStore) Snapshot() map[kernel.UUID]order.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.statuses)
}
