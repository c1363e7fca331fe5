package delivery

import (
	"sync"

	"pancakehouse/internal/core/domain/model/kernel"
)

// Signals wakes delivery workers parked in the partner handshake. A worker
// registers the order it waits for; the "delivered" signal closes that channel.
type Signals struct {
	mu      sync.Mutex
	waiting map[kernel.UUID]chan struct{}
}

func NewSignals() *Signals {
	return &Signals{
		waiting: make(map[kernel.UUID]chan struct{}),
	}
}

// Register returns the channel closed by Signal(id). Registering twice returns
// the same channel.
func (s *Signals) Register(id kernel.UUID) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.waiting[id]
	if !ok {
		ch = make(chan struct{})
		s.waiting[id] = ch
	}
	return ch
}

// Signal wakes the worker waiting for id and reports whether one was registered.
func (s *Signals) Signal(id kernel.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.waiting[id]
	if ok {
		close(ch)
		delete(s.waiting, id)
	}
	return ok
}

// Unregister drops the registration without waking anybody.
func (s *Signals) Unregister(id kernel.UUID) {
	s.mu.Lock()
	delete(s.waiting, id)
	s.mu.Unlock()
}

// Waiting returns the number of registered workers.
func (s *Signals) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.waiting)
}
