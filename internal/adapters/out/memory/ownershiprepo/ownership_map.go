// Package ownershiprepo records which user owns an order while the order is
// still reachable through the order API.
package ownershiprepo

import (
	"fmt"
	"sync"

	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/pkg/errs"
)

// OwnershipMap implements ports.OwnershipMap.
type OwnershipMap struct {
	mu     sync.RWMutex
	owners map[kernel.UUID]string
}

func NewOwnershipMap() *OwnershipMap {
	return &OwnershipMap{
		owners: make(map[kernel.UUID]string),
	}
}

// Assign binds id to owner. Rebinding an order is not allowed.
func (m *OwnershipMap) Assign(id kernel.UUID, owner string) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if owner == "" {
		return errs.NewValueIsRequiredError("owner")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.owners[id]; ok {
		return errs.NewIllegalStateErrorWithCause("ownership", fmt.Errorf("order %s is owned by %s", id, current))
	}
	m.owners[id] = owner
	return nil
}

func (m *OwnershipMap) Owner(id kernel.UUID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owner, ok := m.owners[id]
	return owner, ok
}

func (m *OwnershipMap) Release(id kernel.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.owners[id]
	delete(m.owners, id)
	return ok
}

// Len returns the number of orders still bound to an owner.
func (m *OwnershipMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.owners)
}
