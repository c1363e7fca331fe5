package ports

import (
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
)

// StatusStore maps order ids to their current status. Statuses outlive the
// order records so terminal states stay observable.
type StatusStore interface {
	// Get returns the status, errs.ObjectNotFoundError for an unknown id.
	Get(id kernel.UUID) (order.Status, error)

	// Set stores s regardless of the current status. Used for the initial
	// Pending and for the terminal Error.
	Set(id kernel.UUID, s order.Status)

	// Transition moves the status to the next one when the state machine allows it.
	Transition(id kernel.UUID, to order.Status) error

	// CompareAndSet moves from -> to only when the current status is from.
	// A different current status is an errs.IllegalStateError.
	CompareAndSet(id kernel.UUID, from, to order.Status) error

	// Delete forgets the id. Only used to roll back a failed creation.
	Delete(id kernel.UUID)

	// Snapshot copies the whole map.
	Snapshot() map[kernel.UUID]order.Status
}
