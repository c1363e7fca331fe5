// Package ports defines the contracts between the order fulfillment core and
// its infrastructure: stores, the ownership map, the user directory, queues and
// notifiers. The in-memory adapters implement them for a single process.
package ports

import (
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
)

// OrderStore holds the order records of live orders, keyed by order id.
//
// Every method is atomic for the single key it touches. Operations spanning
// the OrderStore and the StatusStore are not atomic as a unit.
type OrderStore interface {
	// Insert adds a new order. An existing record with the same id is an
	// errs.IllegalStateError.
	Insert(o *order.Order) error

	// Get returns a copy of the record, errs.ObjectNotFoundError when absent.
	Get(id kernel.UUID) (*order.Order, error)

	// Update runs fn on a copy of the record and stores the copy when fn
	// succeeds. Concurrent updates of the same order are serialized; the
	// record is left untouched when fn returns an error.
	//
	// Example:
	//   err := store.Update(id, func(o *order.Order) error {
	//       return o.AddPancakes(items)
	//   })
	Update(id kernel.UUID, fn func(o *order.Order) error) error

	// Remove deletes the record and returns it, errs.ObjectNotFoundError when absent.
	Remove(id kernel.UUID) (*order.Order, error)

	// Snapshot returns copies of all records in no particular order.
	Snapshot() []*order.Order
}
