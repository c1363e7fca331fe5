package ports

import (
	"pancakehouse/internal/core/domain/model/kernel"
)

// OwnershipMap binds an order to the user who created it for as long as the
// order is reachable through the order API. Complete and Cancel release it.
type OwnershipMap interface {
	// Assign records owner for id. An existing binding is an errs.IllegalStateError.
	Assign(id kernel.UUID, owner string) error

	// Owner returns the owner name and whether a binding exists.
	Owner(id kernel.UUID) (string, bool)

	// Release removes the binding and reports whether there was one.
	Release(id kernel.UUID) bool
}
