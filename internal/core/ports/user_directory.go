package ports

import (
	"pancakehouse/internal/core/domain/model/user"
)

// UserDirectory is the set of known users.
type UserDirectory interface {
	// Lookup returns the registered user, errs.ObjectNotFoundError when the name is unknown.
	Lookup(name string) (user.User, error)
}
