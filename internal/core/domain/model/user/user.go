// Package user models the principals calling the order, kitchen and delivery APIs.
package user

import (
	"errors"
	"maps"
	"strings"

	"pancakehouse/internal/pkg/errs"
	"pancakehouse/internal/pkg/guard"
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or NewPrincipal constructor")
	ErrNameIsRequired       = errs.NewValueIsRequiredError("name")
)

// User is a named principal holding privileges per resource. Identity is the name
// alone: two users with the same name are the same user whatever privileges they carry.
type User struct {
	name       string
	privileges map[Resource]Privilege
	guard      guard.ConstructorGuard
}

// NewUser creates a principal with the given privileges. The map is copied.
func NewUser(name string, privileges map[Resource]Privilege) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrNameIsRequired
	}

	for r := range privileges {
		if err := r.Validate(); err != nil {
			return User{}, err
		}
	}

	return User{
		name:       name,
		privileges: maps.Clone(privileges),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewPrincipal creates a privilege-less principal carrying only an identity, as
// received from a transport. The authentication gate swaps it for the registered user.
func NewPrincipal(name string) (User, error) {
	return NewUser(name, nil)
}

// Validate fails for the zero value, i.e. an unset caller.
func (u User) Validate() error {
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// Name returns the identity of the user.
func (u User) Name() string {
	return u.name
}

// Privileges returns the privilege set held on resource.
func (u User) Privileges(resource Resource) Privilege {
	return u.privileges[resource]
}

// Can reports whether the user holds all codes of required on resource.
func (u User) Can(resource Resource, required Privilege) bool {
	return u.privileges[resource].Contains(required)
}

// IsEqual compares identities.
func (u User) IsEqual(other User) bool {
	return u.name == other.name
}

func (u User) String() string {
	return u.name
}
