// Package access holds the two gates every API entry point passes through:
// authentication against the user directory, then authorization by order
// ownership and by resource privilege.
package access

import (
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/core/ports"
	"pancakehouse/internal/pkg/errs"
)

// Authenticator resolves callers against the known users.
type Authenticator struct {
	directory ports.UserDirectory
}

func NewAuthenticator(directory ports.UserDirectory) Authenticator {
	return Authenticator{
		directory: directory,
	}
}

// Authenticate fails with errs.AuthenticationFailedError for an unset caller or
// a name the directory does not know. On success it returns the registered
// user, whose privileges are the ones every later check uses.
func (a Authenticator) Authenticate(caller user.User) (user.User, error) {
	if err := caller.Validate(); err != nil {
		return user.User{}, errs.NewAuthenticationFailedErrorWithCause("", err)
	}

	registered, err := a.directory.Lookup(caller.Name())
	if err != nil {
		return user.User{}, errs.NewAuthenticationFailedErrorWithCause(caller.Name(), err)
	}

	return registered, nil
}
