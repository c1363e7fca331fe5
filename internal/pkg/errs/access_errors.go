package errs

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAuthorizationFailed  = errors.New("authorization failed")

	// Kinds of authorization failure. An AuthorizationFailedError unwraps to
	// ErrAuthorizationFailed and to exactly one of these.
	ErrOrderNotFound         = errors.New("order not found")
	ErrNotOrderOwner         = errors.New("not authorized to access order")
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
)

// AuthenticationFailedError is returned for unset callers and callers unknown to the user directory.
type AuthenticationFailedError struct {
	User  string
	Cause error
}

func NewAuthenticationFailedError(user string) *AuthenticationFailedError {
	return &AuthenticationFailedError{User: user}
}

func NewAuthenticationFailedErrorWithCause(user string, cause error) *AuthenticationFailedError {
	return &AuthenticationFailedError{User: user, Cause: cause}
}

func (e *AuthenticationFailedError) Error() string {
	user := sanitize(e.User)
	if user == "" {
		user = "<unset>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrAuthenticationFailed, user, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrAuthenticationFailed, user)
}

func (e *AuthenticationFailedError) Unwrap() error {
	return ErrAuthenticationFailed
}

// AuthorizationFailedError is returned when an authenticated caller may not perform an action.
// Kind tells apart a missing order, a foreign order and a missing privilege.
type AuthorizationFailedError struct {
	Kind     error
	User     string
	Resource string
}

func NewOrderNotFoundError(user, orderID string) *AuthorizationFailedError {
	return &AuthorizationFailedError{Kind: ErrOrderNotFound, User: user, Resource: orderID}
}

func NewNotOrderOwnerError(user, orderID string) *AuthorizationFailedError {
	return &AuthorizationFailedError{Kind: ErrNotOrderOwner, User: user, Resource: orderID}
}

func NewInsufficientPrivilegeError(user, resource string) *AuthorizationFailedError {
	return &AuthorizationFailedError{Kind: ErrInsufficientPrivilege, User: user, Resource: resource}
}

func (e *AuthorizationFailedError) Error() string {
	return fmt.Sprintf("%s: %v (user: %s, resource: %s)",
		ErrAuthorizationFailed, e.Kind, sanitize(e.User), sanitize(e.Resource))
}

func (e *AuthorizationFailedError) Unwrap() []error {
	return []error{ErrAuthorizationFailed, e.Kind}
}
