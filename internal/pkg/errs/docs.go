// Package errs provides standardized error types for the pancake house application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: for when an object cannot be found in a store
//   - AuthenticationFailedError: for unknown or unset callers
//   - AuthorizationFailedError: for callers that may not touch an order or resource
//   - IllegalStateError: for operations that do not fit the current state of an order
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels and with errors.As
// when they need the details, e.g. the Kind of an authorization failure.
package errs
