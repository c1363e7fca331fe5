// Package guard holds the constructor guard embedded by value objects, commands
// and aggregates so that zero values fail validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. Embed it in a struct,
// set it with NewConstructorGuard inside the constructor and call Validate from the
// struct's own Validate method:
//
//	type DeliveryInfo struct {
//	    room  int
//	    guard guard.ConstructorGuard
//	}
//
//	func (d DeliveryInfo) Validate() error {
//	    return d.guard.Validate(ErrDeliveryInfoIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// for a zero-value guard and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
