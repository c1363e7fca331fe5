package access

import (
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/core/ports"
	"pancakehouse/internal/pkg/errs"
)

// Authorizer checks ownership and privileges of an authenticated caller.
// Neither check mutates anything.
type Authorizer struct {
	ownership ports.OwnershipMap
}

func NewAuthorizer(ownership ports.OwnershipMap) Authorizer {
	return Authorizer{
		ownership: ownership,
	}
}

// CheckOwnership fails with kind errs.ErrOrderNotFound when the order has no
// owner (never created, completed or cancelled) and with errs.ErrNotOrderOwner
// when somebody else owns it.
func (a Authorizer) CheckOwnership(id kernel.UUID, caller user.User) error {
	owner, ok := a.ownership.Owner(id)
	if !ok {
		return errs.NewOrderNotFoundError(caller.Name(), id.String())
	}
	if owner != caller.Name() {
		return errs.NewNotOrderOwnerError(caller.Name(), id.String())
	}
	return nil
}

// CheckPrivilege fails with kind errs.ErrInsufficientPrivilege unless caller
// holds every code of required on resource.
func (a Authorizer) CheckPrivilege(caller user.User, resource user.Resource, required user.Privilege) error {
	if !caller.Can(resource, required) {
		return errs.NewInsufficientPrivilegeError(caller.Name(), string(resource))
	}
	return nil
}

// Authorize runs CheckOwnership then CheckPrivilege.
func (a Authorizer) Authorize(
	id kernel.UUID,
	caller user.User,
	resource user.Resource,
	required user.Privilege,
) error {
	if err := a.CheckOwnership(id, caller); err != nil {
		return err
	}
	return a.CheckPrivilege(caller, resource, required)
}
