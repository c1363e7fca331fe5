package kitchen

import (
	"context"

	"pancakehouse/internal/core/application/usecases/access"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/domain/model/user"
)

// GatedDesk authenticates the caller and checks the "kitchen" privilege:
// Read to view, Update for every change of an order.
type GatedDesk struct {
	authenticator access.Authenticator
	authorizer    access.Authorizer
	next          Desk
}

var _ Desk = GatedDesk{}

func NewGatedDesk(authenticator access.Authenticator, authorizer access.Authorizer, next Desk) GatedDesk {
	return GatedDesk{
		authenticator: authenticator,
		authorizer:    authorizer,
		next:          next,
	}
}

func (d GatedDesk) ViewOrders(ctx context.Context, caller user.User) ([]order.Ticket, error) {
	u, err := d.gate(caller, user.Read)
	if err != nil {
		return nil, err
	}
	return d.next.ViewOrders(ctx, u)
}

func (d GatedDesk) AcceptOrder(ctx context.Context, caller user.User, id kernel.UUID) (*order.Order, error) {
	u, err := d.gate(caller, user.Update)
	if err != nil {
		return nil, err
	}
	return d.next.AcceptOrder(ctx, u, id)
}

func (d GatedDesk) NotifyOrderCompletion(ctx context.Context, caller user.User, id kernel.UUID) error {
	u, err := d.gate(caller, user.Update)
	if err != nil {
		return err
	}
	return d.next.NotifyOrderCompletion(ctx, u, id)
}

func (d GatedDesk) ReportFailure(ctx context.Context, caller user.User, id kernel.UUID, cause error) error {
	u, err := d.gate(caller, user.Update)
	if err != nil {
		return err
	}
	return d.next.ReportFailure(ctx, u, id, cause)
}

func (d GatedDesk) gate(caller user.User, required user.Privilege) (user.User, error) {
	u, err := d.authenticator.Authenticate(caller)
	if err != nil {
		return user.User{}, err
	}
	if err = d.authorizer.CheckPrivilege(u, user.ResourceKitchen, required); err != nil {
		return user.User{}, err
	}
	return u, nil
}
