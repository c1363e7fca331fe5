package delivery

import (
	"context"

	"pancakehouse/internal/core/application/usecases/access"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/domain/model/user"
)

// GatedDesk authenticates the caller and checks the "delivery" privilege:
// Read for the views, Update for everything else.
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

func (d GatedDesk) ViewCompletedOrders(ctx context.Context, caller user.User) ([]order.Ticket, error) {
	u, err := d.gate(caller, user.Read)
	if err != nil {
		return nil, err
	}
	return d.next.ViewCompletedOrders(ctx, u)
}

func (d GatedDesk) ViewAssignedOrders(ctx context.Context, caller user.User) ([]kernel.UUID, error) {
	u, err := d.gate(caller, user.Read)
	if err != nil {
		return nil, err
	}
	return d.next.ViewAssignedOrders(ctx, u)
}

func (d GatedDesk) AcceptOrder(ctx context.Context, caller user.User, id kernel.UUID) (*order.Order, error) {
	u, err := d.gate(caller, user.Update)
	if err != nil {
		return nil, err
	}
	return d.next.AcceptOrder(ctx, u, id)
}

func (d GatedDesk) SendForTheDelivery(ctx context.Context, caller user.User, o *order.Order) error {
	u, err := d.gate(caller, user.Update)
	if err != nil {
		return err
	}
	return d.next.SendForTheDelivery(ctx, u, o)
}

func (d GatedDesk) ConfirmDelivery(ctx context.Context, caller user.User, id kernel.UUID) error {
	u, err := d.gate(caller, user.Update)
	if err != nil {
		return err
	}
	return d.next.ConfirmDelivery(ctx, u, id)
}

func (d GatedDesk) gate(caller user.User, required user.Privilege) (user.User, error) {
	u, err := d.authenticator.Authenticate(caller)
	if err != nil {
		return user.User{}, err
	}
	if err = d.authorizer.CheckPrivilege(u, user.ResourceDelivery, required); err != nil {
		return user.User{}, err
	}
	return u, nil
}
