package ordering

import (
	"context"

	"pancakehouse/internal/core/application/usecases/access"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/domain/model/user"
)

// AuthorizedWorkflow checks ownership, then the privilege on the "order"
// resource, before delegating. Caller must already be authenticated.
//
// Required privileges:
//   - CreateOrder, AddPancakes: Create
//   - OrderSummary, Status: Read
//   - Complete, Cancel: Update
type AuthorizedWorkflow struct {
	authorizer access.Authorizer
	next       Workflow
}

var _ Workflow = AuthorizedWorkflow{}

func NewAuthorizedWorkflow(authorizer access.Authorizer, next Workflow) AuthorizedWorkflow {
	return AuthorizedWorkflow{
		authorizer: authorizer,
		next:       next,
	}
}

// CreateOrder has no order to own yet, so only the privilege is checked.
func (w AuthorizedWorkflow) CreateOrder(ctx context.Context, caller user.User, info kernel.DeliveryInfo) (kernel.UUID, error) {
	if err := w.authorizer.CheckPrivilege(caller, user.ResourceOrder, user.Create); err != nil {
		return kernel.UUID{}, err
	}
	return w.next.CreateOrder(ctx, caller, info)
}

func (w AuthorizedWorkflow) AddPancakes(ctx context.Context, caller user.User, id kernel.UUID, items order.Items) error {
	if err := w.authorizer.Authorize(id, caller, user.ResourceOrder, user.Create); err != nil {
		return err
	}
	return w.next.AddPancakes(ctx, caller, id, items)
}

func (w AuthorizedWorkflow) OrderSummary(ctx context.Context, caller user.User, id kernel.UUID) (order.Items, error) {
	if err := w.authorizer.Authorize(id, caller, user.ResourceOrder, user.Read); err != nil {
		return nil, err
	}
	return w.next.OrderSummary(ctx, caller, id)
}

func (w AuthorizedWorkflow) Status(ctx context.Context, caller user.User, id kernel.UUID) (order.Status, error) {
	if err := w.authorizer.Authorize(id, caller, user.ResourceOrder, user.Read); err != nil {
		return order.Unknown, err
	}
	return w.next.Status(ctx, caller, id)
}

func (w AuthorizedWorkflow) Complete(ctx context.Context, caller user.User, id kernel.UUID) error {
	if err := w.authorizer.Authorize(id, caller, user.ResourceOrder, user.Update); err != nil {
		return err
	}
	return w.next.Complete(ctx, caller, id)
}

func (w AuthorizedWorkflow) Cancel(ctx context.Context, caller user.User, id kernel.UUID) error {
	if err := w.authorizer.Authorize(id, caller, user.ResourceOrder, user.Update); err != nil {
		return err
	}
	return w.next.Cancel(ctx, caller, id)
}
