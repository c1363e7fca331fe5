package ordering

import (
	"context"

	"pancakehouse/internal/core/application/usecases/access"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/domain/model/user"
)

// AuthenticatedWorkflow is the outermost layer. It replaces the caller with the
// registered user before delegating, so inner layers see directory privileges.
type AuthenticatedWorkflow struct {
	authenticator access.Authenticator
	next          Workflow
}

var _ Workflow = AuthenticatedWorkflow{}

func NewAuthenticatedWorkflow(authenticator access.Authenticator, next Workflow) AuthenticatedWorkflow {
	return AuthenticatedWorkflow{
		authenticator: authenticator,
		next:          next,
	}
}

func (w AuthenticatedWorkflow) CreateOrder(ctx context.Context, caller user.User, info kernel.DeliveryInfo) (kernel.UUID, error) {
	u, err := w.authenticator.Authenticate(caller)
	if err != nil {
		return kernel.UUID{}, err
	}
	return w.next.CreateOrder(ctx, u, info)
}

func (w AuthenticatedWorkflow) AddPancakes(ctx context.Context, caller user.User, id kernel.UUID, items order.Items) error {
	u, err := w.authenticator.Authenticate(caller)
	if err != nil {
		return err
	}
	return w.next.AddPancakes(ctx, u, id, items)
}

func (w AuthenticatedWorkflow) OrderSummary(ctx context.Context, caller user.User, id kernel.UUID) (order.Items, error) {
	u, err := w.authenticator.Authenticate(caller)
	if err != nil {
		return nil, err
	}
	return w.next.OrderSummary(ctx, u, id)
}

func (w AuthenticatedWorkflow) Status(ctx context.Context, caller user.User, id kernel.UUID) (order.Status, error) {
	u, err := w.authenticator.Authenticate(caller)
	if err != nil {
		return order.Unknown, err
	}
	return w.next.Status(ctx, u, id)
}

func (w AuthenticatedWorkflow) Complete(ctx context.Context, caller user.User, id kernel.UUID) error {
	u, err := w.authenticator.Authenticate(caller)
	if err != nil {
		return err
	}
	return w.next.Complete(ctx, u, id)
}

func (w AuthenticatedWorkflow) Cancel(ctx context.Context, caller user.User, id kernel.UUID) error {
	u, err := w.authenticator.Authenticate(caller)
	if err != nil {
		return err
	}
	return w.next.Cancel(ctx, u, id)
}
