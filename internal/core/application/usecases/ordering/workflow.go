// Package ordering is the order workflow: the operations a customer performs on
// an order before it is handed to the kitchen.
//
// The workflow is composed as a chain of components sharing the Workflow interface:
//
//	ordering.NewAuthenticatedWorkflow(authenticator,
//	    ordering.NewAuthorizedWorkflow(authorizer,
//	        ordering.NewService(...)))
//
// The outer layer resolves the caller, the middle layer checks ownership and
// privileges, and Service mutates the stores. A failing layer stops the chain,
// so a rejected call never mutates anything.
package ordering

import (
	"context"

	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/domain/model/user"
)

// Workflow is the capability every layer of the chain implements.
type Workflow interface {
	// CreateOrder opens a Pending order owned by caller.
	CreateOrder(ctx context.Context, caller user.User, info kernel.DeliveryInfo) (kernel.UUID, error)

	// AddPancakes merges items into a Pending order, summing quantities per pancake.
	AddPancakes(ctx context.Context, caller user.User, id kernel.UUID, items order.Items) error

	// OrderSummary returns a copy of the pancakes ordered so far.
	OrderSummary(ctx context.Context, caller user.User, id kernel.UUID) (order.Items, error)

	// Status returns the current status.
	Status(ctx context.Context, caller user.User, id kernel.UUID) (order.Status, error)

	// Complete checks the order out to the kitchen and releases ownership.
	Complete(ctx context.Context, caller user.User, id kernel.UUID) error

	// Cancel drops a Pending order and releases ownership.
	Cancel(ctx context.Context, caller user.User, id kernel.UUID) error
}
