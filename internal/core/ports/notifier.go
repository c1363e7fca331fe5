package ports

import (
	"context"

	"pancakehouse/internal/core/domain/model/kernel"
)

// Notifier tells the owner of an order about delivery progress.
// Notification failures never fail the delivery itself.
type Notifier interface {
	NotifyPartnerAssigned(ctx context.Context, owner string, orderID kernel.UUID) error
	NotifyDelivered(ctx context.Context, owner string, orderID kernel.UUID) error
}
