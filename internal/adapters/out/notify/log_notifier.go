// Package notify delivers owner notifications about delivery progress, either
// to the structured log or to a RabbitMQ exchange.
package notify

import (
	"context"
	"log/slog"

	"pancakehouse/internal/core/domain/model/kernel"
)

// LogNotifier writes notifications to the log. It is the default when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With("component", "log_notifier"),
	}
}

func (n *LogNotifier) NotifyPartnerAssigned(ctx context.Context, owner string, orderID kernel.UUID) error {
	n.logger.InfoContext(ctx, "Delivery partner assigned", "owner", owner, "order_id", orderID.String())
	return nil
}

func (n *LogNotifier) NotifyDelivered(ctx context.Context, owner string, orderID kernel.UUID) error {
	n.logger.InfoContext(ctx, "Order delivered", "owner", owner, "order_id", orderID.String())
	return nil
}

// Close is a no-op.
func (n *LogNotifier) Close() error {
	return nil
}
