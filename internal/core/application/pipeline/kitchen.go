package pipeline

import (
	"context"
	"log/slog"
	"time"

	"pancakehouse/internal/core/application/usecases/kitchen"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/core/domain/services"
)

// KitchenPipeline drains the kitchen intake queue. For every order a worker
// accepts it, prepares each pancake and notifies completion, which hands the
// order to the delivery queue. Workers act as crew through the gated desk.
type KitchenPipeline struct {
	desk     kitchen.Desk
	crew     user.User
	preparer services.PancakePreparer
	pool     *Pool[kernel.UUID]
	logger   *slog.Logger
}

func NewKitchenPipeline(
	intake *Queue[kernel.UUID],
	workers int,
	desk kitchen.Desk,
	crew user.User,
	preparer services.PancakePreparer,
	logger *slog.Logger,
) *KitchenPipeline {
	k := &KitchenPipeline{
		desk:     desk,
		crew:     crew,
		preparer: preparer,
		logger:   logger.With("component", "kitchen_pipeline"),
	}
	k.pool = NewPool("kitchen", intake, workers, k.process, logger)
	return k
}

func (k *KitchenPipeline) Start(ctx context.Context) {
	k.pool.Start(ctx)
}

func (k *KitchenPipeline) Shutdown(grace time.Duration) error {
	return k.pool.Shutdown(grace)
}

func (k *KitchenPipeline) Stats() Stats {
	return k.pool.Stats()
}

func (k *KitchenPipeline) process(ctx context.Context, id kernel.UUID) {
	o, err := k.desk.AcceptOrder(ctx, k.crew, id)
	if err != nil {
		k.logger.ErrorContext(ctx, "Order not accepted", "order_id", id.String(), "error", err)
		return
	}

	prepared, err := k.preparer.Prepare(ctx, o.Items())
	if err != nil {
		if ctx.Err() != nil {
			// Shutdown: the order stays InProgress.
			k.logger.WarnContext(ctx, "Preparation interrupted", "order_id", id.String(), "prepared", len(prepared))
			return
		}
		if reportErr := k.desk.ReportFailure(ctx, k.crew, id, err); reportErr != nil {
			k.logger.ErrorContext(ctx, "Failure not reported", "order_id", id.String(), "error", reportErr)
		}
		return
	}

	for _, p := range prepared {
		k.logger.DebugContext(ctx, "Pancake prepared", "order_id", id.String(),
			"pancake", string(p.Recipe.Pancake), "seq", p.Seq, "description", p.Recipe.Description())
	}

	if err = k.desk.NotifyOrderCompletion(ctx, k.crew, id); err != nil {
		k.logger.ErrorContext(ctx, "Order not handed to delivery", "order_id", id.String(), "error", err)
		return
	}

	k.logger.InfoContext(ctx, "Order prepared", "order_id", id.String(), "pancakes", len(prepared))
}
