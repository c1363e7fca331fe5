package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pancakehouse/internal/core/application/usecases/delivery"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/user"
)

// DeliveryPipeline drains the delivery queue: accept, then send for the delivery.
type DeliveryPipeline struct {
	desk   delivery.Desk
	crew   user.User
	pool   *Pool[kernel.UUID]
	logger *slog.Logger
}

func NewDeliveryPipeline(
	queue *Queue[kernel.UUID],
	workers int,
	desk delivery.Desk,
	crew user.User,
	logger *slog.Logger,
) *DeliveryPipeline {
	d := &DeliveryPipeline{
		desk:   desk,
		crew:   crew,
		logger: logger.With("component", "delivery_pipeline"),
	}
	d.pool = NewPool("delivery", queue, workers, d.process, logger)
	return d
}

func (d *DeliveryPipeline) Start(ctx context.Context) {
	d.pool.Start(ctx)
}

func (d *DeliveryPipeline) Shutdown(grace time.Duration) error {
	return d.pool.Shutdown(grace)
}

func (d *DeliveryPipeline) Stats() Stats {
	return d.pool.Stats()
}

func (d *DeliveryPipeline) process(ctx context.Context, id kernel.UUID) {
	o, err := d.desk.AcceptOrder(ctx, d.crew, id)
	if err != nil {
		d.logger.ErrorContext(ctx, "Order not accepted", "order_id", id.String(), "error", err)
		return
	}

	err = d.desk.SendForTheDelivery(ctx, d.crew, o)
	switch {
	case errors.Is(err, delivery.ErrDeliveryInterrupted):
		d.logger.InfoContext(ctx, "Delivery interrupted by shutdown", "order_id", id.String())
	case err != nil:
		d.logger.ErrorContext(ctx, "Delivery failed", "order_id", id.String(), "error", err)
	}
}
