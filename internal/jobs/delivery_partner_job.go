package jobs

import (
	"context"
	"errors"
	"log/slog"

	"pancakehouse/internal/core/application/usecases/delivery"
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DeliveryPartnerJob plays the external delivery partner. Every second it
// confirms each order parked in the handshake as delivered.
type DeliveryPartnerJob struct {
	desk    delivery.Desk
	partner user.User
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryPartnerJob creates the job. The partner calls the desk like any
// other client, so it needs read and update privileges on delivery.
func NewDeliveryPartnerJob(desk delivery.Desk, partner user.User, logger *slog.Logger) *DeliveryPartnerJob {
	return &DeliveryPartnerJob{
		desk:    desk,
		partner: partner,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delivery_partner_job"),
	}
}

func (j *DeliveryPartnerJob) Name() string {
	return "delivery partner"
}

func (j *DeliveryPartnerJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Delivery partner job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery partner job started (running every second)")
	return nil
}

// Stop waits for a running confirmation round to finish.
func (j *DeliveryPartnerJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivery partner job stopped")
}

// Run confirms every currently assigned order once.
func (j *DeliveryPartnerJob) Run(ctx context.Context) error {
	assigned, err := j.desk.ViewAssignedOrders(ctx, j.partner)
	if err != nil {
		return err
	}

	for _, id := range assigned {
		err = j.desk.ConfirmDelivery(ctx, j.partner, id)
		switch {
		case err == nil:
			j.logger.InfoContext(ctx, "Delivery confirmed by partner", "order_id", id.String())
		case errors.Is(err, errs.ErrIllegalState):
			// Timed out or confirmed elsewhere since the listing.
			j.logger.DebugContext(ctx, "Delivery no longer awaiting partner", "order_id", id.String(), "error", err)
		default:
			return err
		}
	}
	return nil
}
