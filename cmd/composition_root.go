package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pancakehouse/api"
	httpin "pancakehouse/internal/adapters/in/http"
	"pancakehouse/internal/adapters/out/memory/orderrepo"
	"pancakehouse/internal/adapters/out/memory/ownershiprepo"
	"pancakehouse/internal/adapters/out/memory/userrepo"
	"pancakehouse/internal/adapters/out/notify"
	"pancakehouse/internal/core/application/pipeline"
	"pancakehouse/internal/core/application/usecases/access"
	"pancakehouse/internal/core/application/usecases/delivery"
	"pancakehouse/internal/core/application/usecases/kitchen"
	"pancakehouse/internal/core/application/usecases/ordering"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/menu"
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/core/domain/services"
	"pancakehouse/internal/core/ports"
	"pancakehouse/internal/jobs"

	"github.com/labstack/echo/v4"
)

// Notifier is a ports.Notifier holding a connection that must be released.
type Notifier interface {
	ports.Notifier
	Close() error
}

// CompositionRoot owns the shared state of the process: the stores, the two
// hand-off queues and the gates every entry point goes through.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	catalog   menu.Catalog
	orders    *orderrepo.OrderStore
	statuses  *orderrepo.StatusStore
	ownership *ownershiprepo.OwnershipMap
	signals   *delivery.Signals

	intake        *pipeline.Queue[kernel.UUID]
	deliveryQueue *pipeline.Queue[kernel.UUID]

	authenticator access.Authenticator
	authorizer    access.Authorizer
	notifier      Notifier
	protocol      delivery.Protocol

	kitchenCrew  user.User
	deliveryCrew user.User
}

func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	users := userrepo.DefaultUsers(cfg.KitchenPrincipal, cfg.DeliveryPrincipal)
	if cfg.UsersFile != "" {
		var err error
		if users, err = userrepo.LoadUsersFile(cfg.UsersFile); err != nil {
			return nil, err
		}
	}
	directory, err := userrepo.NewUserDirectory(users...)
	if err != nil {
		return nil, err
	}

	kitchenCrew, err := user.NewPrincipal(cfg.KitchenPrincipal)
	if err != nil {
		return nil, fmt.Errorf("kitchen principal: %w", err)
	}
	deliveryCrew, err := user.NewPrincipal(cfg.DeliveryPrincipal)
	if err != nil {
		return nil, fmt.Errorf("delivery principal: %w", err)
	}

	ownership := ownershiprepo.NewOwnershipMap()
	authenticator := access.NewAuthenticator(directory)
	authorizer := access.NewAuthorizer(ownership)

	// Every configured crew must be able to use its desk.
	for _, crew := range []struct {
		principal user.User
		resource  user.Resource
	}{
		{kitchenCrew, user.ResourceKitchen},
		{deliveryCrew, user.ResourceDelivery},
	} {
		registered, err := authenticator.Authenticate(crew.principal)
		if err != nil {
			return nil, err
		}
		if err = authorizer.CheckPrivilege(registered, crew.resource, user.Read|user.Update); err != nil {
			return nil, err
		}
	}

	var notifier Notifier = notify.NewLogNotifier(logger)
	if cfg.RabbitMQURL != "" {
		if notifier, err = notify.DialAMQPNotifier(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger); err != nil {
			return nil, err
		}
	}

	root := &CompositionRoot{
		cfg:           cfg,
		logger:        logger,
		catalog:       menu.NewCatalog(),
		orders:        orderrepo.NewOrderStore(),
		statuses:      orderrepo.NewStatusStore(),
		ownership:     ownership,
		signals:       delivery.NewSignals(),
		intake:        pipeline.NewQueue[kernel.UUID](cfg.KitchenQueueCapacity),
		deliveryQueue: pipeline.NewQueue[kernel.UUID](cfg.DeliveryQueueCapacity),
		authenticator: authenticator,
		authorizer:    authorizer,
		notifier:      notifier,
		kitchenCrew:   kitchenCrew,
		deliveryCrew:  deliveryCrew,
	}

	root.protocol, err = delivery.NewProtocol(delivery.ProtocolConfig{
		Name:         cfg.DeliveryProtocol,
		PollInterval: cfg.HandshakePollInterval,
		Timeout:      cfg.HandshakeTimeout,
	}, root.statuses, notifier, root.signals, logger)
	if err != nil {
		return nil, errors.Join(err, notifier.Close())
	}

	return root, nil
}

func (c *CompositionRoot) CreateOrderWorkflow() ordering.Workflow {
	return ordering.NewAuthenticatedWorkflow(c.authenticator,
		ordering.NewAuthorizedWorkflow(c.authorizer,
			ordering.NewService(c.orders, c.statuses, c.ownership, c.catalog, c.intake, c.logger)))
}

func (c *CompositionRoot) CreateKitchenDesk() kitchen.Desk {
	return kitchen.NewGatedDesk(c.authenticator, c.authorizer,
		kitchen.NewService(c.orders, c.statuses, c.deliveryQueue, c.logger))
}

func (c *CompositionRoot) CreateDeliveryDesk() delivery.Desk {
	return delivery.NewGatedDesk(c.authenticator, c.authorizer,
		delivery.NewService(c.orders, c.statuses, c.protocol, c.signals, c.logger))
}

func (c *CompositionRoot) CreateKitchenPipeline() *pipeline.KitchenPipeline {
	return pipeline.NewKitchenPipeline(c.intake, c.cfg.KitchenWorkers, c.CreateKitchenDesk(), c.kitchenCrew,
		services.NewPancakePreparer(c.catalog, c.cfg.PreparationTime), c.logger)
}

func (c *CompositionRoot) CreateDeliveryPipeline() *pipeline.DeliveryPipeline {
	return pipeline.NewDeliveryPipeline(c.deliveryQueue, c.cfg.DeliveryWorkers, c.CreateDeliveryDesk(),
		c.deliveryCrew, c.logger)
}

// CreateJobManager schedules the stats job and, for the handshake protocol,
// the simulated delivery partner.
func (c *CompositionRoot) CreateJobManager(sources ...jobs.StatsSource) *jobs.JobManager {
	scheduled := []jobs.Job{jobs.NewPipelineStatsJob(c.logger, sources...)}
	if c.cfg.PartnerSimulation && c.protocol.Name() == delivery.ProtocolHandshake {
		scheduled = append(scheduled, jobs.NewDeliveryPartnerJob(c.CreateDeliveryDesk(), c.deliveryCrew, c.logger))
	}
	return jobs.NewJobManager(c.logger, scheduled...)
}

func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	server := httpin.NewServer(c.authenticator, c.CreateOrderWorkflow(), c.CreateKitchenDesk(),
		c.CreateDeliveryDesk(), c.logger)
	return httpin.NewRouter(server, doc)
}

// Close releases the notifier connection.
func (c *CompositionRoot) Close(ctx context.Context) {
	if err := c.notifier.Close(); err != nil {
		c.logger.ErrorContext(ctx, "Failed to close notifier", "error", err)
	}
}
