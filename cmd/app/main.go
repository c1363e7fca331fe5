package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pancakehouse/cmd"
	"pancakehouse/internal/core/application/pipeline"
	"pancakehouse/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	e, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kitchen := app.CreateKitchenPipeline()
	delivery := app.CreateDeliveryPipeline()
	kitchen.Start(ctx)
	delivery.Start(ctx)

	jobManager := app.CreateJobManager(kitchen, delivery)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	serverErr := startWebServer(e, configs.HTTPPort)
	logger.InfoContext(ctx, "Pancake house started", "port", configs.HTTPPort,
		"protocol", configs.DeliveryProtocol, "kitchen_workers", configs.KitchenWorkers,
		"delivery_workers", configs.DeliveryWorkers)

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err = <-serverErr:
		logger.Error("HTTP server stopped", "error", err)
	}

	shutdown(app, jobManager, e, kitchen, delivery, configs, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := cmd.LoadConfig(os.LookupEnv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return configs
}

func startWebServer(e *echo.Echo, port string) <-chan error {
	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	return serverErr
}

// shutdown stops intake before the pools: jobs and HTTP first, then the
// kitchen so its last hand-offs still reach the delivery queue, then delivery.
func shutdown(
	app *cmd.CompositionRoot,
	jobManager *jobs.JobManager,
	e *echo.Echo,
	kitchen *pipeline.KitchenPipeline,
	delivery *pipeline.DeliveryPipeline,
	configs cmd.Config,
	logger *slog.Logger,
) {
	ctx, cancel := context.WithTimeout(context.Background(), configs.ShutdownGracePeriod)
	defer cancel()

	jobManager.StopAll()

	if err := e.Shutdown(ctx); err != nil {
		logger.ErrorContext(ctx, "HTTP server shutdown failed", "error", err)
	}
	if err := kitchen.Shutdown(configs.ShutdownGracePeriod); err != nil {
		logger.ErrorContext(ctx, "Kitchen shutdown incomplete", "error", err)
	}
	if err := delivery.Shutdown(configs.ShutdownGracePeriod); err != nil {
		logger.ErrorContext(ctx, "Delivery shutdown incomplete", "error", err)
	}

	app.Close(ctx)
	logger.Info("Pancake house stopped")
}
