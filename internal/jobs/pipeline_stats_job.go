package jobs

import (
	"context"
	"log/slog"

	"pancakehouse/internal/core/application/pipeline"

	"github.com/robfig/cron/v3"
)

// StatsSource is implemented by the kitchen and delivery pipelines.
type StatsSource interface {
	Stats() pipeline.Stats
}

// PipelineStatsJob logs queue depth and worker activity every ten seconds.
type PipelineStatsJob struct {
	sources []StatsSource
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewPipelineStatsJob(logger *slog.Logger, sources ...StatsSource) *PipelineStatsJob {
	return &PipelineStatsJob{
		sources: sources,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "pipeline_stats_job"),
	}
}

func (j *PipelineStatsJob) Name() string {
	return "pipeline stats"
}

func (j *PipelineStatsJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pipeline stats job started (running every 10 seconds)")
	return nil
}

func (j *PipelineStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pipeline stats job stopped")
}

func (j *PipelineStatsJob) Run(ctx context.Context) {
	for _, src := range j.sources {
		s := src.Stats()
		j.logger.InfoContext(ctx, "Pipeline stats",
			"pipeline", s.Name,
			"workers", s.Workers,
			"backlog", s.Backlog,
			"in_flight", s.InFlight,
			"processed", s.Processed,
		)
	}
}
