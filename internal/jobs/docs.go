// Package jobs provides scheduled background tasks for the pancake house.
//
// Jobs are built on github.com/robfig/cron/v3 with seconds resolution.
//
// # Available Jobs
//
//  1. DeliveryPartnerJob - runs every second and confirms orders waiting in the
//     delivery partner handshake, standing in for the real partner
//  2. PipelineStatsJob - runs every 10 seconds and logs queue depth and worker
//     activity of the kitchen and delivery pipelines
//
// # Usage
//
//	jobManager := jobs.NewJobManager(logger,
//		jobs.NewPipelineStatsJob(logger, kitchen, delivery),
//		jobs.NewDeliveryPartnerJob(deliveryDesk, partner, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - The partner job ignores orders that stopped waiting between listing and
//     confirming them (timed out, or confirmed through the API)
//   - Failed job starts stop any already running jobs
package jobs
