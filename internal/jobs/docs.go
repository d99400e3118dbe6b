// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled):
//
//  1. RiderAssignmentJob pairs unassigned deliveries with the nearest
//     available rider of their warehouse.
//  2. OutboxRelayJob publishes domain events recorded in the outbox to the
//     configured brokers.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(assignHandler, relayHandler, jobs.Schedules{}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A run that overlaps the previous one is skipped.
package jobs
