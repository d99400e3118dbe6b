package jobs

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Schedules holds cron expressions with a seconds field. Empty values fall
// back to the job defaults.
type Schedules struct {
	RiderAssignment string
	OutboxRelay     string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	riderAssignmentJob *RiderAssignmentJob
	outboxRelayJob     *OutboxRelayJob
}

func NewJobManager(
	assignHandler riderAssigner,
	relayHandler outboxRelayer,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		riderAssignmentJob: NewRiderAssignmentJob(assignHandler, schedules.RiderAssignment, logger),
		outboxRelayJob:     NewOutboxRelayJob(relayHandler, schedules.OutboxRelay, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.riderAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start rider assignment job: %w", err)
	}

	if err := jm.outboxRelayJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.riderAssignmentJob.Stop()
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	return nil
}

// StopAll stops all jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
	jm.riderAssignmentJob.Stop()
}

func newCron(logger *slog.Logger) *cron.Cron {
	cronLogger := cronLogAdapter{logger: logger}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}

// cronLogAdapter routes cron's own logging to slog.
type cronLogAdapter struct {
	logger *slog.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error(msg, append(keysAndValues, "error", err)...)
}
