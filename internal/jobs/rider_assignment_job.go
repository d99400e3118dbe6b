package jobs

import (
	"context"
	"log/slog"

	"stockway/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	DefaultRiderAssignmentSchedule = "*/10 * * * * *"
	DefaultRiderAssignmentBatch    = 20
)

type riderAssigner interface {
	Handle(ctx context.Context, cmd commands.AutoAssignRidersCommand) (int, error)
}

// RiderAssignmentJob runs the automatic nearest-rider assignment.
type RiderAssignmentJob struct {
	handler   riderAssigner
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewRiderAssignmentJob(handler riderAssigner, schedule string, logger *slog.Logger) *RiderAssignmentJob {
	if schedule == "" {
		schedule = DefaultRiderAssignmentSchedule
	}
	logger = logger.With("component", "rider_assignment_job")
	return &RiderAssignmentJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: DefaultRiderAssignmentBatch,
		cron:      newCron(logger),
		logger:    logger,
	}
}

func (j *RiderAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Rider assignment job started", "schedule", j.schedule)
	return nil
}

func (j *RiderAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Rider assignment job stopped")
}

func (j *RiderAssignmentJob) run(ctx context.Context) {
	cmd, err := commands.NewAutoAssignRidersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid rider assignment command", "error", err)
		return
	}

	assigned, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Rider assignment job failed", "error", err)
		return
	}
	if assigned > 0 {
		j.logger.InfoContext(ctx, "Riders assigned", "count", assigned)
	}
}
