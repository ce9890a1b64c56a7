package jobs

import (
	"context"
	"log/slog"

	"shipment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DriverStandingJob periodically re-applies the unpaid-commission
// deactivation policy. The policy also runs inline after deliveries and
// payment reviews; the sweep is the safety net for drivers whose debt was
// accumulated while those inline checks failed.
type DriverStandingJob struct {
	handler commands.SweepDriverStandingHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDriverStandingJob creates a new job for sweeping driver standing.
func NewDriverStandingJob(handler commands.SweepDriverStandingHandler, logger *slog.Logger) *DriverStandingJob {
	return &DriverStandingJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "driver_standing_job"),
	}
}

// Start begins the driver standing sweep to run every minute.
func (j *DriverStandingJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSweepDriverStandingCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Driver standing sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Driver standing job started (running every minute)")
	return nil
}

// Stop stops the driver standing sweep.
func (j *DriverStandingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Driver standing job stopped")
}
