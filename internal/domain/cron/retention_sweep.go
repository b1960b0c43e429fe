package cron

import (
	"context"
	"time"

	"github.com/guildkit/backend/internal/repository"
	"github.com/guildkit/backend/pkg/clock"
	"github.com/guildkit/backend/pkg/xcontext"
)

// RetentionSweepCronJob purges terminal entities older than the configured
// retention window. A zero window keeps everything forever. The sweep never
// touches non-terminal entities, so it has no bearing on lifecycle
// correctness.
type RetentionSweepCronJob struct {
	ticketRepo   repository.TicketRepository
	pollRepo     repository.PollRepository
	giveawayRepo repository.GiveawayRepository
	reminderRepo repository.ReminderRepository
	clock        clock.Clock
	interval     time.Duration
	window       time.Duration
}

func NewRetentionSweepCronJob(
	ticketRepo repository.TicketRepository,
	pollRepo repository.PollRepository,
	giveawayRepo repository.GiveawayRepository,
	reminderRepo repository.ReminderRepository,
	clk clock.Clock,
	interval, window time.Duration,
) *RetentionSweepCronJob {
	return &RetentionSweepCronJob{
		ticketRepo:   ticketRepo,
		pollRepo:     pollRepo,
		giveawayRepo: giveawayRepo,
		reminderRepo: reminderRepo,
		clock:        clk,
		interval:     interval,
		window:       window,
	}
}

func (job *RetentionSweepCronJob) Do(ctx context.Context) {
	if job.window <= 0 {
		return
	}

	cutoff := job.clock.Now().Add(-job.window)

	if n, err := job.ticketRepo.DeleteClosedBefore(ctx, cutoff); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot purge closed tickets: %v", err)
	} else if n > 0 {
		xcontext.Logger(ctx).Infof("Purged %d closed tickets", n)
	}

	if n, err := job.pollRepo.DeleteClosedBefore(ctx, cutoff); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot purge closed polls: %v", err)
	} else if n > 0 {
		xcontext.Logger(ctx).Infof("Purged %d closed polls", n)
	}

	if n, err := job.giveawayRepo.DeleteClosedBefore(ctx, cutoff); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot purge closed giveaways: %v", err)
	} else if n > 0 {
		xcontext.Logger(ctx).Infof("Purged %d closed giveaways", n)
	}

	if n, err := job.reminderRepo.DeleteTerminalBefore(ctx, cutoff); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot purge finished reminders: %v", err)
	} else if n > 0 {
		xcontext.Logger(ctx).Infof("Purged %d finished reminders", n)
	}
}

func (job *RetentionSweepCronJob) RunNow() bool {
	return false
}

func (job *RetentionSweepCronJob) Next() time.Time {
	return job.clock.Now().Add(job.interval)
}
