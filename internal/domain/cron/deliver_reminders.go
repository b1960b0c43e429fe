package cron

import (
	"context"
	"time"

	"github.com/guildkit/backend/internal/domain"
	"github.com/guildkit/backend/internal/model"
	"github.com/guildkit/backend/internal/repository"
	"github.com/guildkit/backend/pkg/clock"
	"github.com/guildkit/backend/pkg/xcontext"
)

// DeliverRemindersCronJob delivers reminders whose deliver-at time has
// passed. Delivery is idempotent, so a reminder scanned by two overlapping
// cycles is still delivered once.
type DeliverRemindersCronJob struct {
	reminderRepo repository.ReminderRepository
	gateway      domain.GatewayDomain
	clock        clock.Clock
	interval     time.Duration
}

func NewDeliverRemindersCronJob(
	reminderRepo repository.ReminderRepository,
	gateway domain.GatewayDomain,
	clk clock.Clock,
	interval time.Duration,
) *DeliverRemindersCronJob {
	return &DeliverRemindersCronJob{
		reminderRepo: reminderRepo,
		gateway:      gateway,
		clock:        clk,
		interval:     interval,
	}
}

func (job *DeliverRemindersCronJob) Do(ctx context.Context) {
	reminders, err := job.reminderRepo.GetDue(ctx, job.clock.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot scan due reminders: %v", err)
		return
	}

	reqs := make([]model.ApplyRequest, 0, len(reminders))
	for _, reminder := range reminders {
		reqs = append(reqs, model.ApplyRequest{
			Kind:     domain.KindReminder,
			EntityID: reminder.ID,
			Action:   domain.ActionDeliver,
		})
	}

	dispatchExpiries(ctx, job.gateway, reqs)
}

func (job *DeliverRemindersCronJob) RunNow() bool {
	return true
}

func (job *DeliverRemindersCronJob) Next() time.Time {
	return job.clock.Now().Add(job.interval)
}
