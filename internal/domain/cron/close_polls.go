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

// ClosePollsCronJob scans for active polls whose deadline has passed and
// closes them through the gateway. Due-ness is a pure function of stored
// state, so polls that expired while the process was down are picked up by
// the first scan after restart.
type ClosePollsCronJob struct {
	pollRepo repository.PollRepository
	gateway  domain.GatewayDomain
	clock    clock.Clock
	interval time.Duration
}

func NewClosePollsCronJob(
	pollRepo repository.PollRepository,
	gateway domain.GatewayDomain,
	clk clock.Clock,
	interval time.Duration,
) *ClosePollsCronJob {
	return &ClosePollsCronJob{
		pollRepo: pollRepo,
		gateway:  gateway,
		clock:    clk,
		interval: interval,
	}
}

func (job *ClosePollsCronJob) Do(ctx context.Context) {
	polls, err := job.pollRepo.GetDue(ctx, job.clock.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot scan due polls: %v", err)
		return
	}

	reqs := make([]model.ApplyRequest, 0, len(polls))
	for _, poll := range polls {
		reqs = append(reqs, model.ApplyRequest{
			Kind:     domain.KindPoll,
			EntityID: poll.ID,
			Action:   domain.ActionClose,
		})
	}

	dispatchExpiries(ctx, job.gateway, reqs)
}

func (job *ClosePollsCronJob) RunNow() bool {
	return true
}

func (job *ClosePollsCronJob) Next() time.Time {
	return job.clock.Now().Add(job.interval)
}
