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

// DrawGiveawaysCronJob scans for giveaways past their deadline, plus any
// left mid-draw by a crash, and drives the draw through the gateway.
type DrawGiveawaysCronJob struct {
	giveawayRepo repository.GiveawayRepository
	gateway      domain.GatewayDomain
	clock        clock.Clock
	interval     time.Duration
}

func NewDrawGiveawaysCronJob(
	giveawayRepo repository.GiveawayRepository,
	gateway domain.GatewayDomain,
	clk clock.Clock,
	interval time.Duration,
) *DrawGiveawaysCronJob {
	return &DrawGiveawaysCronJob{
		giveawayRepo: giveawayRepo,
		gateway:      gateway,
		clock:        clk,
		interval:     interval,
	}
}

func (job *DrawGiveawaysCronJob) Do(ctx context.Context) {
	giveaways, err := job.giveawayRepo.GetDue(ctx, job.clock.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot scan due giveaways: %v", err)
		return
	}

	reqs := make([]model.ApplyRequest, 0, len(giveaways))
	for _, giveaway := range giveaways {
		reqs = append(reqs, model.ApplyRequest{
			Kind:     domain.KindGiveaway,
			EntityID: giveaway.ID,
			Action:   domain.ActionDraw,
		})
	}

	dispatchExpiries(ctx, job.gateway, reqs)
}

func (job *DrawGiveawaysCronJob) RunNow() bool {
	return true
}

func (job *DrawGiveawaysCronJob) Next() time.Time {
	return job.clock.Now().Add(job.interval)
}
