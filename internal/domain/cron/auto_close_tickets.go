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

// AutoCloseTicketsCronJob closes tickets whose auto-close deadline has
// passed. Only tickets created in guilds with a configured auto-close window
// carry a deadline at all.
type AutoCloseTicketsCronJob struct {
	ticketRepo repository.TicketRepository
	gateway    domain.GatewayDomain
	clock      clock.Clock
	interval   time.Duration
}

func NewAutoCloseTicketsCronJob(
	ticketRepo repository.TicketRepository,
	gateway domain.GatewayDomain,
	clk clock.Clock,
	interval time.Duration,
) *AutoCloseTicketsCronJob {
	return &AutoCloseTicketsCronJob{
		ticketRepo: ticketRepo,
		gateway:    gateway,
		clock:      clk,
		interval:   interval,
	}
}

func (job *AutoCloseTicketsCronJob) Do(ctx context.Context) {
	tickets, err := job.ticketRepo.GetDue(ctx, job.clock.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot scan due tickets: %v", err)
		return
	}

	reqs := make([]model.ApplyRequest, 0, len(tickets))
	for _, ticket := range tickets {
		reqs = append(reqs, model.ApplyRequest{
			Kind:      domain.KindTicket,
			EntityID:  ticket.ID,
			Action:    domain.ActionClose,
			Reason:    "Automatically closed due to inactivity",
			CloseType: "auto",
		})
	}

	dispatchExpiries(ctx, job.gateway, reqs)
}

func (job *AutoCloseTicketsCronJob) RunNow() bool {
	return true
}

func (job *AutoCloseTicketsCronJob) Next() time.Time {
	return job.clock.Now().Add(job.interval)
}
