package cron

import (
	"context"

	"github.com/guildkit/backend/internal/domain"
	"github.com/guildkit/backend/internal/model"
	"github.com/guildkit/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// dispatchExpiries drives one synthetic expire action per due entity through
// the gateway with a bounded fan-out. Entities are independent, so one
// failed or slow transition never stops the others; errors are logged and
// the entity is retried by a later scan.
func dispatchExpiries(ctx context.Context, gateway domain.GatewayDomain, reqs []model.ApplyRequest) {
	if len(reqs) == 0 {
		return
	}

	concurrency := xcontext.Configs(ctx).Scheduler.DispatchConcurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	eg := &errgroup.Group{}
	eg.SetLimit(concurrency)

	for i := range reqs {
		req := reqs[i]
		eg.Go(func() error {
			if _, err := gateway.Apply(ctx, &req); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot expire %s %s: %v", req.Kind, req.EntityID, err)
			}

			return nil
		})
	}

	eg.Wait()
}
