package domain

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/guildkit/backend/internal/domain/notification/event"
	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/internal/model"
	"github.com/guildkit/backend/internal/repository"
	"github.com/guildkit/backend/pkg/clock"
	"github.com/guildkit/backend/pkg/crypto"
	"github.com/guildkit/backend/pkg/dateutil"
	"github.com/guildkit/backend/pkg/errorx"
	"github.com/guildkit/backend/pkg/pubsub"
	"github.com/guildkit/backend/pkg/xcontext"
)

type GiveawayDomain interface {
	Create(ctx context.Context, req *model.CreateGiveawayRequest) (*model.CreateGiveawayResponse, error)
	Enter(ctx context.Context, req *model.EnterGiveawayRequest) (*model.EnterGiveawayResponse, error)
	End(ctx context.Context, req *model.EndGiveawayRequest) (*model.EndGiveawayResponse, error)
	Reroll(ctx context.Context, req *model.RerollGiveawayRequest) (*model.RerollGiveawayResponse, error)
	GetList(ctx context.Context, req *model.GetListGiveawayRequest) (*model.GetListGiveawayResponse, error)
}

type giveawayDomain struct {
	giveawayRepo    repository.GiveawayRepository
	guildConfigRepo repository.GuildConfigRepository
	emitter         eventEmitter
	locks           *entityLocks
	clock           clock.Clock
}

func NewGiveawayDomain(
	giveawayRepo repository.GiveawayRepository,
	guildConfigRepo repository.GuildConfigRepository,
	publisher pubsub.Publisher,
	clk clock.Clock,
) *giveawayDomain {
	return &giveawayDomain{
		giveawayRepo:    giveawayRepo,
		guildConfigRepo: guildConfigRepo,
		emitter:         eventEmitter{publisher: publisher},
		locks:           newEntityLocks(),
		clock:           clk,
	}
}

func (d *giveawayDomain) Create(
	ctx context.Context, req *model.CreateGiveawayRequest,
) (*model.CreateGiveawayResponse, error) {
	if req.Prize == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a prize")
	}

	if req.WinnerCount < 1 {
		return nil, errorx.New(errorx.BadRequest, "Winner count must be at least 1")
	}

	duration, err := dateutil.ParseDuration(req.Duration)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid duration %s", req.Duration)
	}

	cfg, err := d.guildConfigRepo.Get(ctx, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild config: %v", err)
		return nil, errorx.Unknown
	}

	now := d.clock.Now()
	giveaway := &entity.Giveaway{
		Base: entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Lifecycle: entity.Lifecycle{
			GuildID:  req.GuildID,
			OwnerID:  xcontext.RequestUserID(ctx),
			Deadline: sql.NullTime{Time: now.Add(duration), Valid: true},
			Version:  1,
		},
		Status:      entity.GiveawayActive,
		Prize:       req.Prize,
		WinnerCount: req.WinnerCount,
	}

	// Role requirements fall back to the guild defaults when the request
	// leaves them unset.
	switch {
	case req.RequiredRole != 0:
		giveaway.RequiredRole = sql.NullInt64{Int64: req.RequiredRole, Valid: true}
		giveaway.BypassRoles = req.BypassRoles
	case cfg.GiveawayRequiredRole.Valid:
		giveaway.RequiredRole = cfg.GiveawayRequiredRole
		giveaway.BypassRoles = cfg.GiveawayBypassRoles
	}

	if err := d.giveawayRepo.Create(ctx, giveaway); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create giveaway: %v", err)
		return nil, errorx.Unknown
	}

	created := event.GiveawayCreatedEvent(convertGiveaway(giveaway))
	d.emitter.emit(ctx, giveaway.GuildID, &created)

	return &model.CreateGiveawayResponse{ID: giveaway.ID}, nil
}

func (d *giveawayDomain) Enter(
	ctx context.Context, req *model.EnterGiveawayRequest,
) (*model.EnterGiveawayResponse, error) {
	actor := xcontext.RequestUserID(ctx)

	var entered bool
	giveaway, _, err := applyWithRetry(ctx, d.locks, "giveaway", req.ID,
		d.giveawayRepo.GetByID, d.giveawayRepo.Update,
		func(g *entity.Giveaway) ([]event.Event, error) {
			if !g.Eligible(req.ActorRoles) {
				return nil, errorx.New(errorx.NotEligible,
					"You need role %d to enter this giveaway", g.RequiredRole.Int64)
			}

			var err error
			entered, err = g.Enter(actor)
			return nil, err
		})
	if err != nil {
		return nil, err
	}

	return &model.EnterGiveawayResponse{
		Entered:    entered,
		EntryCount: len(giveaway.Entries),
	}, nil
}

func (d *giveawayDomain) End(
	ctx context.Context, req *model.EndGiveawayRequest,
) (*model.EndGiveawayResponse, error) {
	actor := xcontext.RequestUserID(ctx)

	// Phase one: win the active-to-drawing transition. When a manual end
	// races the deadline scan, the version condition lets exactly one
	// caller through; the other observes the non-active status here. A
	// giveaway found already drawing (a draw interrupted by a crash) skips
	// straight to phase two.
	var alreadyEnded bool
	giveaway, _, err := applyWithRetry(ctx, d.locks, "giveaway", req.ID,
		d.giveawayRepo.GetByID, d.giveawayRepo.Update,
		func(g *entity.Giveaway) ([]event.Event, error) {
			if err := d.canEnd(ctx, g, actor, req.ActorRoles); err != nil {
				return nil, err
			}

			switch g.Status {
			case entity.GiveawayClosed:
				alreadyEnded = true
				return nil, errNoChange
			case entity.GiveawayDrawing:
				return nil, errNoChange
			default:
				return nil, g.BeginDraw()
			}
		})
	if err != nil {
		return nil, err
	}

	if alreadyEnded {
		return &model.EndGiveawayResponse{Giveaway: convertGiveaway(giveaway)}, nil
	}

	return d.draw(ctx, req.ID, false)
}

// draw runs phase two: pick winners from the recorded entries and close.
// Winners are only ever persisted together with the closed status, so a
// crash between the phases redraws rather than double-draws.
func (d *giveawayDomain) draw(
	ctx context.Context, id string, reroll bool,
) (*model.EndGiveawayResponse, error) {
	giveaway, events, err := applyWithRetry(ctx, d.locks, "giveaway", id,
		d.giveawayRepo.GetByID, d.giveawayRepo.Update,
		func(g *entity.Giveaway) ([]event.Event, error) {
			if g.IsTerminal() {
				return nil, errNoChange
			}

			winners := crypto.Sample([]int64(g.Entries), g.WinnerCount)
			if err := g.CompleteDraw(winners); err != nil {
				return nil, err
			}

			if reroll {
				return []event.Event{&event.GiveawayRerolledEvent{
					GiveawayID: g.ID,
					Prize:      g.Prize,
					Winners:    winners,
				}}, nil
			}

			return []event.Event{&event.GiveawayEndedEvent{
				GiveawayID: g.ID,
				Prize:      g.Prize,
				Winners:    winners,
				EntryCount: len(g.Entries),
			}}, nil
		})
	if err != nil {
		return nil, err
	}

	d.emitter.emit(ctx, giveaway.GuildID, events...)
	return &model.EndGiveawayResponse{Giveaway: convertGiveaway(giveaway)}, nil
}

func (d *giveawayDomain) canEnd(
	ctx context.Context, g *entity.Giveaway, actor int64, actorRoles []int64,
) error {
	if isSystemActor(ctx) || actor == g.OwnerID {
		return nil
	}

	cfg, err := d.guildConfigRepo.Get(ctx, g.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild config: %v", err)
		return errorx.Unknown
	}

	if !cfg.IsAdmin(actorRoles) {
		return errorx.New(errorx.PermissionDenied, "Only the owner or an admin can end this giveaway")
	}

	return nil
}

func (d *giveawayDomain) Reroll(
	ctx context.Context, req *model.RerollGiveawayRequest,
) (*model.RerollGiveawayResponse, error) {
	actor := xcontext.RequestUserID(ctx)

	giveaway, err := d.giveawayRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found giveaway")
	}

	cfg, err := d.guildConfigRepo.Get(ctx, giveaway.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild config: %v", err)
		return nil, errorx.Unknown
	}

	if !isSystemActor(ctx) && actor != giveaway.OwnerID && !cfg.IsAdmin(req.ActorRoles) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the owner or an admin can reroll")
	}

	_, _, err = applyWithRetry(ctx, d.locks, "giveaway", req.ID,
		d.giveawayRepo.GetByID, d.giveawayRepo.Update,
		func(g *entity.Giveaway) ([]event.Event, error) {
			return nil, g.Reopen()
		})
	if err != nil {
		return nil, err
	}

	resp, err := d.draw(ctx, req.ID, true)
	if err != nil {
		return nil, err
	}

	return &model.RerollGiveawayResponse{Giveaway: resp.Giveaway}, nil
}

func (d *giveawayDomain) GetList(
	ctx context.Context, req *model.GetListGiveawayRequest,
) (*model.GetListGiveawayResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	giveaways, err := d.giveawayRepo.GetByGuild(ctx, req.GuildID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get giveaways: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListGiveawayResponse{}
	for i := range giveaways {
		resp.Giveaways = append(resp.Giveaways, convertGiveaway(&giveaways[i]))
	}

	return resp, nil
}
