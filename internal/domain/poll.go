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
	"github.com/guildkit/backend/pkg/dateutil"
	"github.com/guildkit/backend/pkg/errorx"
	"github.com/guildkit/backend/pkg/pubsub"
	"github.com/guildkit/backend/pkg/xcontext"
)

const maxPollQuestionLen = 256

type PollDomain interface {
	Create(ctx context.Context, req *model.CreatePollRequest) (*model.CreatePollResponse, error)
	Vote(ctx context.Context, req *model.VotePollRequest) (*model.VotePollResponse, error)
	Close(ctx context.Context, req *model.ClosePollRequest) (*model.ClosePollResponse, error)
	GetList(ctx context.Context, req *model.GetListPollRequest) (*model.GetListPollResponse, error)
}

type pollDomain struct {
	pollRepo        repository.PollRepository
	guildConfigRepo repository.GuildConfigRepository
	emitter         eventEmitter
	locks           *entityLocks
	clock           clock.Clock
}

func NewPollDomain(
	pollRepo repository.PollRepository,
	guildConfigRepo repository.GuildConfigRepository,
	publisher pubsub.Publisher,
	clk clock.Clock,
) *pollDomain {
	return &pollDomain{
		pollRepo:        pollRepo,
		guildConfigRepo: guildConfigRepo,
		emitter:         eventEmitter{publisher: publisher},
		locks:           newEntityLocks(),
		clock:           clk,
	}
}

func (d *pollDomain) Create(
	ctx context.Context, req *model.CreatePollRequest,
) (*model.CreatePollResponse, error) {
	if req.Question == "" || len(req.Question) > maxPollQuestionLen {
		return nil, errorx.New(errorx.BadRequest, "Question must be between 1 and %d characters", maxPollQuestionLen)
	}

	if len(req.Options) < entity.MinPollOptions || len(req.Options) > entity.MaxPollOptions {
		return nil, errorx.New(errorx.BadRequest, "Require between %d and %d options",
			entity.MinPollOptions, entity.MaxPollOptions)
	}

	seen := map[string]bool{}
	for _, option := range req.Options {
		if option == "" {
			return nil, errorx.New(errorx.BadRequest, "Options cannot be empty")
		}

		if seen[option] {
			return nil, errorx.New(errorx.BadRequest, "Duplicated option %s", option)
		}
		seen[option] = true
	}

	now := d.clock.Now()
	poll := &entity.Poll{
		Base: entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Lifecycle: entity.Lifecycle{
			GuildID: req.GuildID,
			OwnerID: xcontext.RequestUserID(ctx),
			Version: 1,
		},
		Status:   entity.PollActive,
		Question: req.Question,
		Options:  req.Options,
		Votes:    entity.VoteMap{},
	}

	if req.Duration != "" {
		duration, err := dateutil.ParseDuration(req.Duration)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid duration %s", req.Duration)
		}

		poll.Deadline = sql.NullTime{Time: now.Add(duration), Valid: true}
	}

	if err := d.pollRepo.Create(ctx, poll); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create poll: %v", err)
		return nil, errorx.Unknown
	}

	created := event.PollCreatedEvent(convertPoll(poll))
	d.emitter.emit(ctx, poll.GuildID, &created)

	return &model.CreatePollResponse{ID: poll.ID}, nil
}

func (d *pollDomain) Vote(
	ctx context.Context, req *model.VotePollRequest,
) (*model.VotePollResponse, error) {
	voter := xcontext.RequestUserID(ctx)

	poll, _, err := applyWithRetry(ctx, d.locks, "poll", req.ID,
		d.pollRepo.GetByID, d.pollRepo.Update,
		func(p *entity.Poll) ([]event.Event, error) {
			return nil, p.Vote(voter, req.OptionIndex)
		})
	if err != nil {
		return nil, err
	}

	return &model.VotePollResponse{Poll: convertPoll(poll)}, nil
}

func (d *pollDomain) Close(
	ctx context.Context, req *model.ClosePollRequest,
) (*model.ClosePollResponse, error) {
	actor := xcontext.RequestUserID(ctx)

	poll, events, err := applyWithRetry(ctx, d.locks, "poll", req.ID,
		d.pollRepo.GetByID, d.pollRepo.Update,
		func(p *entity.Poll) ([]event.Event, error) {
			if err := d.canClose(ctx, p, actor, req.ActorRoles); err != nil {
				return nil, err
			}

			if p.Close() {
				return nil, errNoChange
			}

			return []event.Event{&event.PollClosedEvent{
				PollID:   p.ID,
				Question: p.Question,
				Options:  p.Options,
				Tally:    p.Tally(),
			}}, nil
		})
	if err != nil {
		return nil, err
	}

	d.emitter.emit(ctx, poll.GuildID, events...)
	return &model.ClosePollResponse{Poll: convertPoll(poll)}, nil
}

func (d *pollDomain) canClose(
	ctx context.Context, p *entity.Poll, actor int64, actorRoles []int64,
) error {
	if isSystemActor(ctx) || actor == p.OwnerID {
		return nil
	}

	cfg, err := d.guildConfigRepo.Get(ctx, p.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild config: %v", err)
		return errorx.Unknown
	}

	if !cfg.IsAdmin(actorRoles) {
		return errorx.New(errorx.PermissionDenied, "Only the owner or an admin can close this poll")
	}

	return nil
}

func (d *pollDomain) GetList(
	ctx context.Context, req *model.GetListPollRequest,
) (*model.GetListPollResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	polls, err := d.pollRepo.GetByGuild(ctx, req.GuildID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get polls: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListPollResponse{}
	for i := range polls {
		resp.Polls = append(resp.Polls, convertPoll(&polls[i]))
	}

	return resp, nil
}
