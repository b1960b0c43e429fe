package domain

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/internal/domain/notification/event"
	"github.com/guildkit/backend/internal/model"
	"github.com/guildkit/backend/internal/repository"
	"github.com/guildkit/backend/pkg/clock"
	"github.com/guildkit/backend/pkg/enum"
	"github.com/guildkit/backend/pkg/errorx"
	"github.com/guildkit/backend/pkg/pubsub"
	"github.com/guildkit/backend/pkg/xcontext"
)

type TicketDomain interface {
	Create(ctx context.Context, req *model.CreateTicketRequest) (*model.CreateTicketResponse, error)
	Claim(ctx context.Context, req *model.ClaimTicketRequest) (*model.ClaimTicketResponse, error)
	Close(ctx context.Context, req *model.CloseTicketRequest) (*model.CloseTicketResponse, error)
	SetPriority(ctx context.Context, req *model.SetTicketPriorityRequest) (*model.SetTicketPriorityResponse, error)
	GetList(ctx context.Context, req *model.GetListTicketRequest) (*model.GetListTicketResponse, error)
}

type ticketDomain struct {
	ticketRepo      repository.TicketRepository
	guildConfigRepo repository.GuildConfigRepository
	emitter         eventEmitter
	locks           *entityLocks
	clock           clock.Clock
}

func NewTicketDomain(
	ticketRepo repository.TicketRepository,
	guildConfigRepo repository.GuildConfigRepository,
	publisher pubsub.Publisher,
	clk clock.Clock,
) *ticketDomain {
	return &ticketDomain{
		ticketRepo:      ticketRepo,
		guildConfigRepo: guildConfigRepo,
		emitter:         eventEmitter{publisher: publisher},
		locks:           newEntityLocks(),
		clock:           clk,
	}
}

func (d *ticketDomain) Create(
	ctx context.Context, req *model.CreateTicketRequest,
) (*model.CreateTicketResponse, error) {
	if req.Category == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a category")
	}

	ownerID := xcontext.RequestUserID(ctx)
	cfg, err := d.guildConfigRepo.Get(ctx, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild config: %v", err)
		return nil, errorx.Unknown
	}

	if cfg.MaxTicketsPerUser > 0 {
		count, err := d.ticketRepo.CountOpenByOwner(ctx, req.GuildID, ownerID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count open tickets: %v", err)
			return nil, errorx.Unknown
		}

		if count >= int64(cfg.MaxTicketsPerUser) {
			return nil, errorx.New(errorx.Unavailable,
				"You already have %d open tickets", count)
		}
	}

	now := d.clock.Now()
	ticket := &entity.Ticket{
		Base: entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Lifecycle: entity.Lifecycle{
			GuildID: req.GuildID,
			OwnerID: ownerID,
			Version: 1,
		},
		Status:   entity.TicketOpen,
		Category: req.Category,
		Priority: entity.PriorityNormal,
	}

	if cfg.TicketAutoCloseHours > 0 {
		deadline := now.Add(time.Duration(cfg.TicketAutoCloseHours) * time.Hour)
		ticket.Deadline = sql.NullTime{Time: deadline, Valid: true}
	}

	if err := d.ticketRepo.Create(ctx, ticket); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create ticket: %v", err)
		return nil, errorx.Unknown
	}

	created := event.TicketCreatedEvent(convertTicket(ticket))
	d.emitter.emit(ctx, ticket.GuildID, &created)

	return &model.CreateTicketResponse{ID: ticket.ID}, nil
}

func (d *ticketDomain) Claim(
	ctx context.Context, req *model.ClaimTicketRequest,
) (*model.ClaimTicketResponse, error) {
	actor := xcontext.RequestUserID(ctx)

	ticket, events, err := applyWithRetry(ctx, d.locks, "ticket", req.ID,
		d.ticketRepo.GetByID, d.ticketRepo.Update,
		func(t *entity.Ticket) ([]event.Event, error) {
			if err := t.Claim(actor); err != nil {
				return nil, err
			}

			if t.Status == entity.TicketClaimed {
				return []event.Event{&event.TicketClaimedEvent{TicketID: t.ID, ClaimedBy: actor}}, nil
			}

			return []event.Event{&event.TicketReleasedEvent{TicketID: t.ID, ReleasedBy: actor}}, nil
		})
	if err != nil {
		return nil, err
	}

	d.emitter.emit(ctx, ticket.GuildID, events...)
	return &model.ClaimTicketResponse{Ticket: convertTicket(ticket)}, nil
}

func (d *ticketDomain) Close(
	ctx context.Context, req *model.CloseTicketRequest,
) (*model.CloseTicketResponse, error) {
	actor := xcontext.RequestUserID(ctx)
	now := d.clock.Now()

	ticket, events, err := applyWithRetry(ctx, d.locks, "ticket", req.ID,
		d.ticketRepo.GetByID, d.ticketRepo.Update,
		func(t *entity.Ticket) ([]event.Event, error) {
			if err := d.canManage(ctx, t, actor, req.ActorRoles); err != nil {
				return nil, err
			}

			if t.Close(actor, req.Reason, req.CloseType, now) {
				return nil, errNoChange
			}

			closed := event.TicketClosedEvent(convertTicket(t))
			return []event.Event{&closed}, nil
		})
	if err != nil {
		return nil, err
	}

	d.emitter.emit(ctx, ticket.GuildID, events...)
	return &model.CloseTicketResponse{Ticket: convertTicket(ticket)}, nil
}

func (d *ticketDomain) canManage(
	ctx context.Context, t *entity.Ticket, actor int64, actorRoles []int64,
) error {
	if isSystemActor(ctx) || actor == t.OwnerID {
		return nil
	}

	if t.ClaimedBy.Valid && t.ClaimedBy.Int64 == actor {
		return nil
	}

	cfg, err := d.guildConfigRepo.Get(ctx, t.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild config: %v", err)
		return errorx.Unknown
	}

	if !cfg.IsAdmin(actorRoles) {
		return errorx.New(errorx.PermissionDenied, "Only the owner or an admin can close this ticket")
	}

	return nil
}

func (d *ticketDomain) SetPriority(
	ctx context.Context, req *model.SetTicketPriorityRequest,
) (*model.SetTicketPriorityResponse, error) {
	priority, err := enum.ToEnum[entity.TicketPriority](req.Priority)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid priority %s", req.Priority)
	}

	actor := xcontext.RequestUserID(ctx)

	ticket, events, err := applyWithRetry(ctx, d.locks, "ticket", req.ID,
		d.ticketRepo.GetByID, d.ticketRepo.Update,
		func(t *entity.Ticket) ([]event.Event, error) {
			if err := d.canManage(ctx, t, actor, req.ActorRoles); err != nil {
				return nil, err
			}

			if t.Priority == priority {
				return nil, errNoChange
			}

			if err := t.SetPriority(priority); err != nil {
				return nil, err
			}

			return []event.Event{&event.TicketPriorityChangedEvent{
				TicketID: t.ID,
				Priority: string(priority),
			}}, nil
		})
	if err != nil {
		return nil, err
	}

	d.emitter.emit(ctx, ticket.GuildID, events...)
	return &model.SetTicketPriorityResponse{Ticket: convertTicket(ticket)}, nil
}

func (d *ticketDomain) GetList(
	ctx context.Context, req *model.GetListTicketRequest,
) (*model.GetListTicketResponse, error) {
	filter := repository.TicketFilter{Offset: req.Offset, Limit: req.Limit}
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.TicketStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = []entity.TicketStatus{status}
	}

	tickets, err := d.ticketRepo.GetList(ctx, req.GuildID, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListTicketResponse{}
	for i := range tickets {
		resp.Tickets = append(resp.Tickets, convertTicket(&tickets[i]))
	}

	return resp, nil
}
