package domain

import (
	"context"

	"github.com/guildkit/backend/internal/model"
	"github.com/guildkit/backend/pkg/errorx"
)

// Entity kinds accepted by the gateway.
const (
	KindTicket   = "ticket"
	KindPoll     = "poll"
	KindGiveaway = "giveaway"
	KindReminder = "reminder"
)

// Actions accepted by the gateway. The scheduler reuses "close", "draw",
// and "deliver" as its synthetic expire actions with no acting user.
const (
	ActionClaim       = "claim"
	ActionClose       = "close"
	ActionSetPriority = "set_priority"
	ActionVote        = "vote"
	ActionEnter       = "enter"
	ActionDraw        = "draw"
	ActionReroll      = "reroll"
	ActionDeliver     = "deliver"
	ActionCancel      = "cancel"
)

// GatewayDomain is the single mutation entry point for already-created
// entities: every user action and every scheduler expiry goes through
// Apply, which dispatches to the kind's transition logic.
type GatewayDomain interface {
	Apply(ctx context.Context, req *model.ApplyRequest) (*model.ApplyResponse, error)
}

type gatewayDomain struct {
	ticketDomain   TicketDomain
	pollDomain     PollDomain
	giveawayDomain GiveawayDomain
	reminderDomain ReminderDomain
}

func NewGatewayDomain(
	ticketDomain TicketDomain,
	pollDomain PollDomain,
	giveawayDomain GiveawayDomain,
	reminderDomain ReminderDomain,
) *gatewayDomain {
	return &gatewayDomain{
		ticketDomain:   ticketDomain,
		pollDomain:     pollDomain,
		giveawayDomain: giveawayDomain,
		reminderDomain: reminderDomain,
	}
}

func (d *gatewayDomain) Apply(
	ctx context.Context, req *model.ApplyRequest,
) (*model.ApplyResponse, error) {
	switch req.Kind {
	case KindTicket:
		return d.applyTicket(ctx, req)
	case KindPoll:
		return d.applyPoll(ctx, req)
	case KindGiveaway:
		return d.applyGiveaway(ctx, req)
	case KindReminder:
		return d.applyReminder(ctx, req)
	default:
		return nil, errorx.New(errorx.BadRequest, "Unknown entity kind %s", req.Kind)
	}
}

func (d *gatewayDomain) applyTicket(
	ctx context.Context, req *model.ApplyRequest,
) (*model.ApplyResponse, error) {
	switch req.Action {
	case ActionClaim:
		resp, err := d.ticketDomain.Claim(ctx, &model.ClaimTicketRequest{ID: req.EntityID})
		if err != nil {
			return nil, err
		}

		return &model.ApplyResponse{Data: resp}, nil

	case ActionClose:
		resp, err := d.ticketDomain.Close(ctx, &model.CloseTicketRequest{
			ID:         req.EntityID,
			Reason:     req.Reason,
			CloseType:  req.CloseType,
			ActorRoles: req.ActorRoles,
		})
		if err != nil {
			return nil, err
		}

		return &model.ApplyResponse{Data: resp}, nil

	case ActionSetPriority:
		resp, err := d.ticketDomain.SetPriority(ctx, &model.SetTicketPriorityRequest{
			ID:         req.EntityID,
			Priority:   req.Priority,
			ActorRoles: req.ActorRoles,
		})
		if err != nil {
			return nil, err
		}

		return &model.ApplyResponse{Data: resp}, nil
	}

	return nil, errorx.New(errorx.BadRequest, "Unsupported action %s for ticket", req.Action)
}

func (d *gatewayDomain) applyPoll(
	ctx context.Context, req *model.ApplyRequest,
) (*model.ApplyResponse, error) {
	switch req.Action {
	case ActionVote:
		resp, err := d.pollDomain.Vote(ctx, &model.VotePollRequest{
			ID:          req.EntityID,
			OptionIndex: req.OptionIndex,
		})
		if err != nil {
			return nil, err
		}

		return &model.ApplyResponse{Data: resp}, nil

	case ActionClose:
		resp, err := d.pollDomain.Close(ctx, &model.ClosePollRequest{
			ID:         req.EntityID,
			ActorRoles: req.ActorRoles,
		})
		if err != nil {
			return nil, err
		}

		return &model.ApplyResponse{Data: resp}, nil
	}

	return nil, errorx.New(errorx.BadRequest, "Unsupported action %s for poll", req.Action)
}

func (d *gatewayDomain) applyGiveaway(
	ctx context.Context, req *model.ApplyRequest,
) (*model.ApplyResponse, error) {
	switch req.Action {
	case ActionEnter:
		resp, err := d.giveawayDomain.Enter(ctx, &model.EnterGiveawayRequest{
			ID:         req.EntityID,
			ActorRoles: req.ActorRoles,
		})
		if err != nil {
			return nil, err
		}

		return &model.ApplyResponse{Data: resp}, nil

	case ActionDraw:
		resp, err := d.giveawayDomain.End(ctx, &model.EndGiveawayRequest{
			ID:         req.EntityID,
			ActorRoles: req.ActorRoles,
		})
		if err != nil {
			return nil, err
		}

		return &model.ApplyResponse{Data: resp}, nil

	case ActionReroll:
		resp, err := d.giveawayDomain.Reroll(ctx, &model.RerollGiveawayRequest{
			ID:         req.EntityID,
			ActorRoles: req.ActorRoles,
		})
		if err != nil {
			return nil, err
		}

		return &model.ApplyResponse{Data: resp}, nil
	}

	return nil, errorx.New(errorx.BadRequest, "Unsupported action %s for giveaway", req.Action)
}

func (d *gatewayDomain) applyReminder(
	ctx context.Context, req *model.ApplyRequest,
) (*model.ApplyResponse, error) {
	switch req.Action {
	case ActionDeliver:
		if err := d.reminderDomain.Deliver(ctx, req.EntityID); err != nil {
			return nil, err
		}

		return &model.ApplyResponse{}, nil

	case ActionCancel:
		resp, err := d.reminderDomain.Cancel(ctx, &model.CancelReminderRequest{ID: req.EntityID})
		if err != nil {
			return nil, err
		}

		return &model.ApplyResponse{Data: resp}, nil
	}

	return nil, errorx.New(errorx.BadRequest, "Unsupported action %s for reminder", req.Action)
}
