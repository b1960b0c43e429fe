package entity

import (
	"database/sql"
	"time"

	"github.com/guildkit/backend/pkg/enum"
	"github.com/guildkit/backend/pkg/errorx"
)

type TicketStatus string

var (
	TicketOpen    = enum.New(TicketStatus("open"))
	TicketClaimed = enum.New(TicketStatus("claimed"))
	TicketClosed  = enum.New(TicketStatus("closed"))
)

type TicketPriority string

var (
	PriorityLow    = enum.New(TicketPriority("low"))
	PriorityNormal = enum.New(TicketPriority("normal"))
	PriorityHigh   = enum.New(TicketPriority("high"))
)

type Ticket struct {
	Base
	Lifecycle

	Status   TicketStatus
	Category string
	Priority TicketPriority

	ClaimedBy sql.NullInt64

	CloseReason string
	CloseType   string
	ClosedBy    sql.NullInt64
	ClosedAt    sql.NullTime
}

func (t *Ticket) IsTerminal() bool {
	return t.Status == TicketClosed
}

// Claim assigns the ticket to actor. A second claim by the current claimer
// releases the ticket back to open; a claim by anyone else while it is held
// is a conflict.
func (t *Ticket) Claim(actor int64) error {
	switch t.Status {
	case TicketOpen:
		t.Status = TicketClaimed
		t.ClaimedBy = sql.NullInt64{Int64: actor, Valid: true}
		return nil

	case TicketClaimed:
		if t.ClaimedBy.Valid && t.ClaimedBy.Int64 == actor {
			t.Status = TicketOpen
			t.ClaimedBy = sql.NullInt64{}
			return nil
		}

		return errorx.New(errorx.WrongState, "Ticket is already claimed by another user")

	default:
		return errorx.New(errorx.WrongState, "Cannot claim a closed ticket")
	}
}

// Close moves the ticket to closed and stamps who, when, and why. Closing an
// already closed ticket reports alreadyClosed with no state change, so
// duplicate close triggers are absorbed.
func (t *Ticket) Close(actor int64, reason, closeType string, now time.Time) (alreadyClosed bool) {
	if t.Status == TicketClosed {
		return true
	}

	t.Status = TicketClosed
	t.ClaimedBy = sql.NullInt64{}
	t.CloseReason = reason
	t.CloseType = closeType
	t.ClosedBy = sql.NullInt64{Int64: actor, Valid: true}
	t.ClosedAt = sql.NullTime{Time: now, Valid: true}
	return false
}

func (t *Ticket) SetPriority(priority TicketPriority) error {
	if t.Status == TicketClosed {
		return errorx.New(errorx.WrongState, "Cannot change priority of a closed ticket")
	}

	t.Priority = priority
	return nil
}
