package entity

import (
	"database/sql"
	"time"

	"github.com/guildkit/backend/pkg/enum"
	"github.com/guildkit/backend/pkg/errorx"
)

type ReminderStatus string

var (
	ReminderPending   = enum.New(ReminderStatus("pending"))
	ReminderDelivered = enum.New(ReminderStatus("delivered"))
	ReminderCanceled  = enum.New(ReminderStatus("canceled"))
)

const MaxReminderMessageLen = 1000

type Reminder struct {
	Base
	Lifecycle

	Status    ReminderStatus
	Message   string
	ChannelID sql.NullInt64

	DeliveredAt sql.NullTime
}

func (r *Reminder) IsTerminal() bool {
	return r.Status == ReminderDelivered || r.Status == ReminderCanceled
}

// Deliver marks the reminder delivered. A reminder that already reached a
// terminal state reports alreadyDone with no state change, so overlapping
// scan windows never deliver twice.
func (r *Reminder) Deliver(now time.Time) (alreadyDone bool) {
	if r.IsTerminal() {
		return true
	}

	r.Status = ReminderDelivered
	r.DeliveredAt = sql.NullTime{Time: now, Valid: true}
	return false
}

func (r *Reminder) Cancel() error {
	if r.IsTerminal() {
		return errorx.New(errorx.WrongState, "This reminder is already %s", r.Status)
	}

	r.Status = ReminderCanceled
	return nil
}
