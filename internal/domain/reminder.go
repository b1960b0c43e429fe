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

type ReminderDomain interface {
	Create(ctx context.Context, req *model.CreateReminderRequest) (*model.CreateReminderResponse, error)
	Cancel(ctx context.Context, req *model.CancelReminderRequest) (*model.CancelReminderResponse, error)
	GetList(ctx context.Context, req *model.GetListReminderRequest) (*model.GetListReminderResponse, error)

	// Deliver is the scheduler-driven terminal transition. It is safe to
	// call more than once for the same reminder.
	Deliver(ctx context.Context, id string) error
}

type reminderDomain struct {
	reminderRepo repository.ReminderRepository
	emitter      eventEmitter
	locks        *entityLocks
	clock        clock.Clock
}

func NewReminderDomain(
	reminderRepo repository.ReminderRepository,
	publisher pubsub.Publisher,
	clk clock.Clock,
) *reminderDomain {
	return &reminderDomain{
		reminderRepo: reminderRepo,
		emitter:      eventEmitter{publisher: publisher},
		locks:        newEntityLocks(),
		clock:        clk,
	}
}

func (d *reminderDomain) Create(
	ctx context.Context, req *model.CreateReminderRequest,
) (*model.CreateReminderResponse, error) {
	if req.Message == "" || len(req.Message) > entity.MaxReminderMessageLen {
		return nil, errorx.New(errorx.BadRequest,
			"Message must be between 1 and %d characters", entity.MaxReminderMessageLen)
	}

	duration, err := dateutil.ParseDuration(req.Duration)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid duration %s", req.Duration)
	}

	now := d.clock.Now()
	reminder := &entity.Reminder{
		Base: entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Lifecycle: entity.Lifecycle{
			GuildID:  req.GuildID,
			OwnerID:  xcontext.RequestUserID(ctx),
			Deadline: sql.NullTime{Time: now.Add(duration), Valid: true},
			Version:  1,
		},
		Status:  entity.ReminderPending,
		Message: req.Message,
	}

	if req.ChannelID != 0 {
		reminder.ChannelID = sql.NullInt64{Int64: req.ChannelID, Valid: true}
	}

	if err := d.reminderRepo.Create(ctx, reminder); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reminder: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateReminderResponse{
		ID:        reminder.ID,
		DeliverAt: formatNullTime(reminder.Deadline),
	}, nil
}

func (d *reminderDomain) Cancel(
	ctx context.Context, req *model.CancelReminderRequest,
) (*model.CancelReminderResponse, error) {
	actor := xcontext.RequestUserID(ctx)

	_, _, err := applyWithRetry(ctx, d.locks, "reminder", req.ID,
		d.reminderRepo.GetByID, d.reminderRepo.Update,
		func(r *entity.Reminder) ([]event.Event, error) {
			if !isSystemActor(ctx) && actor != r.OwnerID {
				return nil, errorx.New(errorx.PermissionDenied, "Only the owner can cancel a reminder")
			}

			return nil, r.Cancel()
		})
	if err != nil {
		return nil, err
	}

	return &model.CancelReminderResponse{}, nil
}

func (d *reminderDomain) Deliver(ctx context.Context, id string) error {
	now := d.clock.Now()

	reminder, events, err := applyWithRetry(ctx, d.locks, "reminder", id,
		d.reminderRepo.GetByID, d.reminderRepo.Update,
		func(r *entity.Reminder) ([]event.Event, error) {
			if r.Deliver(now) {
				return nil, errNoChange
			}

			return []event.Event{&event.ReminderDueEvent{
				ReminderID: r.ID,
				OwnerID:    r.OwnerID,
				ChannelID:  r.ChannelID.Int64,
				Message:    r.Message,
			}}, nil
		})
	if err != nil {
		return err
	}

	d.emitter.emit(ctx, reminder.GuildID, events...)
	return nil
}

func (d *reminderDomain) GetList(
	ctx context.Context, req *model.GetListReminderRequest,
) (*model.GetListReminderResponse, error) {
	reminders, err := d.reminderRepo.GetByOwner(ctx, req.GuildID, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reminders: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListReminderResponse{}
	for i := range reminders {
		resp.Reminders = append(resp.Reminders, convertReminder(&reminders[i]))
	}

	return resp, nil
}
