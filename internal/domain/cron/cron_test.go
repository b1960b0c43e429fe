package cron

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/guildkit/backend/internal/domain"
	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/internal/model"
	"github.com/guildkit/backend/internal/repository"
	"github.com/guildkit/backend/pkg/testutil"
	"github.com/guildkit/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

type cronTestEnv struct {
	ctx       context.Context
	clock     *testutil.MockClock
	publisher *testutil.MockPublisher

	ticketRepo   repository.TicketRepository
	pollRepo     repository.PollRepository
	giveawayRepo repository.GiveawayRepository
	reminderRepo repository.ReminderRepository

	ticketDomain   domain.TicketDomain
	pollDomain     domain.PollDomain
	giveawayDomain domain.GiveawayDomain
	reminderDomain domain.ReminderDomain
	gateway        domain.GatewayDomain
}

func newCronTestEnv(userID int64) *cronTestEnv {
	env := &cronTestEnv{
		ctx:       testutil.MockContextWithUserID(userID),
		clock:     testutil.NewMockClock(time.Now()),
		publisher: &testutil.MockPublisher{},

		ticketRepo:   repository.NewTicketRepository(),
		pollRepo:     repository.NewPollRepository(),
		giveawayRepo: repository.NewGiveawayRepository(),
		reminderRepo: repository.NewReminderRepository(),
	}
	testutil.CreateFixtureDb(env.ctx)

	guildConfigRepo := repository.NewGuildConfigRepository(nil)
	env.ticketDomain = domain.NewTicketDomain(env.ticketRepo, guildConfigRepo, env.publisher, env.clock)
	env.pollDomain = domain.NewPollDomain(env.pollRepo, guildConfigRepo, env.publisher, env.clock)
	env.giveawayDomain = domain.NewGiveawayDomain(env.giveawayRepo, guildConfigRepo, env.publisher, env.clock)
	env.reminderDomain = domain.NewReminderDomain(env.reminderRepo, env.publisher, env.clock)
	env.gateway = domain.NewGatewayDomain(
		env.ticketDomain, env.pollDomain, env.giveawayDomain, env.reminderDomain)

	return env
}

// systemCtx is the context the scheduler runs under: no request user.
func (env *cronTestEnv) systemCtx() context.Context {
	return xcontext.WithRequestUserID(env.ctx, 0)
}

func TestDeliverRemindersCronJob(t *testing.T) {
	env := newCronTestEnv(42)
	job := NewDeliverRemindersCronJob(env.reminderRepo, env.gateway, env.clock, 30*time.Second)

	created, err := env.reminderDomain.Create(env.ctx, &model.CreateReminderRequest{
		GuildID:  testutil.Guild1ID,
		Message:  "water the plants",
		Duration: "2h",
	})
	require.NoError(t, err)

	// Not due yet.
	job.Do(env.systemCtx())
	require.Empty(t, env.publisher.Packs)

	env.clock.Forward(3 * time.Hour)
	job.Do(env.systemCtx())
	require.Len(t, env.publisher.Packs, 1)

	var result entity.Reminder
	require.NoError(t, xcontext.DB(env.ctx).Take(&result, "id=?", created.ID).Error)
	require.Equal(t, entity.ReminderDelivered, result.Status)

	// A second scan over the same window delivers nothing new.
	job.Do(env.systemCtx())
	require.Len(t, env.publisher.Packs, 1)
}

func TestAutoCloseTicketsCronJob(t *testing.T) {
	env := newCronTestEnv(42)
	job := NewAutoCloseTicketsCronJob(env.ticketRepo, env.gateway, env.clock, 30*time.Second)

	cfg := testutil.Guild1Config
	cfg.TicketAutoCloseHours = 24
	require.NoError(t, repository.NewGuildConfigRepository(nil).Upsert(env.ctx, &cfg))

	created, err := env.ticketDomain.Create(env.ctx, &model.CreateTicketRequest{
		GuildID:  testutil.Guild1ID,
		Category: "support",
	})
	require.NoError(t, err)

	job.Do(env.systemCtx())

	var result entity.Ticket
	require.NoError(t, xcontext.DB(env.ctx).Take(&result, "id=?", created.ID).Error)
	require.Equal(t, entity.TicketOpen, result.Status)

	env.clock.Forward(25 * time.Hour)
	job.Do(env.systemCtx())

	require.NoError(t, xcontext.DB(env.ctx).Take(&result, "id=?", created.ID).Error)
	require.Equal(t, entity.TicketClosed, result.Status)
	require.Equal(t, "auto", result.CloseType)
	require.Equal(t, "Automatically closed due to inactivity", result.CloseReason)
	require.Zero(t, result.ClosedBy.Int64)

	// Rescanning after the close finds nothing due.
	version := result.Version
	job.Do(env.systemCtx())
	require.NoError(t, xcontext.DB(env.ctx).Take(&result, "id=?", created.ID).Error)
	require.Equal(t, version, result.Version)
}

func TestClosePollsCronJob(t *testing.T) {
	env := newCronTestEnv(42)
	job := NewClosePollsCronJob(env.pollRepo, env.gateway, env.clock, 30*time.Second)

	created, err := env.pollDomain.Create(env.ctx, &model.CreatePollRequest{
		GuildID:  testutil.Guild1ID,
		Question: "Pizza or burgers?",
		Options:  []string{"pizza", "burgers"},
		Duration: "1h",
	})
	require.NoError(t, err)

	// A poll without a deadline is never scanned.
	endless, err := env.pollDomain.Create(env.ctx, &model.CreatePollRequest{
		GuildID:  testutil.Guild1ID,
		Question: "Forever?",
		Options:  []string{"yes", "no"},
	})
	require.NoError(t, err)

	env.clock.Forward(2 * time.Hour)
	job.Do(env.systemCtx())

	var result entity.Poll
	require.NoError(t, xcontext.DB(env.ctx).Take(&result, "id=?", created.ID).Error)
	require.Equal(t, entity.PollClosed, result.Status)

	result = entity.Poll{}
	require.NoError(t, xcontext.DB(env.ctx).Take(&result, "id=?", endless.ID).Error)
	require.Equal(t, entity.PollActive, result.Status)
}

func TestDrawGiveawaysCronJob(t *testing.T) {
	env := newCronTestEnv(42)
	job := NewDrawGiveawaysCronJob(env.giveawayRepo, env.gateway, env.clock, 30*time.Second)

	created, err := env.giveawayDomain.Create(env.ctx, &model.CreateGiveawayRequest{
		GuildID:     testutil.Guild1ID,
		Prize:       "Nitro",
		WinnerCount: 1,
		Duration:    "1h",
	})
	require.NoError(t, err)

	for _, user := range []int64{7, 8} {
		userCtx := xcontext.WithRequestUserID(env.ctx, user)
		_, err := env.giveawayDomain.Enter(userCtx, &model.EnterGiveawayRequest{ID: created.ID})
		require.NoError(t, err)
	}

	env.clock.Forward(2 * time.Hour)
	job.Do(env.systemCtx())

	var result entity.Giveaway
	require.NoError(t, xcontext.DB(env.ctx).Take(&result, "id=?", created.ID).Error)
	require.Equal(t, entity.GiveawayClosed, result.Status)
	require.Len(t, result.Winners, 1)
	require.Contains(t, []int64{7, 8}, result.Winners[0])
}

func TestDrawGiveawaysCronJob_ResumesInterruptedDraw(t *testing.T) {
	env := newCronTestEnv(42)
	job := NewDrawGiveawaysCronJob(env.giveawayRepo, env.gateway, env.clock, 30*time.Second)

	// A giveaway left mid-draw by a crash: drawing status, no winners.
	stuck := &entity.Giveaway{
		Base:        entity.Base{ID: "stuck"},
		Lifecycle:   entity.Lifecycle{GuildID: testutil.Guild1ID, OwnerID: 42, Version: 2},
		Status:      entity.GiveawayDrawing,
		Prize:       "Nitro",
		WinnerCount: 1,
		Entries:     entity.Array[int64]{7, 8, 9},
	}
	require.NoError(t, env.giveawayRepo.Create(env.ctx, stuck))

	job.Do(env.systemCtx())

	var result entity.Giveaway
	require.NoError(t, xcontext.DB(env.ctx).Take(&result, "id=?", "stuck").Error)
	require.Equal(t, entity.GiveawayClosed, result.Status)
	require.Len(t, result.Winners, 1)
}

func TestRetentionSweepCronJob(t *testing.T) {
	env := newCronTestEnv(42)
	now := env.clock.Now()

	oldTicket := &entity.Ticket{
		Base:      entity.Base{ID: "old-ticket"},
		Lifecycle: entity.Lifecycle{GuildID: testutil.Guild1ID, Version: 2},
		Status:    entity.TicketClosed,
		ClosedAt:  pastTime(now, 72*time.Hour),
	}
	require.NoError(t, env.ticketRepo.Create(env.ctx, oldTicket))

	oldPoll := &entity.Poll{
		Base: entity.Base{
			ID:        "old-poll",
			CreatedAt: now.Add(-90 * time.Hour),
			UpdatedAt: now.Add(-80 * time.Hour),
		},
		Lifecycle: entity.Lifecycle{GuildID: testutil.Guild1ID, Version: 2},
		Status:    entity.PollClosed,
		Options:   entity.Array[string]{"a", "b"},
	}
	require.NoError(t, env.pollRepo.Create(env.ctx, oldPoll))

	freshTicket := &entity.Ticket{
		Base:      entity.Base{ID: "fresh-ticket"},
		Lifecycle: entity.Lifecycle{GuildID: testutil.Guild1ID, Version: 2},
		Status:    entity.TicketClosed,
		ClosedAt:  pastTime(now, time.Hour),
	}
	require.NoError(t, env.ticketRepo.Create(env.ctx, freshTicket))

	// A zero window disables the sweep entirely.
	disabled := NewRetentionSweepCronJob(
		env.ticketRepo, env.pollRepo, env.giveawayRepo, env.reminderRepo,
		env.clock, time.Hour, 0)
	disabled.Do(env.systemCtx())

	var count int64
	require.NoError(t, xcontext.DB(env.ctx).Model(&entity.Ticket{}).Count(&count).Error)
	require.Equal(t, int64(2), count)

	job := NewRetentionSweepCronJob(
		env.ticketRepo, env.pollRepo, env.giveawayRepo, env.reminderRepo,
		env.clock, time.Hour, 24*time.Hour)
	job.Do(env.systemCtx())

	require.NoError(t, xcontext.DB(env.ctx).Model(&entity.Ticket{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	require.NoError(t, xcontext.DB(env.ctx).Model(&entity.Poll{}).Count(&count).Error)
	require.Zero(t, count)
}

func pastTime(now time.Time, ago time.Duration) sql.NullTime {
	return sql.NullTime{Time: now.Add(-ago), Valid: true}
}
