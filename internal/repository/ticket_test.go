package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func TestTicketRepository_UpdateVersionCondition(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewTicketRepository()

	ticket := &entity.Ticket{
		Base:      entity.Base{ID: "ticket-1"},
		Lifecycle: entity.Lifecycle{GuildID: 1, OwnerID: 42, Version: 1},
		Status:    entity.TicketOpen,
		Category:  "support",
		Priority:  entity.PriorityNormal,
	}
	require.NoError(t, repo.Create(ctx, ticket))

	ticket.Status = entity.TicketClaimed
	ticket.Version = 2
	require.NoError(t, repo.Update(ctx, ticket, 1))

	got, err := repo.GetByID(ctx, "ticket-1")
	require.NoError(t, err)
	require.Equal(t, entity.TicketClaimed, got.Status)
	require.Equal(t, int64(2), got.Version)

	// A write conditioned on a stale version must not land.
	ticket.Status = entity.TicketClosed
	ticket.Version = 2
	require.ErrorIs(t, repo.Update(ctx, ticket, 1), ErrVersionConflict)

	got, err = repo.GetByID(ctx, "ticket-1")
	require.NoError(t, err)
	require.Equal(t, entity.TicketClaimed, got.Status)
	require.Equal(t, int64(2), got.Version)
}

func TestTicketRepository_GetDue(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewTicketRepository()
	now := time.Now()

	due := &entity.Ticket{
		Base: entity.Base{ID: "due"},
		Lifecycle: entity.Lifecycle{
			GuildID:  1,
			Deadline: sql.NullTime{Time: now.Add(-time.Minute), Valid: true},
			Version:  1,
		},
		Status: entity.TicketOpen,
	}
	notYet := &entity.Ticket{
		Base: entity.Base{ID: "not-yet"},
		Lifecycle: entity.Lifecycle{
			GuildID:  1,
			Deadline: sql.NullTime{Time: now.Add(time.Hour), Valid: true},
			Version:  1,
		},
		Status: entity.TicketOpen,
	}
	noDeadline := &entity.Ticket{
		Base:      entity.Base{ID: "no-deadline"},
		Lifecycle: entity.Lifecycle{GuildID: 1, Version: 1},
		Status:    entity.TicketOpen,
	}
	closed := &entity.Ticket{
		Base: entity.Base{ID: "closed"},
		Lifecycle: entity.Lifecycle{
			GuildID:  1,
			Deadline: sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
			Version:  2,
		},
		Status: entity.TicketClosed,
	}
	for _, ticket := range []*entity.Ticket{due, notYet, noDeadline, closed} {
		require.NoError(t, repo.Create(ctx, ticket))
	}

	got, err := repo.GetDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "due", got[0].ID)
}

func TestTicketRepository_DeleteClosedBefore(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewTicketRepository()
	now := time.Now()

	old := &entity.Ticket{
		Base:      entity.Base{ID: "old"},
		Lifecycle: entity.Lifecycle{GuildID: 1, Version: 2},
		Status:    entity.TicketClosed,
		ClosedAt:  sql.NullTime{Time: now.Add(-48 * time.Hour), Valid: true},
	}
	recent := &entity.Ticket{
		Base:      entity.Base{ID: "recent"},
		Lifecycle: entity.Lifecycle{GuildID: 1, Version: 2},
		Status:    entity.TicketClosed,
		ClosedAt:  sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
	}
	open := &entity.Ticket{
		Base:      entity.Base{ID: "open"},
		Lifecycle: entity.Lifecycle{GuildID: 1, Version: 1},
		Status:    entity.TicketOpen,
	}
	for _, ticket := range []*entity.Ticket{old, recent, open} {
		require.NoError(t, repo.Create(ctx, ticket))
	}

	deleted, err := repo.DeleteClosedBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	remaining, err := repo.GetList(ctx, 1, TicketFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, remaining, 2)
}
