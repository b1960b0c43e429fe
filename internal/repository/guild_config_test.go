package repository

import (
	"testing"

	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func TestGuildConfigRepository_DefaultsWhenMissing(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewGuildConfigRepository(nil)

	cfg, err := repo.Get(ctx, 99)
	require.NoError(t, err)
	require.Equal(t, int64(99), cfg.GuildID)
	require.Empty(t, cfg.AdminRoles)
	require.Zero(t, cfg.MaxTicketsPerUser)
	require.Zero(t, cfg.TicketAutoCloseHours)
	require.False(t, cfg.GiveawayRequiredRole.Valid)
}

func TestGuildConfigRepository_Upsert(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewGuildConfigRepository(nil)

	require.NoError(t, repo.Upsert(ctx, &entity.GuildConfig{
		GuildID:           7,
		AdminRoles:        entity.Array[int64]{100},
		MaxTicketsPerUser: 2,
	}))

	cfg, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, entity.Array[int64]{100}, cfg.AdminRoles)
	require.Equal(t, 2, cfg.MaxTicketsPerUser)

	cfg.TicketAutoCloseHours = 48
	require.NoError(t, repo.Upsert(ctx, cfg))

	got, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 48, got.TicketAutoCloseHours)
	require.Equal(t, 2, got.MaxTicketsPerUser)
}
