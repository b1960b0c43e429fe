package entity

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGiveawayEligible(t *testing.T) {
	open := &Giveaway{}
	require.True(t, open.Eligible(nil))

	gated := &Giveaway{
		RequiredRole: sql.NullInt64{Int64: 100, Valid: true},
		BypassRoles:  Array[int64]{200},
	}
	require.False(t, gated.Eligible(nil))
	require.False(t, gated.Eligible([]int64{300}))
	require.True(t, gated.Eligible([]int64{100}))
	require.True(t, gated.Eligible([]int64{200}))
}

func TestGiveawayEnterToggle(t *testing.T) {
	giveaway := &Giveaway{Status: GiveawayActive}

	entered, err := giveaway.Enter(42)
	require.NoError(t, err)
	require.True(t, entered)
	require.Equal(t, Array[int64]{42}, giveaway.Entries)

	// Entering again withdraws the entry.
	entered, err = giveaway.Enter(42)
	require.NoError(t, err)
	require.False(t, entered)
	require.Empty(t, giveaway.Entries)
}

func TestGiveawayDrawPhases(t *testing.T) {
	giveaway := &Giveaway{Status: GiveawayActive, Entries: Array[int64]{1, 2, 3}}

	require.NoError(t, giveaway.BeginDraw())
	require.Equal(t, GiveawayDrawing, giveaway.Status)

	// Only an active giveaway can begin a draw.
	require.Error(t, giveaway.BeginDraw())

	_, err := giveaway.Enter(4)
	require.Error(t, err)

	require.NoError(t, giveaway.CompleteDraw([]int64{2}))
	require.Equal(t, GiveawayClosed, giveaway.Status)
	require.Equal(t, Array[int64]{2}, giveaway.Winners)

	require.NoError(t, giveaway.Reopen())
	require.Equal(t, GiveawayDrawing, giveaway.Status)
	require.Empty(t, giveaway.Winners)
}
