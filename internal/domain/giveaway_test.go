package domain

import (
	"encoding/json"
	"testing"

	"github.com/guildkit/backend/internal/domain/notification/event"
	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/internal/model"
	"github.com/guildkit/backend/internal/repository"
	"github.com/guildkit/backend/pkg/clock"
	"github.com/guildkit/backend/pkg/errorx"
	"github.com/guildkit/backend/pkg/testutil"
	"github.com/guildkit/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newTestGiveawayDomain(publisher *testutil.MockPublisher) *giveawayDomain {
	return NewGiveawayDomain(
		repository.NewGiveawayRepository(),
		repository.NewGuildConfigRepository(nil),
		publisher,
		clock.New(),
	)
}

func Test_giveawayDomain_Create(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.CreateGiveawayRequest
		wantErr error
	}{
		{
			name: "happy case",
			req: &model.CreateGiveawayRequest{
				GuildID:     testutil.Guild1ID,
				Prize:       "Nitro",
				WinnerCount: 1,
				Duration:    "1d",
			},
		},
		{
			name: "missing prize",
			req: &model.CreateGiveawayRequest{
				GuildID:     testutil.Guild1ID,
				WinnerCount: 1,
				Duration:    "1d",
			},
			wantErr: errorx.New(errorx.BadRequest, "Require a prize"),
		},
		{
			name: "zero winners",
			req: &model.CreateGiveawayRequest{
				GuildID:  testutil.Guild1ID,
				Prize:    "Nitro",
				Duration: "1d",
			},
			wantErr: errorx.New(errorx.BadRequest, "Winner count must be at least 1"),
		},
		{
			name: "missing duration",
			req: &model.CreateGiveawayRequest{
				GuildID:     testutil.Guild1ID,
				Prize:       "Nitro",
				WinnerCount: 1,
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid duration "),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(42)
			testutil.CreateFixtureDb(ctx)
			domain := newTestGiveawayDomain(&testutil.MockPublisher{})

			resp, err := domain.Create(ctx, tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.Equal(t, tt.wantErr.Error(), err.Error())
				return
			}

			require.NoError(t, err)

			var result entity.Giveaway
			require.NoError(t, xcontext.DB(ctx).Take(&result, "id=?", resp.ID).Error)
			require.Equal(t, entity.GiveawayActive, result.Status)
			require.Equal(t, int64(1), result.Version)
			require.True(t, result.Deadline.Valid)
		})
	}
}

func Test_giveawayDomain_EnterToggle(t *testing.T) {
	ctx := testutil.MockContextWithUserID(42)
	testutil.CreateFixtureDb(ctx)
	domain := newTestGiveawayDomain(&testutil.MockPublisher{})

	created, err := domain.Create(ctx, &model.CreateGiveawayRequest{
		GuildID:     testutil.Guild1ID,
		Prize:       "Nitro",
		WinnerCount: 1,
		Duration:    "1d",
	})
	require.NoError(t, err)

	resp, err := domain.Enter(ctx, &model.EnterGiveawayRequest{ID: created.ID})
	require.NoError(t, err)
	require.True(t, resp.Entered)
	require.Equal(t, 1, resp.EntryCount)

	// Entering again withdraws the entry.
	resp, err = domain.Enter(ctx, &model.EnterGiveawayRequest{ID: created.ID})
	require.NoError(t, err)
	require.False(t, resp.Entered)
	require.Zero(t, resp.EntryCount)
}

func Test_giveawayDomain_EnterEligibility(t *testing.T) {
	ctx := testutil.MockContextWithUserID(42)
	testutil.CreateFixtureDb(ctx)
	domain := newTestGiveawayDomain(&testutil.MockPublisher{})

	created, err := domain.Create(ctx, &model.CreateGiveawayRequest{
		GuildID:      testutil.Guild1ID,
		Prize:        "Nitro",
		WinnerCount:  1,
		Duration:     "1d",
		RequiredRole: 100,
		BypassRoles:  []int64{200},
	})
	require.NoError(t, err)

	_, err = domain.Enter(ctx, &model.EnterGiveawayRequest{ID: created.ID})
	require.Error(t, err)
	require.Equal(t, errorx.NotEligible, err.(errorx.Error).Code)

	_, err = domain.Enter(ctx, &model.EnterGiveawayRequest{
		ID:         created.ID,
		ActorRoles: []int64{100},
	})
	require.NoError(t, err)

	otherCtx := xcontext.WithRequestUserID(ctx, 43)
	_, err = domain.Enter(otherCtx, &model.EnterGiveawayRequest{
		ID:         created.ID,
		ActorRoles: []int64{200},
	})
	require.NoError(t, err)
}

func Test_giveawayDomain_End(t *testing.T) {
	ctx := testutil.MockContextWithUserID(42)
	testutil.CreateFixtureDb(ctx)
	publisher := &testutil.MockPublisher{}
	domain := newTestGiveawayDomain(publisher)

	created, err := domain.Create(ctx, &model.CreateGiveawayRequest{
		GuildID:     testutil.Guild1ID,
		Prize:       "Nitro",
		WinnerCount: 5,
		Duration:    "1d",
	})
	require.NoError(t, err)

	for _, user := range []int64{7, 8, 9} {
		userCtx := xcontext.WithRequestUserID(ctx, user)
		_, err := domain.Enter(userCtx, &model.EnterGiveawayRequest{ID: created.ID})
		require.NoError(t, err)
	}

	resp, err := domain.End(ctx, &model.EndGiveawayRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.GiveawayClosed), resp.Giveaway.Status)

	// Fewer entries than winner slots draws every entrant exactly once.
	require.ElementsMatch(t, []int64{7, 8, 9}, resp.Giveaway.Winners)

	require.Len(t, publisher.Packs, 2)
	var envelope event.EventRequest
	require.NoError(t, json.Unmarshal(publisher.Packs[1].Msg, &envelope))
	require.Equal(t, "giveaway_ended", envelope.Op)

	// Ending again reports the recorded winners without redrawing or
	// publishing a duplicate event.
	again, err := domain.End(ctx, &model.EndGiveawayRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, resp.Giveaway.Winners, again.Giveaway.Winners)
	require.Equal(t, resp.Giveaway.Version, again.Giveaway.Version)
	require.Len(t, publisher.Packs, 2)

	// Entries after the end are rejected.
	_, err = domain.Enter(ctx, &model.EnterGiveawayRequest{ID: created.ID})
	require.Error(t, err)
	require.Equal(t, errorx.WrongState, err.(errorx.Error).Code)
}

func Test_giveawayDomain_EndPermission(t *testing.T) {
	ctx := testutil.MockContextWithUserID(42)
	testutil.CreateFixtureDb(ctx)
	domain := newTestGiveawayDomain(&testutil.MockPublisher{})

	created, err := domain.Create(ctx, &model.CreateGiveawayRequest{
		GuildID:     testutil.Guild1ID,
		Prize:       "Nitro",
		WinnerCount: 1,
		Duration:    "1d",
	})
	require.NoError(t, err)

	strangerCtx := xcontext.WithRequestUserID(ctx, 9)
	_, err = domain.End(strangerCtx, &model.EndGiveawayRequest{ID: created.ID})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)

	_, err = domain.End(strangerCtx, &model.EndGiveawayRequest{
		ID:         created.ID,
		ActorRoles: []int64{testutil.Guild1Admin},
	})
	require.NoError(t, err)
}

func Test_giveawayDomain_Reroll(t *testing.T) {
	ctx := testutil.MockContextWithUserID(42)
	testutil.CreateFixtureDb(ctx)
	publisher := &testutil.MockPublisher{}
	domain := newTestGiveawayDomain(publisher)

	created, err := domain.Create(ctx, &model.CreateGiveawayRequest{
		GuildID:     testutil.Guild1ID,
		Prize:       "Nitro",
		WinnerCount: 1,
		Duration:    "1d",
	})
	require.NoError(t, err)

	for _, user := range []int64{7, 8, 9} {
		userCtx := xcontext.WithRequestUserID(ctx, user)
		_, err := domain.Enter(userCtx, &model.EnterGiveawayRequest{ID: created.ID})
		require.NoError(t, err)
	}

	// Rerolling before the draw is rejected.
	_, err = domain.Reroll(ctx, &model.RerollGiveawayRequest{ID: created.ID})
	require.Error(t, err)
	require.Equal(t, errorx.WrongState, err.(errorx.Error).Code)

	_, err = domain.End(ctx, &model.EndGiveawayRequest{ID: created.ID})
	require.NoError(t, err)

	resp, err := domain.Reroll(ctx, &model.RerollGiveawayRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.GiveawayClosed), resp.Giveaway.Status)
	require.Len(t, resp.Giveaway.Winners, 1)
	require.Contains(t, []int64{7, 8, 9}, resp.Giveaway.Winners[0])

	var envelope event.EventRequest
	require.NoError(t, json.Unmarshal(publisher.Packs[len(publisher.Packs)-1].Msg, &envelope))
	require.Equal(t, "giveaway_rerolled", envelope.Op)

	strangerCtx := xcontext.WithRequestUserID(ctx, 9)
	_, err = domain.Reroll(strangerCtx, &model.RerollGiveawayRequest{ID: created.ID})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)
}
