package testutil

import (
	"context"

	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/pkg/xcontext"
)

var (
	Guild1ID     = int64(1)
	Guild1Admin  = int64(900)
	Guild1Config = entity.GuildConfig{
		GuildID:           Guild1ID,
		AdminRoles:        entity.Array[int64]{Guild1Admin},
		MaxTicketsPerUser: 3,
	}
)

func CreateFixtureDb(ctx context.Context) {
	cfg := Guild1Config
	if err := xcontext.DB(ctx).Save(&cfg).Error; err != nil {
		panic(err)
	}
}
