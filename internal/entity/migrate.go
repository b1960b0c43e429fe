package entity

import (
	"context"

	"github.com/guildkit/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Ticket{},
		&Poll{},
		&Giveaway{},
		&Reminder{},
		&GuildConfig{},
	)
}
