package entity

import (
	"database/sql"
	"time"
)

// GuildConfig holds the per-guild knobs read by transition guards. A guild
// without a stored record gets the zero-value defaults: no admin roles, no
// ticket cap, no auto close, giveaways open to everyone.
type GuildConfig struct {
	GuildID   int64 `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	AdminRoles Array[int64] `gorm:"type:text"`

	MaxTicketsPerUser    int
	TicketAutoCloseHours int

	GiveawayRequiredRole sql.NullInt64
	GiveawayBypassRoles  Array[int64] `gorm:"type:text"`
}

// IsAdmin reports whether an actor holding the given roles has elevated
// capability in this guild.
func (c *GuildConfig) IsAdmin(actorRoles []int64) bool {
	for _, admin := range c.AdminRoles {
		for _, role := range actorRoles {
			if admin == role {
				return true
			}
		}
	}

	return false
}
