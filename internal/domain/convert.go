package domain

import (
	"database/sql"
	"time"

	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/internal/model"
)

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return formatTime(t.Time)
}

func convertTicket(t *entity.Ticket) model.Ticket {
	return model.Ticket{
		ID:          t.ID,
		GuildID:     t.GuildID,
		OwnerID:     t.OwnerID,
		Status:      string(t.Status),
		Category:    t.Category,
		Priority:    string(t.Priority),
		ClaimedBy:   t.ClaimedBy.Int64,
		CloseReason: t.CloseReason,
		CloseType:   t.CloseType,
		ClosedBy:    t.ClosedBy.Int64,
		ClosedAt:    formatNullTime(t.ClosedAt),
		CreatedAt:   formatTime(t.CreatedAt),
		Deadline:    formatNullTime(t.Deadline),
		Version:     t.Version,
	}
}

func convertPoll(p *entity.Poll) model.Poll {
	return model.Poll{
		ID:        p.ID,
		GuildID:   p.GuildID,
		OwnerID:   p.OwnerID,
		Status:    string(p.Status),
		Question:  p.Question,
		Options:   p.Options,
		Votes:     p.Votes,
		Tally:     p.Tally(),
		CreatedAt: formatTime(p.CreatedAt),
		Deadline:  formatNullTime(p.Deadline),
		Version:   p.Version,
	}
}

func convertGiveaway(g *entity.Giveaway) model.Giveaway {
	return model.Giveaway{
		ID:           g.ID,
		GuildID:      g.GuildID,
		OwnerID:      g.OwnerID,
		Status:       string(g.Status),
		Prize:        g.Prize,
		WinnerCount:  g.WinnerCount,
		RequiredRole: g.RequiredRole.Int64,
		BypassRoles:  g.BypassRoles,
		Entries:      g.Entries,
		Winners:      g.Winners,
		CreatedAt:    formatTime(g.CreatedAt),
		Deadline:     formatNullTime(g.Deadline),
		Version:      g.Version,
	}
}

func convertReminder(r *entity.Reminder) model.Reminder {
	return model.Reminder{
		ID:          r.ID,
		GuildID:     r.GuildID,
		OwnerID:     r.OwnerID,
		Status:      string(r.Status),
		Message:     r.Message,
		ChannelID:   r.ChannelID.Int64,
		DeliverAt:   formatNullTime(r.Deadline),
		DeliveredAt: formatNullTime(r.DeliveredAt),
		CreatedAt:   formatTime(r.CreatedAt),
		Version:     r.Version,
	}
}

func convertGuildConfig(c *entity.GuildConfig) model.GuildConfig {
	return model.GuildConfig{
		GuildID:              c.GuildID,
		AdminRoles:           c.AdminRoles,
		MaxTicketsPerUser:    c.MaxTicketsPerUser,
		TicketAutoCloseHours: c.TicketAutoCloseHours,
		GiveawayRequiredRole: c.GiveawayRequiredRole.Int64,
		GiveawayBypassRoles:  c.GiveawayBypassRoles,
	}
}
