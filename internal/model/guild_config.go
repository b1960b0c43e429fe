package model

type GuildConfig struct {
	GuildID              int64   `json:"guild_id"`
	AdminRoles           []int64 `json:"admin_roles"`
	MaxTicketsPerUser    int     `json:"max_tickets_per_user"`
	TicketAutoCloseHours int     `json:"ticket_auto_close_hours"`
	GiveawayRequiredRole int64   `json:"giveaway_required_role,omitempty"`
	GiveawayBypassRoles  []int64 `json:"giveaway_bypass_roles,omitempty"`
}

type GetGuildConfigRequest struct {
	GuildID int64 `json:"guild_id"`
}

type GetGuildConfigResponse struct {
	Config GuildConfig `json:"config"`
}

type UpdateGuildConfigRequest struct {
	Config     GuildConfig `json:"config"`
	ActorRoles []int64     `json:"actor_roles"`
}

type UpdateGuildConfigResponse struct{}
