package model

type Giveaway struct {
	ID           string  `json:"id,omitempty"`
	GuildID      int64   `json:"guild_id,omitempty"`
	OwnerID      int64   `json:"owner_id,omitempty"`
	Status       string  `json:"status,omitempty"`
	Prize        string  `json:"prize,omitempty"`
	WinnerCount  int     `json:"winner_count,omitempty"`
	RequiredRole int64   `json:"required_role,omitempty"`
	BypassRoles  []int64 `json:"bypass_roles,omitempty"`
	Entries      []int64 `json:"entries,omitempty"`
	Winners      []int64 `json:"winners,omitempty"`
	CreatedAt    string  `json:"created_at,omitempty"`
	Deadline     string  `json:"deadline,omitempty"`
	Version      int64   `json:"version,omitempty"`
}

type CreateGiveawayRequest struct {
	GuildID      int64   `json:"guild_id"`
	Prize        string  `json:"prize"`
	WinnerCount  int     `json:"winner_count"`
	Duration     string  `json:"duration"`
	RequiredRole int64   `json:"required_role"`
	BypassRoles  []int64 `json:"bypass_roles"`
}

type CreateGiveawayResponse struct {
	ID string `json:"id"`
}

type EnterGiveawayRequest struct {
	ID         string  `json:"id"`
	ActorRoles []int64 `json:"actor_roles"`
}

type EnterGiveawayResponse struct {
	Entered    bool `json:"entered"`
	EntryCount int  `json:"entry_count"`
}

type EndGiveawayRequest struct {
	ID         string  `json:"id"`
	ActorRoles []int64 `json:"actor_roles"`
}

type EndGiveawayResponse struct {
	Giveaway Giveaway `json:"giveaway"`
}

type RerollGiveawayRequest struct {
	ID         string  `json:"id"`
	ActorRoles []int64 `json:"actor_roles"`
}

type RerollGiveawayResponse struct {
	Giveaway Giveaway `json:"giveaway"`
}

type GetListGiveawayRequest struct {
	GuildID int64 `json:"guild_id"`
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
}

type GetListGiveawayResponse struct {
	Giveaways []Giveaway `json:"giveaways"`
}
