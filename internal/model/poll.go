package model

type Poll struct {
	ID        string         `json:"id,omitempty"`
	GuildID   int64          `json:"guild_id,omitempty"`
	OwnerID   int64          `json:"owner_id,omitempty"`
	Status    string         `json:"status,omitempty"`
	Question  string         `json:"question,omitempty"`
	Options   []string       `json:"options,omitempty"`
	Votes     map[string]int `json:"votes,omitempty"`
	Tally     []int          `json:"tally,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	Deadline  string         `json:"deadline,omitempty"`
	Version   int64          `json:"version,omitempty"`
}

type CreatePollRequest struct {
	GuildID  int64    `json:"guild_id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Duration string   `json:"duration"`
}

type CreatePollResponse struct {
	ID string `json:"id"`
}

type VotePollRequest struct {
	ID          string `json:"id"`
	OptionIndex int    `json:"option_index"`
}

type VotePollResponse struct {
	Poll Poll `json:"poll"`
}

type ClosePollRequest struct {
	ID         string  `json:"id"`
	ActorRoles []int64 `json:"actor_roles"`
}

type ClosePollResponse struct {
	Poll Poll `json:"poll"`
}

type GetListPollRequest struct {
	GuildID int64 `json:"guild_id"`
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
}

type GetListPollResponse struct {
	Polls []Poll `json:"polls"`
}
