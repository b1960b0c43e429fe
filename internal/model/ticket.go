package model

type Ticket struct {
	ID          string `json:"id,omitempty"`
	GuildID     int64  `json:"guild_id,omitempty"`
	OwnerID     int64  `json:"owner_id,omitempty"`
	Status      string `json:"status,omitempty"`
	Category    string `json:"category,omitempty"`
	Priority    string `json:"priority,omitempty"`
	ClaimedBy   int64  `json:"claimed_by,omitempty"`
	CloseReason string `json:"close_reason,omitempty"`
	CloseType   string `json:"close_type,omitempty"`
	ClosedBy    int64  `json:"closed_by,omitempty"`
	ClosedAt    string `json:"closed_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Version     int64  `json:"version,omitempty"`
}

type CreateTicketRequest struct {
	GuildID  int64  `json:"guild_id"`
	Category string `json:"category"`
}

type CreateTicketResponse struct {
	ID string `json:"id"`
}

type ClaimTicketRequest struct {
	ID string `json:"id"`
}

type ClaimTicketResponse struct {
	Ticket Ticket `json:"ticket"`
}

type CloseTicketRequest struct {
	ID         string  `json:"id"`
	Reason     string  `json:"reason"`
	CloseType  string  `json:"close_type"`
	ActorRoles []int64 `json:"actor_roles"`
}

type CloseTicketResponse struct {
	Ticket Ticket `json:"ticket"`
}

type SetTicketPriorityRequest struct {
	ID         string  `json:"id"`
	Priority   string  `json:"priority"`
	ActorRoles []int64 `json:"actor_roles"`
}

type SetTicketPriorityResponse struct {
	Ticket Ticket `json:"ticket"`
}

type GetListTicketRequest struct {
	GuildID int64  `json:"guild_id"`
	Status  string `json:"status"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type GetListTicketResponse struct {
	Tickets []Ticket `json:"tickets"`
}
