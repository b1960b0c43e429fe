package event

import "github.com/guildkit/backend/internal/model"

// TICKET CREATED EVENT
type TicketCreatedEvent model.Ticket

func (*TicketCreatedEvent) Op() string {
	return "ticket_created"
}

// TICKET CLAIMED EVENT
type TicketClaimedEvent struct {
	TicketID  string `json:"ticket_id"`
	ClaimedBy int64  `json:"claimed_by"`
}

func (*TicketClaimedEvent) Op() string {
	return "ticket_claimed"
}

// TICKET RELEASED EVENT
type TicketReleasedEvent struct {
	TicketID   string `json:"ticket_id"`
	ReleasedBy int64  `json:"released_by"`
}

func (*TicketReleasedEvent) Op() string {
	return "ticket_released"
}

// TICKET PRIORITY CHANGED EVENT
type TicketPriorityChangedEvent struct {
	TicketID string `json:"ticket_id"`
	Priority string `json:"priority"`
}

func (*TicketPriorityChangedEvent) Op() string {
	return "ticket_priority_changed"
}

// TICKET CLOSED EVENT
type TicketClosedEvent model.Ticket

func (*TicketClosedEvent) Op() string {
	return "ticket_closed"
}
