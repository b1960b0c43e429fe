package event

import "github.com/guildkit/backend/internal/model"

// POLL CREATED EVENT
type PollCreatedEvent model.Poll

func (*PollCreatedEvent) Op() string {
	return "poll_created"
}

// POLL CLOSED EVENT
type PollClosedEvent struct {
	PollID   string   `json:"poll_id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Tally    []int    `json:"tally"`
}

func (*PollClosedEvent) Op() string {
	return "poll_closed"
}
