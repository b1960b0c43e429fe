package event

import "github.com/guildkit/backend/internal/model"

// GIVEAWAY CREATED EVENT
type GiveawayCreatedEvent model.Giveaway

func (*GiveawayCreatedEvent) Op() string {
	return "giveaway_created"
}

// GIVEAWAY ENDED EVENT
type GiveawayEndedEvent struct {
	GiveawayID string  `json:"giveaway_id"`
	Prize      string  `json:"prize"`
	Winners    []int64 `json:"winners"`
	EntryCount int     `json:"entry_count"`
}

func (*GiveawayEndedEvent) Op() string {
	return "giveaway_ended"
}

// GIVEAWAY REROLLED EVENT
type GiveawayRerolledEvent struct {
	GiveawayID string  `json:"giveaway_id"`
	Prize      string  `json:"prize"`
	Winners    []int64 `json:"winners"`
}

func (*GiveawayRerolledEvent) Op() string {
	return "giveaway_rerolled"
}
