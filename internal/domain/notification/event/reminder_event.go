package event

// REMINDER DUE EVENT
type ReminderDueEvent struct {
	ReminderID string `json:"reminder_id"`
	OwnerID    int64  `json:"owner_id"`
	ChannelID  int64  `json:"channel_id,omitempty"`
	Message    string `json:"message"`
}

func (*ReminderDueEvent) Op() string {
	return "reminder_due"
}
