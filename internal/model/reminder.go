package model

type Reminder struct {
	ID          string `json:"id,omitempty"`
	GuildID     int64  `json:"guild_id,omitempty"`
	OwnerID     int64  `json:"owner_id,omitempty"`
	Status      string `json:"status,omitempty"`
	Message     string `json:"message,omitempty"`
	ChannelID   int64  `json:"channel_id,omitempty"`
	DeliverAt   string `json:"deliver_at,omitempty"`
	DeliveredAt string `json:"delivered_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	Version     int64  `json:"version,omitempty"`
}

type CreateReminderRequest struct {
	GuildID   int64  `json:"guild_id"`
	Message   string `json:"message"`
	Duration  string `json:"duration"`
	ChannelID int64  `json:"channel_id"`
}

type CreateReminderResponse struct {
	ID        string `json:"id"`
	DeliverAt string `json:"deliver_at"`
}

type CancelReminderRequest struct {
	ID string `json:"id"`
}

type CancelReminderResponse struct{}

type GetListReminderRequest struct {
	GuildID int64 `json:"guild_id"`
}

type GetListReminderResponse struct {
	Reminders []Reminder `json:"reminders"`
}
