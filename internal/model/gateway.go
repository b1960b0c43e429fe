package model

// ApplyRequest is the generic action envelope accepted by the gateway. Kind
// and Action select the transition; the remaining fields carry the action's
// parameters and are read only by the actions that need them.
type ApplyRequest struct {
	Kind     string `json:"kind"`
	EntityID string `json:"entity_id"`
	Action   string `json:"action"`

	ActorRoles  []int64 `json:"actor_roles,omitempty"`
	OptionIndex int     `json:"option_index,omitempty"`
	Reason      string  `json:"reason,omitempty"`
	CloseType   string  `json:"close_type,omitempty"`
	Priority    string  `json:"priority,omitempty"`
}

type ApplyResponse struct {
	Data any `json:"data,omitempty"`
}
