package notif

import "context"

// Notification tells a role that a submission changed status under it.
type Notification struct {
	RecipientRole string `json:"recipient_role"`
	SubmUuid      string `json:"subm_uuid"`
	SubmID        string `json:"subm_id"`
	NewStatus     string `json:"new_status"`
	StateUt       string `json:"state_ut"`
}

// Emitter delivers notifications after a transition has been persisted.
// Delivery is best-effort; a failed emit never rolls back the transition.
type Emitter interface {
	Emit(ctx context.Context, n Notification) error
}
