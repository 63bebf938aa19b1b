package http

import (
	"time"

	"github.com/niri-portal/backend/audit"
	"github.com/niri-portal/backend/subm"
)

type SubmView struct {
	UUID           string          `json:"uuid"`
	SubmID         string          `json:"subm_id"`
	OwnerUUID      string          `json:"owner_uuid"`
	StateUt        string          `json:"state_ut"`
	Status         string          `json:"status"`
	StatusInfo     subm.StatusInfo `json:"status_info"`
	Progress       int             `json:"progress"`
	RejectionCount int             `json:"rejection_count"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DetailedSubmView adds what the detail page needs: the form payload, the
// comment history as visible to the caller, and the caller's legal
// actions.
type DetailedSubmView struct {
	SubmView
	FormData         map[string]any `json:"form_data"`
	Comments         []CommentView  `json:"comments"`
	AvailableActions []string       `json:"available_actions"`
}

type CommentView struct {
	UUID       string    `json:"uuid"`
	AuthorUUID string    `json:"author_uuid"`
	AuthorRole string    `json:"author_role"`
	Type       string    `json:"type"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type AuditEntryView struct {
	UUID       string            `json:"uuid"`
	EntityType string            `json:"entity_type"`
	EntityUUID string            `json:"entity_uuid"`
	Action     string            `json:"action"`
	ActorUUID  string            `json:"actor_uuid"`
	ActorRole  string            `json:"actor_role"`
	Details    map[string]string `json:"details,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

func mapSubmView(s subm.Submission) SubmView {
	return SubmView{
		UUID:           s.UUID.String(),
		SubmID:         s.SubmID,
		OwnerUUID:      s.OwnerUUID.String(),
		StateUt:        s.StateUt,
		Status:         string(s.Status),
		StatusInfo:     subm.GetStatusInfo(s.Status),
		Progress:       subm.ProgressPercentage(s.Status),
		RejectionCount: s.RejectionCount,
		Version:        s.Version,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func mapDetailedSubmView(s subm.Submission, viewerRole subm.Role) DetailedSubmView {
	visible := subm.VisibleComments(s.ReviewComments, viewerRole)
	comments := make([]CommentView, 0, len(visible))
	for _, c := range visible {
		comments = append(comments, CommentView{
			UUID:       c.UUID.String(),
			AuthorUUID: c.AuthorUUID.String(),
			AuthorRole: string(c.AuthorRole),
			Type:       string(c.Type),
			Text:       c.Text,
			CreatedAt:  c.CreatedAt,
		})
	}

	available := subm.AvailableActions(viewerRole, s)
	actions := make([]string, 0, len(available))
	for _, a := range available {
		actions = append(actions, string(a))
	}

	return DetailedSubmView{
		SubmView:         mapSubmView(s),
		FormData:         s.FormData,
		Comments:         comments,
		AvailableActions: actions,
	}
}

func mapAuditEntryView(e audit.Entry) AuditEntryView {
	return AuditEntryView{
		UUID:       e.UUID.String(),
		EntityType: string(e.EntityType),
		EntityUUID: e.EntityUUID.String(),
		Action:     e.Action,
		ActorUUID:  e.ActorUUID.String(),
		ActorRole:  e.ActorRole,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt,
	}
}
