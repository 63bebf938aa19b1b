package subm

import (
	"time"

	"github.com/google/uuid"
)

// Role is a portal role as carried in JWT claims.
type Role string

const (
	RoleNodalOfficer  Role = "NODAL_OFFICER"
	RoleStateApprover Role = "STATE_APPROVER"
	RoleMospiReviewer Role = "MOSPI_REVIEWER"
	RoleMospiApprover Role = "MOSPI_APPROVER"
	RoleAdmin         Role = "ADMIN"
)

var allRoles = []Role{
	RoleNodalOfficer,
	RoleStateApprover,
	RoleMospiReviewer,
	RoleMospiApprover,
	RoleAdmin,
}

func AllRoles() []Role {
	return allRoles
}

func (r Role) IsValid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

// WorkflowAction is a request to move a submission through the pipeline.
// It either succeeds and yields a new status, or fails leaving the
// submission untouched.
type WorkflowAction string

const (
	ActionSubmitToState  WorkflowAction = "submit_to_state"
	ActionStateReject    WorkflowAction = "state_reject"
	ActionForwardToMospi WorkflowAction = "forward_to_mospi"
	ActionResubmit       WorkflowAction = "resubmit"
	ActionApprove        WorkflowAction = "approve"
	ActionFinalReject    WorkflowAction = "final_reject"
	ActionAddComment     WorkflowAction = "add_comment"
)

func (a WorkflowAction) IsValid() bool {
	switch a {
	case ActionSubmitToState, ActionStateReject, ActionForwardToMospi,
		ActionResubmit, ActionApprove, ActionFinalReject, ActionAddComment:
		return true
	}
	return false
}

type CommentType string

const (
	CommentTypeGeneral   CommentType = "comment"
	CommentTypeRejection CommentType = "rejection"
	CommentTypeApproval  CommentType = "approval"
)

// ReviewComment is immutable once created. Comments are only ever appended
// to a submission, never edited, removed or reordered.
type ReviewComment struct {
	UUID       uuid.UUID
	SubmUUID   uuid.UUID
	AuthorUUID uuid.UUID
	AuthorRole Role
	Type       CommentType
	Text       string
	CreatedAt  time.Time
}

// Submission is one infrastructure-readiness return moving through the
// approval pipeline.
type Submission struct {
	UUID      uuid.UUID
	SubmID    string // human-readable reference, e.g. NIRI-2026-MH-0042
	OwnerUUID uuid.UUID
	StateUt   string // owning state / union territory code

	Status   Status
	FormData map[string]any // indicator sections, opaque to the engine

	// RejectionCount is cumulative across state-level and central-level
	// rejections and never decreases.
	RejectionCount int

	ReviewComments []ReviewComment

	Version   int // bumped on every accepted transition, guards stale writes
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentOwnerRole returns the role whose action the submission is
// awaiting. The second return is false for terminal statuses.
func (s Submission) CurrentOwnerRole() (Role, bool) {
	return s.Status.OwnerRole()
}
