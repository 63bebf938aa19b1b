package subm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niri-portal/backend/subm/submerror"
)

// Comment length bounds per comment type.
const (
	MaxRejectionCommentLen = 500
	MaxApprovalCommentLen  = 300
	MaxGeneralCommentLen   = 400
)

// escalationThreshold is the cumulative rejection count at or above which
// the next rejection, from either approval level, becomes terminal.
const escalationThreshold = 1

type commentRule int

const (
	commentOptional commentRule = iota
	commentRequired
)

// transition is one edge of the workflow. next computes the target status
// from the submission so rejection escalation stays in the table instead
// of leaking into callers.
type transition struct {
	from    Status
	action  WorkflowAction
	role    Role
	comment commentRule
	ctype   CommentType
	next    func(s Submission) Status
}

func static(st Status) func(Submission) Status {
	return func(Submission) Status { return st }
}

func escalating(soft Status) func(Submission) Status {
	return func(s Submission) Status {
		if s.RejectionCount >= escalationThreshold {
			return StatusRejectedFinal
		}
		return soft
	}
}

var transitions = []transition{
	{
		from: StatusDraft, action: ActionSubmitToState, role: RoleNodalOfficer,
		comment: commentOptional, ctype: CommentTypeGeneral,
		next: static(StatusSubmittedToState),
	},
	{
		from: StatusSubmittedToState, action: ActionStateReject, role: RoleStateApprover,
		comment: commentRequired, ctype: CommentTypeRejection,
		next: escalating(StatusRejected),
	},
	{
		from: StatusSubmittedToState, action: ActionForwardToMospi, role: RoleStateApprover,
		comment: commentRequired, ctype: CommentTypeGeneral,
		next: static(StatusSubmittedToMospiRevwr),
	},
	{
		from: StatusSubmittedToState, action: ActionApprove, role: RoleStateApprover,
		comment: commentOptional, ctype: CommentTypeApproval,
		next: static(StatusApproved),
	},
	{
		// a repeat rejection without an intervening resubmission still
		// counts toward escalation
		from: StatusRejected, action: ActionStateReject, role: RoleStateApprover,
		comment: commentRequired, ctype: CommentTypeRejection,
		next: escalating(StatusRejected),
	},
	{
		from: StatusRejected, action: ActionResubmit, role: RoleNodalOfficer,
		comment: commentOptional, ctype: CommentTypeGeneral,
		next: static(StatusSubmittedToState),
	},
	{
		from: StatusReturnedFromState, action: ActionResubmit, role: RoleNodalOfficer,
		comment: commentOptional, ctype: CommentTypeGeneral,
		next: static(StatusSubmittedToState),
	},
	{
		from: StatusReturnedFromMospi, action: ActionResubmit, role: RoleNodalOfficer,
		comment: commentOptional, ctype: CommentTypeGeneral,
		next: static(StatusSubmittedToState),
	},
	{
		from: StatusSubmittedToMospiRevwr, action: ActionForwardToMospi, role: RoleMospiReviewer,
		comment: commentOptional, ctype: CommentTypeGeneral,
		next: static(StatusSubmittedToMospiApprv),
	},
	{
		from: StatusSubmittedToMospiApprv, action: ActionApprove, role: RoleMospiApprover,
		comment: commentOptional, ctype: CommentTypeApproval,
		next: static(StatusMospiApproved),
	},
	{
		from: StatusSubmittedToMospiApprv, action: ActionFinalReject, role: RoleMospiApprover,
		comment: commentRequired, ctype: CommentTypeRejection,
		next: escalating(StatusReturnedFromMospi),
	},
}

// ActionRequest carries everything an actor supplies when triggering a
// workflow action. No ambient state is consulted.
type ActionRequest struct {
	Action    WorkflowAction
	ActorUUID uuid.UUID
	ActorRole Role
	Comment   string
}

// ActionResult is the outcome of a successful ApplyAction: the new
// submission snapshot, the appended comment (if any) and the status edge
// that was taken. The audit entry is recorded by the caller from
// PrevStatus/NextStatus.
type ActionResult struct {
	Subm       Submission
	Comment    *ReviewComment
	PrevStatus Status
	NextStatus Status
}

// ApplyAction validates req against the transition table and returns the
// submission after the action. The input snapshot is never mutated; on any
// guard failure the returned error describes the failure and no partial
// result is produced.
func ApplyAction(s Submission, req ActionRequest, now time.Time) (ActionResult, error) {
	if !req.Action.IsValid() {
		return ActionResult{}, submerror.ErrUnknownAction(string(req.Action))
	}

	if req.Action == ActionAddComment {
		return applyAddComment(s, req, now)
	}

	tr, found := lookupTransition(s.Status, req.Action, req.ActorRole)
	if !found {
		if roleMayPerform(req.ActorRole, req.Action) {
			return ActionResult{}, submerror.ErrInvalidTransition(string(req.Action), string(s.Status))
		}
		return ActionResult{}, submerror.ErrUnauthorizedActor(string(req.ActorRole), string(req.Action))
	}

	comment, err := buildComment(s, req, tr.comment, tr.ctype, now)
	if err != nil {
		return ActionResult{}, err
	}

	prev := s.Status
	next := tr.next(s)

	updated := s
	updated.Status = next
	updated.UpdatedAt = now
	updated.Version = s.Version + 1
	if req.Action == ActionStateReject || req.Action == ActionFinalReject {
		updated.RejectionCount = s.RejectionCount + 1
	}
	if comment != nil {
		updated.ReviewComments = appendComment(s.ReviewComments, *comment)
	}

	return ActionResult{
		Subm:       updated,
		Comment:    comment,
		PrevStatus: prev,
		NextStatus: next,
	}, nil
}

// applyAddComment appends a comment without changing status. Legal in any
// non-terminal status for any role that can see the submission.
func applyAddComment(s Submission, req ActionRequest, now time.Time) (ActionResult, error) {
	if s.Status.IsTerminal() {
		return ActionResult{}, submerror.ErrInvalidTransition(string(req.Action), string(s.Status))
	}
	if !req.ActorRole.IsValid() {
		return ActionResult{}, submerror.ErrUnauthorizedActor(string(req.ActorRole), string(req.Action))
	}

	comment, err := buildComment(s, req, commentRequired, CommentTypeGeneral, now)
	if err != nil {
		return ActionResult{}, err
	}

	updated := s
	updated.UpdatedAt = now
	updated.Version = s.Version + 1
	updated.ReviewComments = appendComment(s.ReviewComments, *comment)

	return ActionResult{
		Subm:       updated,
		Comment:    comment,
		PrevStatus: s.Status,
		NextStatus: s.Status,
	}, nil
}

func lookupTransition(from Status, action WorkflowAction, role Role) (transition, bool) {
	for _, tr := range transitions {
		if tr.from == from && tr.action == action && tr.role == role {
			return tr, true
		}
	}
	return transition{}, false
}

// roleMayPerform reports whether the role has the action on any edge of
// the table at all. Distinguishes "wrong state for you" (conflict) from
// "never yours to trigger" (forbidden).
func roleMayPerform(role Role, action WorkflowAction) bool {
	for _, tr := range transitions {
		if tr.action == action && tr.role == role {
			return true
		}
	}
	return false
}

func buildComment(s Submission, req ActionRequest, rule commentRule, ctype CommentType, now time.Time) (*ReviewComment, error) {
	text := strings.TrimSpace(req.Comment)

	if text == "" {
		if rule == commentRequired {
			return nil, submerror.ErrMissingRequiredComment(string(req.Action))
		}
		return nil, nil
	}

	maxLen := maxCommentLen(ctype)
	if len([]rune(text)) > maxLen {
		return nil, submerror.ErrCommentTooLong(maxLen)
	}

	return &ReviewComment{
		UUID:       uuid.New(),
		SubmUUID:   s.UUID,
		AuthorUUID: req.ActorUUID,
		AuthorRole: req.ActorRole,
		Type:       ctype,
		Text:       text,
		CreatedAt:  now,
	}, nil
}

func maxCommentLen(ctype CommentType) int {
	switch ctype {
	case CommentTypeRejection:
		return MaxRejectionCommentLen
	case CommentTypeApproval:
		return MaxApprovalCommentLen
	default:
		return MaxGeneralCommentLen
	}
}

// appendComment copies the slice so the input snapshot keeps its own
// backing array.
func appendComment(comments []ReviewComment, c ReviewComment) []ReviewComment {
	out := make([]ReviewComment, len(comments), len(comments)+1)
	copy(out, comments)
	return append(out, c)
}

// AvailableActions returns the workflow actions the given role may trigger
// on the submission right now. Empty for terminal statuses and for roles
// with no outgoing edge; an empty result is a normal answer, not an error.
func AvailableActions(role Role, s Submission) []WorkflowAction {
	if s.Status.IsTerminal() {
		return []WorkflowAction{}
	}

	actions := make([]WorkflowAction, 0, 4)
	for _, tr := range transitions {
		if tr.from == s.Status && tr.role == role {
			actions = append(actions, tr.action)
		}
	}
	if role.IsValid() {
		actions = append(actions, ActionAddComment)
	}
	return actions
}
