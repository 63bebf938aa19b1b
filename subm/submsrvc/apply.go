package submsrvc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/niri-portal/backend/audit"
	"github.com/niri-portal/backend/logger"
	"github.com/niri-portal/backend/notif"
	"github.com/niri-portal/backend/subm"
	"github.com/niri-portal/backend/subm/submerror"
	"github.com/niri-portal/backend/subm/submrepo"
)

type ApplyActionParams struct {
	SubmUUID     uuid.UUID
	Action       subm.WorkflowAction
	ActorUUID    uuid.UUID
	ActorRole    subm.Role
	ActorStateUt string
	Comment      string
}

type ApplyActionResult struct {
	Subm       subm.Submission
	AuditEntry audit.Entry
	Comment    *subm.ReviewComment
}

// ApplyAction loads the submission, runs the pure workflow engine on the
// snapshot and persists the outcome together with its audit entry. The
// store write is conditioned on the loaded version, so a snapshot raced
// from another process loses with a concurrent-modification error and
// nothing is persisted.
func (s *SubmSrvc) ApplyAction(ctx context.Context, params ApplyActionParams) (ApplyActionResult, error) {
	lock := s.submLock(params.SubmUUID)
	lock.Lock()
	defer lock.Unlock()

	stored, err := s.store.GetSubm(ctx, params.SubmUUID)
	if err != nil {
		if errors.Is(err, submrepo.ErrNotFound) {
			return ApplyActionResult{}, submerror.ErrSubmissionNotFound()
		}
		return ApplyActionResult{}, submerror.ErrInternalSE().SetDebug(err)
	}

	if err := s.checkActorScope(stored, params); err != nil {
		return ApplyActionResult{}, err
	}

	now := time.Now()
	result, err := subm.ApplyAction(stored, subm.ActionRequest{
		Action:    params.Action,
		ActorUUID: params.ActorUUID,
		ActorRole: params.ActorRole,
		Comment:   params.Comment,
	}, now)
	if err != nil {
		return ApplyActionResult{}, err
	}

	entry := audit.NewEntry(
		audit.EntityTypeSubmission,
		stored.UUID,
		string(params.Action),
		params.ActorUUID,
		string(params.ActorRole),
		auditDetails(result),
		now,
	)

	if err := s.store.StoreSubmWithAudit(ctx, result.Subm, entry); err != nil {
		if errors.Is(err, submrepo.ErrVersionConflict) {
			return ApplyActionResult{}, submerror.ErrConcurrentModification().SetDebug(err)
		}
		return ApplyActionResult{}, submerror.ErrInternalSE().SetDebug(err)
	}

	if result.Subm.Status.IsTerminal() {
		s.releaseLock(params.SubmUUID)
	}

	s.notifyTransition(ctx, result)

	return ApplyActionResult{
		Subm:       result.Subm,
		AuditEntry: entry,
		Comment:    result.Comment,
	}, nil
}

// checkActorScope enforces jurisdiction and ownership on top of the
// role/status guards of the engine. State-level actors only touch their
// own state's submissions; only the owning nodal officer moves theirs.
func (s *SubmSrvc) checkActorScope(stored subm.Submission, params ApplyActionParams) error {
	switch params.ActorRole {
	case subm.RoleNodalOfficer:
		if stored.OwnerUUID != params.ActorUUID {
			return submerror.ErrUnauthorizedActor(string(params.ActorRole), string(params.Action))
		}
	case subm.RoleStateApprover:
		if stored.StateUt != params.ActorStateUt {
			return submerror.ErrJurisdictionMismatch()
		}
	}
	return nil
}

func auditDetails(result subm.ActionResult) map[string]string {
	details := map[string]string{
		"prev_status": string(result.PrevStatus),
		"next_status": string(result.NextStatus),
	}
	if result.Comment != nil {
		details["comment_uuid"] = result.Comment.UUID.String()
		details["comment_type"] = string(result.Comment.Type)
	}
	return details
}

// notifyTransition tells the role now holding the submission. Terminal
// outcomes go back to the nodal officer. Best-effort only.
func (s *SubmSrvc) notifyTransition(ctx context.Context, result subm.ActionResult) {
	if result.NextStatus == result.PrevStatus {
		return // comment-only, nothing moved
	}

	recipient := subm.RoleNodalOfficer
	if role, ok := result.NextStatus.OwnerRole(); ok {
		recipient = role
	}

	err := s.emitter.Emit(ctx, notif.Notification{
		RecipientRole: string(recipient),
		SubmUuid:      result.Subm.UUID.String(),
		SubmID:        result.Subm.SubmID,
		NewStatus:     string(result.NextStatus),
		StateUt:       result.Subm.StateUt,
	})
	if err != nil {
		logger.FromContext(ctx).Warn("failed to emit transition notification",
			"subm_uuid", result.Subm.UUID,
			"new_status", result.NextStatus,
			"error", err)
	}
}
