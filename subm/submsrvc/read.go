package submsrvc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/niri-portal/backend/audit"
	"github.com/niri-portal/backend/subm"
	"github.com/niri-portal/backend/subm/submerror"
	"github.com/niri-portal/backend/subm/submrepo"
)

// GetSubm returns one submission if the viewer may see it. The same
// scoping as ListSubmsFor applies; a nodal officer probing another
// officer's uuid gets not-found rather than a hint that it exists.
func (s *SubmSrvc) GetSubm(ctx context.Context, submUuid uuid.UUID, viewerUuid uuid.UUID, viewerRole subm.Role, viewerStateUt string) (subm.Submission, error) {
	stored, err := s.store.GetSubm(ctx, submUuid)
	if err != nil {
		if errors.Is(err, submrepo.ErrNotFound) {
			return subm.Submission{}, submerror.ErrSubmissionNotFound()
		}
		return subm.Submission{}, submerror.ErrInternalSE().SetDebug(err)
	}
	if err := checkViewerScope(stored, viewerUuid, viewerRole, viewerStateUt); err != nil {
		return subm.Submission{}, err
	}
	return stored, nil
}

// checkViewerScope is the single-record twin of the list filtering:
// central roles and admins see everything, state approvers their
// jurisdiction, nodal officers only what they own.
func checkViewerScope(stored subm.Submission, viewerUuid uuid.UUID, viewerRole subm.Role, viewerStateUt string) error {
	switch viewerRole {
	case subm.RoleAdmin, subm.RoleMospiReviewer, subm.RoleMospiApprover:
		return nil
	case subm.RoleStateApprover:
		if stored.StateUt != viewerStateUt {
			return submerror.ErrJurisdictionMismatch()
		}
		return nil
	case subm.RoleNodalOfficer:
		if stored.OwnerUUID != viewerUuid {
			return submerror.ErrSubmissionNotFound()
		}
		return nil
	}
	return submerror.ErrSubmissionNotFound()
}

// ListSubmsFor returns the submissions a viewer may see: nodal officers
// their own, state approvers their jurisdiction's, central roles and
// admins everything.
func (s *SubmSrvc) ListSubmsFor(ctx context.Context, viewerUuid uuid.UUID, viewerRole subm.Role, viewerStateUt string) ([]subm.Submission, error) {
	all, err := s.store.ListSubms(ctx)
	if err != nil {
		return nil, submerror.ErrInternalSE().SetDebug(err)
	}

	switch viewerRole {
	case subm.RoleMospiReviewer, subm.RoleMospiApprover, subm.RoleAdmin:
		return all, nil
	case subm.RoleStateApprover:
		out := make([]subm.Submission, 0, len(all))
		for _, candidate := range all {
			if candidate.StateUt == viewerStateUt {
				out = append(out, candidate)
			}
		}
		return out, nil
	case subm.RoleNodalOfficer:
		out := make([]subm.Submission, 0, len(all))
		for _, candidate := range all {
			if candidate.OwnerUUID == viewerUuid {
				out = append(out, candidate)
			}
		}
		return out, nil
	}
	return []subm.Submission{}, nil
}

// AuditForSubm returns the submission's audit trail, oldest first. The
// trail is as visible as the submission itself, so the read goes through
// the same viewer scoping.
func (s *SubmSrvc) AuditForSubm(ctx context.Context, submUuid uuid.UUID, viewerUuid uuid.UUID, viewerRole subm.Role, viewerStateUt string) ([]audit.Entry, error) {
	if _, err := s.GetSubm(ctx, submUuid, viewerUuid, viewerRole, viewerStateUt); err != nil {
		return nil, err
	}

	entries, err := s.auditStore.ListByEntity(ctx, audit.EntityTypeSubmission, submUuid)
	if err != nil {
		return nil, submerror.ErrInternalSE().SetDebug(err)
	}
	return entries, nil
}

// AuditForActor returns everything one actor did, across submissions.
// Admin-only: the cross-entity view cuts across every jurisdiction.
func (s *SubmSrvc) AuditForActor(ctx context.Context, actorUuid uuid.UUID, viewerRole subm.Role) ([]audit.Entry, error) {
	if viewerRole != subm.RoleAdmin {
		return nil, submerror.ErrUnauthorizedActor(string(viewerRole), "view_actor_audit")
	}

	entries, err := s.auditStore.ListByActor(ctx, actorUuid)
	if err != nil {
		return nil, submerror.ErrInternalSE().SetDebug(err)
	}
	return entries, nil
}
