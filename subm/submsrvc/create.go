package submsrvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niri-portal/backend/audit"
	"github.com/niri-portal/backend/subm"
	"github.com/niri-portal/backend/subm/submerror"
	"github.com/niri-portal/backend/subm/submrepo"
)

type CreateSubmParams struct {
	OwnerUUID uuid.UUID
	OwnerRole subm.Role
	StateUt   string
	FormData  map[string]any
}

// CreateSubm opens a new draft submission owned by a nodal officer. The
// creation itself is audited so the trail covers the full lifecycle.
func (s *SubmSrvc) CreateSubm(ctx context.Context, params CreateSubmParams) (subm.Submission, error) {
	if params.OwnerRole != subm.RoleNodalOfficer {
		return subm.Submission{}, submerror.ErrUnauthorizedActor(string(params.OwnerRole), "create_submission")
	}

	now := time.Now()
	submUuid := uuid.New()

	created := subm.Submission{
		UUID:           submUuid,
		SubmID:         newSubmID(params.StateUt, submUuid, now),
		OwnerUUID:      params.OwnerUUID,
		StateUt:        params.StateUt,
		Status:         subm.StatusDraft,
		FormData:       params.FormData,
		RejectionCount: 0,
		ReviewComments: []subm.ReviewComment{},
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	entry := audit.NewEntry(
		audit.EntityTypeSubmission,
		submUuid,
		"create_submission",
		params.OwnerUUID,
		string(params.OwnerRole),
		map[string]string{
			"subm_id":  created.SubmID,
			"state_ut": created.StateUt,
			"status":   string(created.Status),
		},
		now,
	)

	if err := s.store.StoreSubmWithAudit(ctx, created, entry); err != nil {
		if errors.Is(err, submrepo.ErrVersionConflict) {
			return subm.Submission{}, submerror.ErrConcurrentModification().SetDebug(err)
		}
		return subm.Submission{}, submerror.ErrInternalSE().SetDebug(err)
	}

	return created, nil
}

// newSubmID builds the human-readable reference, e.g. NIRI-2026-MH-1A2B3C4D.
func newSubmID(stateUt string, submUuid uuid.UUID, now time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(submUuid.String(), "-", ""))[:8]
	return fmt.Sprintf("NIRI-%d-%s-%s", now.Year(), strings.ToUpper(stateUt), short)
}
