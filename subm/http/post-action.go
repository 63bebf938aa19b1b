package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/niri-portal/backend/httpjson"
	"github.com/niri-portal/backend/logger"
	"github.com/niri-portal/backend/subm"
	"github.com/niri-portal/backend/subm/submerror"
	"github.com/niri-portal/backend/subm/submsrvc"
)

// PostAction triggers one workflow action on a submission. The response
// carries the updated submission and the audit entry the transition
// produced; guard failures map to 400/403/409 by error kind.
func (h *SubmHttpHandler) PostAction(w http.ResponseWriter, r *http.Request) {
	type actionRequest struct {
		Comment string `json:"comment"`
	}

	actorUuid, actorRole, actorStateUt, err := actorFromRequest(r)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	submUuid, err := uuid.Parse(chi.URLParam(r, "subm-uuid"))
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, submerror.ErrSubmissionNotFound().SetDebug(err))
		return
	}

	action := subm.WorkflowAction(chi.URLParam(r, "action"))

	var request actionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && err != io.EOF {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	logger.FromContext(r.Context()).Info("workflow action request",
		"subm_uuid", submUuid,
		"action", action,
		"actor_role", actorRole)

	result, err := h.submSrvc.ApplyAction(r.Context(), submsrvc.ApplyActionParams{
		SubmUUID:     submUuid,
		Action:       action,
		ActorUUID:    actorUuid,
		ActorRole:    actorRole,
		ActorStateUt: actorStateUt,
		Comment:      request.Comment,
	})
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	type actionResponse struct {
		Submission DetailedSubmView `json:"submission"`
		AuditEntry AuditEntryView   `json:"audit_entry"`
	}
	httpjson.WriteSuccessJson(w, actionResponse{
		Submission: mapDetailedSubmView(result.Subm, actorRole),
		AuditEntry: mapAuditEntryView(result.AuditEntry),
	})
}
