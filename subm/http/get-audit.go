package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/niri-portal/backend/audit"
	"github.com/niri-portal/backend/httpjson"
	"github.com/niri-portal/backend/logger"
	"github.com/niri-portal/backend/subm/submerror"
)

// GetSubmAudit returns the submission's audit trail, oldest first. The
// caller only sees trails of submissions they may see.
func (h *SubmHttpHandler) GetSubmAudit(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.submSrvc.AuditForSubm(r.Context(), submUuid, actorUuid, actorRole, actorStateUt)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapAuditEntryViews(entries))
}

// GetActorAudit returns everything one actor did across submissions.
// Admin-only; the actor uuid comes from the query string.
func (h *SubmHttpHandler) GetActorAudit(w http.ResponseWriter, r *http.Request) {
	_, viewerRole, _, err := actorFromRequest(r)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	actorUuid, err := uuid.Parse(r.URL.Query().Get("actor"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	entries, err := h.submSrvc.AuditForActor(r.Context(), actorUuid, viewerRole)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapAuditEntryViews(entries))
}

func mapAuditEntryViews(entries []audit.Entry) []AuditEntryView {
	views := make([]AuditEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, mapAuditEntryView(e))
	}
	return views
}
