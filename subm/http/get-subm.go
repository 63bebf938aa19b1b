package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/niri-portal/backend/httpjson"
	"github.com/niri-portal/backend/logger"
	"github.com/niri-portal/backend/subm/submerror"
)

func (h *SubmHttpHandler) GetSubm(w http.ResponseWriter, r *http.Request) {
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

	found, err := h.submSrvc.GetSubm(r.Context(), submUuid, actorUuid, actorRole, actorStateUt)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapDetailedSubmView(found, actorRole))
}

func (h *SubmHttpHandler) GetSubmList(w http.ResponseWriter, r *http.Request) {
	actorUuid, actorRole, actorStateUt, err := actorFromRequest(r)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	subms, err := h.submSrvc.ListSubmsFor(r.Context(), actorUuid, actorRole, actorStateUt)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	views := make([]SubmView, 0, len(subms))
	for _, s := range subms {
		views = append(views, mapSubmView(s))
	}
	httpjson.WriteSuccessJson(w, views)
}
