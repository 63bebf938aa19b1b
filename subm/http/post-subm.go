package http

import (
	"encoding/json"
	"net/http"

	"github.com/niri-portal/backend/httpjson"
	"github.com/niri-portal/backend/logger"
	"github.com/niri-portal/backend/subm/submsrvc"
)

func (h *SubmHttpHandler) PostSubm(w http.ResponseWriter, r *http.Request) {
	type createSubmRequest struct {
		FormData map[string]any `json:"form_data"`
	}

	actorUuid, actorRole, actorStateUt, err := actorFromRequest(r)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	var request createSubmRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	created, err := h.submSrvc.CreateSubm(r.Context(), submsrvc.CreateSubmParams{
		OwnerUUID: actorUuid,
		OwnerRole: actorRole,
		StateUt:   actorStateUt,
		FormData:  request.FormData,
	})
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	ctx := logger.WithSubmission(r.Context(), created.SubmID)
	logger.FromContext(ctx).Info("submission created",
		"owner_uuid", actorUuid,
		"state_ut", created.StateUt)

	httpjson.WriteSuccessJson(w, mapDetailedSubmView(created, actorRole))
}
