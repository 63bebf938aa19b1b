package http

import (
	"encoding/json"
	"net/http"

	"github.com/niri-portal/backend/httpjson"
	"github.com/niri-portal/backend/logger"
	"github.com/niri-portal/backend/user"
)

type UserView struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	StateUt  string `json:"state_ut,omitempty"`
}

func (h *UserHttpHandler) Register(w http.ResponseWriter, r *http.Request) {
	type registerRequest struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		StateUt  string `json:"state_ut"`
	}

	var request registerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	created, err := h.userSrvc.Register(r.Context(), user.RegisterParams{
		Username: request.Username,
		Email:    request.Email,
		Password: request.Password,
		Role:     request.Role,
		StateUt:  request.StateUt,
	})
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, viewFromUser(created))
}

func viewFromUser(u user.User) UserView {
	return UserView{
		UUID:     u.UUID.String(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		StateUt:  u.StateUt,
	}
}
