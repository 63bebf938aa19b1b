package http

import (
	"encoding/json"
	"net/http"

	"github.com/niri-portal/backend/httpjson"
	"github.com/niri-portal/backend/logger"
	"github.com/niri-portal/backend/user"
	"github.com/niri-portal/backend/user/auth"
)

func (h *UserHttpHandler) Login(w http.ResponseWriter, r *http.Request) {
	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	account, err := h.userSrvc.Login(r.Context(), user.LoginParams{
		Username: request.Username,
		Password: request.Password,
	})
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	token, err := auth.GenerateJWT(account.Username, account.UUID, account.Role, account.StateUt, h.jwtKey)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	type loginResponse struct {
		Token string   `json:"token"`
		User  UserView `json:"user"`
	}
	httpjson.WriteSuccessJson(w, loginResponse{
		Token: token,
		User:  viewFromUser(account),
	})
}
