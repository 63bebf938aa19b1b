package http

import (
	"net/http"

	"github.com/niri-portal/backend/httpjson"
	"github.com/niri-portal/backend/user/auth"
)

// Whoami returns the identity baked into the caller's token. Anonymous
// callers get the guest role so the UI can render a login prompt.
func (h *UserHttpHandler) Whoami(w http.ResponseWriter, r *http.Request) {
	type whoamiResponse struct {
		Username string `json:"username,omitempty"`
		UUID     string `json:"uuid,omitempty"`
		Role     string `json:"role"`
		StateUt  string `json:"state_ut,omitempty"`
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpjson.WriteSuccessJson(w, whoamiResponse{Role: "guest"})
		return
	}

	httpjson.WriteSuccessJson(w, whoamiResponse{
		Username: claims.Username,
		UUID:     claims.UUID,
		Role:     claims.Role,
		StateUt:  claims.StateUt,
	})
}
