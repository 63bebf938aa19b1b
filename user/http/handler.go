package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/niri-portal/backend/user"
	"github.com/niri-portal/backend/user/auth"
)

type UserHttpHandler struct {
	userSrvc *user.UserSrvc
	jwtKey   []byte
}

func NewUserHttpHandler(userSrvc *user.UserSrvc, jwtKey []byte) *UserHttpHandler {
	return &UserHttpHandler{
		userSrvc: userSrvc,
		jwtKey:   jwtKey,
	}
}

func (h *UserHttpHandler) RegisterRoutes(r *chi.Mux) {
	r.Post("/users", h.Register)
	r.Post("/auth/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(auth.GetJwtAuthMiddleware(h.jwtKey))
		r.Get("/auth/whoami", h.Whoami)
	})
}
