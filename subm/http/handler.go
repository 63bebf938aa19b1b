package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/niri-portal/backend/subm/submsrvc"
	"github.com/niri-portal/backend/user"
	"github.com/niri-portal/backend/user/auth"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

type SubmHttpHandler struct {
	submSrvc *submsrvc.SubmSrvc
	userSrvc *user.UserSrvc

	// dashboard read-side cache and singleflight guard against stampedes
	dashCache *cache.Cache
	sfGroup   singleflight.Group
}

func NewSubmHttpHandler(
	submSrvc *submsrvc.SubmSrvc,
	userSrvc *user.UserSrvc,
) *SubmHttpHandler {
	c := cache.New(1*time.Second, 1*time.Minute)
	return &SubmHttpHandler{
		submSrvc:  submSrvc,
		userSrvc:  userSrvc,
		dashCache: c,
	}
}

func (h *SubmHttpHandler) RegisterRoutes(r *chi.Mux, jwtKey []byte) {
	r.Group(func(r chi.Router) {
		r.Use(auth.GetJwtAuthMiddleware(jwtKey))
		r.Post("/submissions", h.PostSubm)
		r.Get("/submissions", h.GetSubmList)
		r.Get("/submissions/{subm-uuid}", h.GetSubm)
		r.Post("/submissions/{subm-uuid}/actions/{action}", h.PostAction)
		r.Get("/submissions/{subm-uuid}/audit", h.GetSubmAudit)
		r.Get("/audit", h.GetActorAudit)
		r.Get("/dashboard", h.GetDashboard)
	})
}
