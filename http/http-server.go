package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	submhttp "github.com/niri-portal/backend/subm/http"
	userhttp "github.com/niri-portal/backend/user/http"
)

type HttpServer struct {
	router *chi.Mux
}

func NewHttpServer(
	submHandler *submhttp.SubmHttpHandler,
	userHandler *userhttp.UserHttpHandler,
	jwtKey []byte,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("niri-portal", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
		Tags: map[string]string{
			"env": "dev",
		},
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	userHandler.RegisterRoutes(router)
	submHandler.RegisterRoutes(router, jwtKey)

	return &HttpServer{router: router}
}

func (s *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, s.router)
}
