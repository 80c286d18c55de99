package server

import (
	"net/http"

	"github.com/fedutinova/careerchat/internal/config"
	httpapi "github.com/fedutinova/careerchat/internal/transport/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *httpapi.Handlers, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	// CORS must run before anything that can reject a preflight
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Chat-ID", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.Routers(r)
	return r
}
