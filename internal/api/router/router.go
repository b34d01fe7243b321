package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/awnationwide/lead-intake/internal/chatbot"
	"github.com/awnationwide/lead-intake/internal/http/handlers"
	httpmiddleware "github.com/awnationwide/lead-intake/internal/http/middleware"
	"github.com/awnationwide/lead-intake/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	IntakeHandler  *handlers.IntakeHandler
	ChatHandler    *chatbot.Handler
	MetricsHandler http.Handler
	Allowlist      httpmiddleware.Allowlist
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(httpmiddleware.CORS(cfg.Allowlist))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.IntakeHandler != nil {
		r.Route("/intake", func(r chi.Router) {
			r.Get("/", cfg.IntakeHandler.Status)
			r.Post("/", cfg.IntakeHandler.Submit)
		})
	}

	if cfg.ChatHandler != nil {
		r.Route("/chat", func(r chi.Router) {
			r.Get("/", cfg.ChatHandler.Status)
			r.Post("/", cfg.ChatHandler.Converse)
		})
	}

	return r
}
