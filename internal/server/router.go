package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/luxmikant/ryzl/internal/config"
	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/server/handler"
	"github.com/luxmikant/ryzl/internal/storage"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, store storage.Store, dispatcher core.JobDispatcher, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		reviewHandler := handler.NewReviewHandler(store, dispatcher, logger)
		r.Post("/reviews", reviewHandler.Submit)
		r.Get("/reviews/{id}", reviewHandler.Get)

		webhookHandler := handler.NewWebhookHandler(cfg, store, dispatcher, logger)
		r.Post("/github/webhook", webhookHandler.Handle)
	})

	return r
}
