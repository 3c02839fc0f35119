package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/tranvq/shiftlog/internal/handler/http/middleware"
)

func NewRouter(webhookHandler WebhookHandler, shiftsHandler ShiftsHandler, webhookSecret string, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftlog"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/telegram", func(r chi.Router) {
		r.Use(middleware.WebhookSecret(webhookSecret))
		r.Post("/webhook", webhookHandler.Receive)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Read-only surface for the public dashboard.
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/shifts/recent", shiftsHandler.Recent)
	})

	return r
}
