package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/auth"
	"github.com/nalharbi/inspection-management/internal/manager"
	"github.com/nalharbi/inspection-management/internal/round"
	"github.com/nalharbi/inspection-management/internal/transport/middleware"
	"github.com/nalharbi/inspection-management/internal/transport/swagger"
)

// RegisterAllRoutes wires global middleware and the API route table.
//
// Bearer gating is applied per-route and preserves the observed policy
// exactly: registration, manager update, and every round route require a
// token; login, logout, and the remaining manager routes do not.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	cfg *internal.Config,
	authHandler *auth.Handler,
	managerHandler *manager.Handler,
	roundHandler *round.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.Origins(),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
	}))
	router.Use(httprate.LimitByIP(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Recovery(logger))

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	gate := authHandler.AuthMiddleware

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(ar chi.Router) {
			ar.With(gate).Post("/register", authHandler.Register)
			ar.Post("/login", authHandler.Login)
			ar.Post("/logout", authHandler.Logout)
		})

		r.Route("/managers", func(mr chi.Router) {
			mr.Post("/", managerHandler.CreateManager)
			mr.Get("/", managerHandler.ListManagers)
			mr.Get("/{id}", managerHandler.GetManager)
			mr.Get("/{id}/summary", managerHandler.GetSummary)
			mr.With(gate).Put("/{id}", managerHandler.UpdateManager)
			mr.Delete("/{id}", managerHandler.DeleteManager)
		})

		r.Route("/rounds", func(rr chi.Router) {
			rr.Use(gate)
			rr.Post("/", roundHandler.CreateRound)
			rr.Get("/", roundHandler.ListRounds)
			rr.Get("/{id}", roundHandler.GetRound)
		})
	})
}
