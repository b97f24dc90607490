// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Route Layout:

	/health, /ready        : Unauthenticated probes.
	/auth/*                : Registration and login.
	/org/{orgID}/*         : Tenant-scoped resources; requires a verified
	                         token and resolves the org scope from the path.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ledgerly/api/internal/auth"
	"github.com/ledgerly/api/internal/finance/category"
	"github.com/ledgerly/api/internal/finance/summary"
	"github.com/ledgerly/api/internal/finance/transaction"
	"github.com/ledgerly/api/internal/platform/config"
	"github.com/ledgerly/api/internal/platform/constants"
	"github.com/ledgerly/api/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (register, login, logout).
	Auth *auth.Handler

	// Category handles the org's transaction categories.
	Category *category.Handler

	// Transaction handles the org's ledger entries.
	Transaction *transaction.Handler

	// Summary handles the monthly aggregation read model.
	Summary *summary.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(appContext context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := NewRouter(appContext, cfg, log, verifier, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter assembles the middleware chain and route tree. Split from
// [NewServer] so end-to-end tests can drive the exact production routing
// through httptest without binding a socket.
func NewRouter(appContext context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(appContext))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Public API
	r.Mount("/auth", h.Auth.Routes())

	// # Tenant API
	// Everything below requires a verified principal and an org scope
	// resolved from the path. No membership check happens here; isolation
	// is enforced by org-scoped queries in every store.
	r.Route("/org/{orgID}", func(org chi.Router) {
		org.Use(middleware.RequireAuth)
		org.Use(middleware.OrgContext)

		org.Mount("/categories", h.Category.Routes())
		org.Mount("/transactions", h.Transaction.Routes())
		org.Mount("/summary", h.Summary.Routes())
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
