// Package server exposes the planner over HTTP for frontend clients:
// JWT-authenticated timer session transitions, statistics reports and
// the heatmap grid as JSON.
package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/timeblockhq/timeblock/internal/config"
	"github.com/timeblockhq/timeblock/internal/db"
	"github.com/timeblockhq/timeblock/internal/stats"
	"github.com/timeblockhq/timeblock/internal/timer"
)

// Server wires the HTTP surface to the storage services.
type Server struct {
	addr   string
	tokens *TokenService
	engine *stats.Engine
	clock  timer.Clock
}

// New builds a server from the configuration.
func New(cfg *config.Config) (*Server, error) {
	if cfg.Server.JWTSecret == "" {
		return nil, fmt.Errorf("server.jwt_secret must be set to run the API")
	}
	ttl := time.Duration(cfg.Server.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Server{
		addr:   cfg.Server.Addr,
		tokens: NewTokenService(cfg.Server.JWTSecret, ttl),
		engine: stats.New(db.StatsSource{}),
		clock:  timer.System,
	}, nil
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(logRequests)

	// Open routes
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	// Everything else requires a token
	api := router.PathPrefix("/api").Subrouter()
	api.Use(s.withAuth)

	sessions := api.PathPrefix("/timer-sessions").Subrouter()
	sessions.HandleFunc("", s.handleStartSession).Methods(http.MethodPost)
	sessions.HandleFunc("/active", s.handleActiveSession).Methods(http.MethodGet)
	sessions.HandleFunc("/today", s.handleTodaySessions).Methods(http.MethodGet)
	sessions.HandleFunc("/{id:[0-9]+}/pause", s.handlePause).Methods(http.MethodPost)
	sessions.HandleFunc("/{id:[0-9]+}/resume", s.handleResume).Methods(http.MethodPost)
	sessions.HandleFunc("/{id:[0-9]+}/complete", s.handleComplete).Methods(http.MethodPost)
	sessions.HandleFunc("/{id:[0-9]+}/cancel", s.handleCancel).Methods(http.MethodPost)
	sessions.HandleFunc("/{id:[0-9]+}/update-elapsed", s.handleUpdateElapsed).Methods(http.MethodPost)

	statsRouter := api.PathPrefix("/stats").Subrouter()
	statsRouter.HandleFunc("/daily", s.handleDailyStats).Methods(http.MethodGet)
	statsRouter.HandleFunc("/weekly", s.handleWeeklyStats).Methods(http.MethodGet)
	statsRouter.HandleFunc("/monthly", s.handleMonthlyStats).Methods(http.MethodGet)
	statsRouter.HandleFunc("/heatmap", s.handleHeatmap).Methods(http.MethodGet)

	api.HandleFunc("/plans/{id:[0-9]+}/recalculate", s.handleRecalculate).Methods(http.MethodPost)

	return router
}

// Run blocks serving the API.
func (s *Server) Run() error {
	log.Printf("timeblock API listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Router())
}
