// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/proxy-solver/cliparse"
	"github.com/danielhkuo/proxy-solver/handlers"
	"github.com/danielhkuo/proxy-solver/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	solutionHandler := handlers.NewSolutionHandler(cfg)
	rulesHandler := handlers.NewRulesHandler()
	meetingHandler := handlers.NewMeetingHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /health/ready", middleware.WithLogging(solutionHandler.Ready))

	// Stateless solving
	mux.HandleFunc("POST /solution", middleware.WithLogging(solutionHandler.PostSolution))
	mux.HandleFunc("GET /rules", middleware.WithLogging(rulesHandler.GetRules))

	// Meeting management (admin operations)
	mux.HandleFunc("POST /meetings", middleware.WithLogging(meetingHandler.CreateMeeting))
	mux.HandleFunc("PUT /meetings/{id}/members", middleware.WithLogging(meetingHandler.ReplaceMembers))
	mux.HandleFunc("PUT /meetings/{id}/attendance", middleware.WithLogging(meetingHandler.ReplaceAttendance))
	mux.HandleFunc("POST /meetings/{id}/proxies", middleware.WithLogging(meetingHandler.AssignProxies))
	mux.HandleFunc("GET /meetings/{id}/roster", middleware.WithLogging(meetingHandler.GetRoster))

	// Meeting status (public)
	mux.HandleFunc("GET /meetings/{id}", middleware.WithLogging(meetingHandler.GetMeeting))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("proxy-solver API v1"))
	})

	return mux
}
