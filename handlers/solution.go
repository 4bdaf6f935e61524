// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/proxy-solver/cliparse"
	"github.com/danielhkuo/proxy-solver/middleware"
	"github.com/danielhkuo/proxy-solver/models"
	"github.com/danielhkuo/proxy-solver/solver"
)

type SolutionHandler struct {
	cfg cliparse.Config
}

func NewSolutionHandler(cfg cliparse.Config) *SolutionHandler {
	return &SolutionHandler{cfg: cfg}
}

// Ready handles GET /health/ready
// Lets a sleeping host wake up before the first solve
func (h *SolutionHandler) Ready(w http.ResponseWriter, r *http.Request) {
	slog.Info("ready")
	w.WriteHeader(http.StatusNoContent)
}

// PostSolution handles POST /solution
// The solution is deterministic for a given problem
func (h *SolutionHandler) PostSolution(w http.ResponseWriter, r *http.Request) {
	var problem models.ProxyProblem
	if err := middleware.ParseJSONBody(r, &problem); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if err := solver.Validate(problem); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	solution := solveAndLog(problem)

	middleware.JSONResponse(w, http.StatusOK, solution)
}

// solveAndLog runs the solver with problem and solution metrics logged
func solveAndLog(problem models.ProxyProblem) models.ProxySolution {
	slog.Info("defined problem", "metrics", solver.Metrics(problem, models.ProxySolution{}))
	solution := solver.Resolve(problem)
	slog.Info("found solution", "metrics", solver.Metrics(problem, solution))
	return solution
}
