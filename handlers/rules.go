// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielhkuo/proxy-solver/middleware"
	"github.com/danielhkuo/proxy-solver/models"
	"github.com/danielhkuo/proxy-solver/rules"
)

type RulesHandler struct{}

func NewRulesHandler() *RulesHandler {
	return &RulesHandler{}
}

// GetRules handles GET /rules?total=&present=&represented=
// total is required; present and represented default to 0
func (h *RulesHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("total") == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "total is required")
		return
	}

	var counts models.RuleCounts
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"total", &counts.Total},
		{"present", &counts.Present},
		{"represented", &counts.Represented},
	} {
		n, err := queryCount(query, p.name)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		*p.dst = n
	}

	report, err := rules.Evaluate(counts)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Debug("rules evaluated", "total", counts.Total, "present", counts.Present, "represented", counts.Represented)

	middleware.JSONResponse(w, http.StatusOK, report)
}

// queryCount reads a non-negative integer parameter, 0 when absent
func queryCount(query url.Values, name string) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}
