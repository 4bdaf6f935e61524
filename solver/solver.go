// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package solver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/proxy-solver/models"
)

var (
	ErrNegativeCapacity    = errors.New("capacity must be a non-negative integer")
	ErrMembersRequired     = errors.New("members is required")
	ErrPresentRequired     = errors.New("members_present is required")
	ErrMemberIDRequired    = errors.New("member id is required")
	ErrPreferencesRequired = errors.New("preferences is required")
)

// Validate checks the shape of a problem before it reaches Resolve.
// Unknown ids in preferences or members_present are not errors.
func Validate(problem models.ProxyProblem) error {
	if problem.Capacity < 0 {
		return ErrNegativeCapacity
	}
	if problem.Members == nil {
		return ErrMembersRequired
	}
	if problem.MembersPresent == nil {
		return ErrPresentRequired
	}
	for i, m := range problem.Members {
		if m.ID == "" {
			return fmt.Errorf("members[%d]: %w", i, ErrMemberIDRequired)
		}
		if m.Preferences == nil {
			return fmt.Errorf("members[%d] %q: %w", i, m.ID, ErrPreferencesRequired)
		}
	}
	return nil
}

// Resolve assigns every absent member to the first present member in their
// preference list that still has room, or reports them unrepresented.
//
// Absent members are visited in roster order, so when capacity is contended
// the earlier roster entry keeps the holder. No global rebalancing is done.
// Resolve never mutates its input and returns the same solution for the same
// problem.
func Resolve(problem models.ProxyProblem) models.ProxySolution {
	roster := uniqueMembers(problem.Members)
	present := presentSet(roster, problem.MembersPresent)

	solution := models.ProxySolution{
		MembersRepresented:   make(map[string]string),
		MembersUnrepresented: []string{},
	}

	// held counts proxies per holder; only consulted when capacity > 0
	held := make(map[string]int)

	for _, member := range roster {
		if present[member.ID] {
			continue
		}

		holder, ok := firstEligible(member, present, held, problem.Capacity)
		if !ok {
			solution.MembersUnrepresented = append(solution.MembersUnrepresented, member.ID)
			continue
		}

		held[holder]++
		solution.MembersRepresented[member.ID] = holder
		slog.Debug("proxy assigned", "proxy_for", member.ID, "proxied_by", holder)
	}

	return solution
}

// Metrics sizes a problem and its solution for logging.
func Metrics(problem models.ProxyProblem, solution models.ProxySolution) models.ProxyMetrics {
	roster := uniqueMembers(problem.Members)
	present := presentSet(roster, problem.MembersPresent)

	return models.ProxyMetrics{
		Capacity:      problem.Capacity,
		Total:         len(roster),
		Present:       len(present),
		Absent:        len(roster) - len(present),
		Represented:   len(solution.MembersRepresented),
		Unrepresented: len(solution.MembersUnrepresented),
	}
}

// firstEligible walks preferences in rank order. Self references, unknown
// ids and absent members are skipped.
func firstEligible(member models.MemberInfo, present map[string]bool, held map[string]int, capacity int) (string, bool) {
	for _, candidate := range member.Preferences {
		if candidate == member.ID || !present[candidate] {
			continue
		}
		if capacity > 0 && held[candidate] >= capacity {
			continue
		}
		return candidate, true
	}
	return "", false
}

// uniqueMembers keeps the first entry for each id, in roster order
func uniqueMembers(members []models.MemberInfo) []models.MemberInfo {
	seen := make(map[string]bool, len(members))
	roster := make([]models.MemberInfo, 0, len(members))
	for _, m := range members {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		roster = append(roster, m)
	}
	return roster
}

// presentSet intersects the attendance list with the roster
func presentSet(roster []models.MemberInfo, membersPresent []string) map[string]bool {
	known := make(map[string]bool, len(roster))
	for _, m := range roster {
		known[m.ID] = true
	}

	present := make(map[string]bool, len(membersPresent))
	for _, id := range membersPresent {
		if known[id] {
			present[id] = true
		}
	}
	return present
}
