// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package solver

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/proxy-solver/models"
)

func member(id string, prefs ...string) models.MemberInfo {
	if prefs == nil {
		prefs = []string{}
	}
	return models.MemberInfo{ID: id, Preferences: prefs}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		problem           models.ProxyProblem
		wantRepresented   map[string]string
		wantUnrepresented []string
	}{
		{
			name:              "empty roster",
			problem:           models.ProxyProblem{Members: []models.MemberInfo{}, MembersPresent: []string{}},
			wantRepresented:   map[string]string{},
			wantUnrepresented: []string{},
		},
		{
			name: "everyone present",
			problem: models.ProxyProblem{
				Members:        []models.MemberInfo{member("A", "B"), member("B", "A")},
				MembersPresent: []string{"A", "B"},
			},
			wantRepresented:   map[string]string{},
			wantUnrepresented: []string{},
		},
		{
			name: "first choice available",
			problem: models.ProxyProblem{
				Capacity:       2,
				Members:        []models.MemberInfo{member("nunn", "reich", "whitney"), member("reich"), member("whitney")},
				MembersPresent: []string{"reich", "whitney"},
			},
			wantRepresented:   map[string]string{"nunn": "reich"},
			wantUnrepresented: []string{},
		},
		{
			name: "second choice available",
			problem: models.ProxyProblem{
				Capacity:       2,
				Members:        []models.MemberInfo{member("nunn", "reich", "whitney"), member("reich"), member("whitney")},
				MembersPresent: []string{"whitney"},
			},
			wantRepresented:   map[string]string{"nunn": "whitney"},
			wantUnrepresented: []string{"reich"},
		},
		{
			name: "absent member without preferences",
			problem: models.ProxyProblem{
				Members:        []models.MemberInfo{member("A", "B", "C"), member("B", "A"), member("C")},
				MembersPresent: []string{"B"},
			},
			wantRepresented:   map[string]string{"A": "B"},
			wantUnrepresented: []string{"C"},
		},
		{
			name: "unknown preference skipped",
			problem: models.ProxyProblem{
				Members:        []models.MemberInfo{member("A", "Z", "B"), member("B")},
				MembersPresent: []string{"B"},
			},
			wantRepresented:   map[string]string{"A": "B"},
			wantUnrepresented: []string{},
		},
		{
			name: "self reference skipped",
			problem: models.ProxyProblem{
				Members:        []models.MemberInfo{member("A", "A", "B"), member("B")},
				MembersPresent: []string{"B"},
			},
			wantRepresented:   map[string]string{"A": "B"},
			wantUnrepresented: []string{},
		},
		{
			name: "circular preferences between absentees",
			problem: models.ProxyProblem{
				Members:        []models.MemberInfo{member("A", "B"), member("B", "A"), member("C")},
				MembersPresent: []string{"C"},
			},
			wantRepresented:   map[string]string{},
			wantUnrepresented: []string{"A", "B"},
		},
		{
			name: "unknown present id ignored",
			problem: models.ProxyProblem{
				Members:        []models.MemberInfo{member("A", "ghost"), member("B")},
				MembersPresent: []string{"ghost", "B"},
			},
			wantRepresented:   map[string]string{},
			wantUnrepresented: []string{"A"},
		},
		{
			name: "capacity contention resolved by roster order",
			problem: models.ProxyProblem{
				Capacity: 1,
				Members: []models.MemberInfo{
					member("A", "P", "Q"),
					member("B", "P", "Q"),
					member("C", "P"),
					member("P"),
					member("Q"),
				},
				MembersPresent: []string{"P", "Q"},
			},
			wantRepresented:   map[string]string{"A": "P", "B": "Q"},
			wantUnrepresented: []string{"C"},
		},
		{
			name: "zero capacity is unbounded",
			problem: models.ProxyProblem{
				Members:        []models.MemberInfo{member("A", "P"), member("B", "P"), member("C", "P"), member("P")},
				MembersPresent: []string{"P"},
			},
			wantRepresented:   map[string]string{"A": "P", "B": "P", "C": "P"},
			wantUnrepresented: []string{},
		},
		{
			name: "duplicate roster entry keeps the first",
			problem: models.ProxyProblem{
				Members:        []models.MemberInfo{member("A", "B"), member("A", "C"), member("B"), member("C")},
				MembersPresent: []string{"B", "C"},
			},
			wantRepresented:   map[string]string{"A": "B"},
			wantUnrepresented: []string{},
		},
		{
			name: "unrepresented keeps roster order",
			problem: models.ProxyProblem{
				Members:        []models.MemberInfo{member("zed"), member("amy"), member("mo"), member("P")},
				MembersPresent: []string{"P"},
			},
			wantRepresented:   map[string]string{},
			wantUnrepresented: []string{"zed", "amy", "mo"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Resolve(tc.problem)
			assert.Equal(t, tc.wantRepresented, got.MembersRepresented)
			assert.Equal(t, tc.wantUnrepresented, got.MembersUnrepresented)
		})
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	problem := models.ProxyProblem{
		Capacity:       1,
		Members:        []models.MemberInfo{member("A", "B", "A"), member("A", "C"), member("B")},
		MembersPresent: []string{"B", "ghost"},
	}
	before, err := json.Marshal(problem)
	require.NoError(t, err)

	Resolve(problem)

	after, err := json.Marshal(problem)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestResolveIsDeterministic(t *testing.T) {
	t.Parallel()

	problem := randomProblem(rand.New(rand.NewSource(7)), 60, 2)

	first, err := json.Marshal(Resolve(problem))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := json.Marshal(Resolve(problem))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveSolutionShape(t *testing.T) {
	t.Parallel()

	const rosterSize = 40
	empty, err := json.Marshal(Resolve(models.ProxyProblem{Members: []models.MemberInfo{}, MembersPresent: []string{}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"members_represented":{},"members_unrepresented":[]}`, string(empty))

	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		capacity := rng.Intn(4)
		problem := randomProblem(rng, rosterSize, capacity)
		solution := Resolve(problem)
		checkInvariants(t, problem, solution)
	}
}

// Concurrent solves on a shared problem must agree with a serial solve.
func TestResolveConcurrent(t *testing.T) {
	t.Parallel()

	problem := randomProblem(rand.New(rand.NewSource(99)), 100, 3)
	want, err := json.Marshal(Resolve(problem))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = json.Marshal(Resolve(problem))
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, "goroutine %d disagreed", i)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		problem models.ProxyProblem
		wantErr error
	}{
		{
			name:    "valid",
			problem: models.ProxyProblem{Capacity: 2, Members: []models.MemberInfo{member("A", "Z")}, MembersPresent: []string{"nobody"}},
		},
		{
			name:    "empty lists are valid",
			problem: models.ProxyProblem{Members: []models.MemberInfo{}, MembersPresent: []string{}},
		},
		{
			name:    "negative capacity",
			problem: models.ProxyProblem{Capacity: -1, Members: []models.MemberInfo{}, MembersPresent: []string{}},
			wantErr: ErrNegativeCapacity,
		},
		{
			name:    "missing members",
			problem: models.ProxyProblem{MembersPresent: []string{}},
			wantErr: ErrMembersRequired,
		},
		{
			name:    "missing members_present",
			problem: models.ProxyProblem{Members: []models.MemberInfo{}},
			wantErr: ErrPresentRequired,
		},
		{
			name:    "empty member id",
			problem: models.ProxyProblem{Members: []models.MemberInfo{member("")}, MembersPresent: []string{}},
			wantErr: ErrMemberIDRequired,
		},
		{
			name:    "missing preferences",
			problem: models.ProxyProblem{Members: []models.MemberInfo{{ID: "A"}}, MembersPresent: []string{}},
			wantErr: ErrPreferencesRequired,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tc.problem)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	problem := models.ProxyProblem{
		Capacity:       2,
		Members:        []models.MemberInfo{member("A", "B", "C"), member("B", "A"), member("C"), member("C")},
		MembersPresent: []string{"B", "ghost"},
	}
	metrics := Metrics(problem, Resolve(problem))

	assert.Equal(t, models.ProxyMetrics{
		Capacity:      2,
		Total:         3,
		Present:       1,
		Absent:        2,
		Represented:   1,
		Unrepresented: 1,
	}, metrics)
}

// checkInvariants asserts completeness, no self proxy, present-only holders,
// preference precedence and capacity.
func checkInvariants(t *testing.T, problem models.ProxyProblem, solution models.ProxySolution) {
	t.Helper()

	present := make(map[string]bool)
	for _, id := range problem.MembersPresent {
		present[id] = true
	}

	seen := make(map[string]bool)
	for _, id := range solution.MembersUnrepresented {
		require.False(t, seen[id], "duplicate unrepresented %s", id)
		seen[id] = true
		_, represented := solution.MembersRepresented[id]
		require.False(t, represented, "%s both represented and unrepresented", id)
	}

	load := make(map[string]int)
	for absent, holder := range solution.MembersRepresented {
		require.NotEqual(t, absent, holder, "self proxy")
		require.True(t, present[holder], "holder %s not present", holder)
		require.False(t, present[absent], "present member %s was assigned", absent)
		load[holder]++
	}
	if problem.Capacity > 0 {
		for holder, n := range load {
			require.LessOrEqual(t, n, problem.Capacity, "holder %s over capacity", holder)
		}
	}

	absent := 0
	for _, m := range problem.Members {
		if present[m.ID] {
			continue
		}
		absent++
		_, represented := solution.MembersRepresented[m.ID]
		require.True(t, represented != seen[m.ID], "%s must be in exactly one output", m.ID)

		// With no cap, the first present non-self preference always wins.
		if problem.Capacity == 0 {
			for _, p := range m.Preferences {
				if p != m.ID && present[p] {
					require.Equal(t, p, solution.MembersRepresented[m.ID])
					break
				}
			}
		}
	}
	require.Equal(t, absent, len(solution.MembersRepresented)+len(solution.MembersUnrepresented))
}

// randomProblem builds a roster of unique ids with ranked preferences that
// include self references and unknown ids.
func randomProblem(rng *rand.Rand, size, capacity int) models.ProxyProblem {
	ids := make([]string, size)
	for i := range ids {
		ids[i] = fmt.Sprintf("m%03d", i)
	}

	members := make([]models.MemberInfo, size)
	var present []string
	for i, id := range ids {
		prefs := []string{}
		for n := rng.Intn(5); n > 0; n-- {
			switch rng.Intn(10) {
			case 0:
				prefs = append(prefs, id)
			case 1:
				prefs = append(prefs, "unknown")
			default:
				prefs = append(prefs, ids[rng.Intn(size)])
			}
		}
		members[i] = models.MemberInfo{ID: id, Preferences: prefs}
		if rng.Intn(3) == 0 {
			present = append(present, id)
		}
	}
	if present == nil {
		present = []string{}
	}

	return models.ProxyProblem{Capacity: capacity, Members: members, MembersPresent: present}
}
