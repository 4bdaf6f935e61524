// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the proxy-solver API.

# Handler Types

Each handler is a struct with its dependencies:

  - SolutionHandler: Stateless proxy solving and readiness probe
  - RulesHandler: Governance thresholds for arbitrary counts
  - MeetingHandler: Stored rosters, attendance, and proxy snapshots

Handlers are created via constructor functions:

	meetingHandler := handlers.NewMeetingHandler(db, cfg)

# Solving

POST /solution takes a complete problem and returns the assignment:

	{"capacity": 1, "members": [...], "members_present": [...]}

The body is decoded strictly; unknown fields, a missing members or
members_present array, or a negative capacity are rejected with 400.

# Meeting Lifecycle

	POST /meetings                  → CreateMeeting (returns admin_key)
	PUT  /meetings/{id}/members     → ReplaceMembers
	PUT  /meetings/{id}/attendance  → ReplaceAttendance
	POST /meetings/{id}/proxies     → AssignProxies (stores a snapshot)
	GET  /meetings/{id}             → GetMeeting (counts and rules report)
	GET  /meetings/{id}/roster      → GetRoster

Replacing the roster clears attendance, and taking attendance clears the
previous proxy assignment. All routes except GetMeeting require the
X-Admin-Key header.
*/
package handlers
