// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the proxy-solver API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health
	GET /health/ready - 204, used to wake a sleeping host

Solving (public, stateless):

	POST /solution - Assign proxies for one problem
	GET  /rules    - Thresholds for ?total=&present=&represented=

Meeting management (admin, requires X-Admin-Key):

	POST /meetings                 - Create meeting
	PUT  /meetings/{id}/members    - Replace roster
	PUT  /meetings/{id}/attendance - Replace present list
	POST /meetings/{id}/proxies    - Solve and snapshot
	GET  /meetings/{id}/roster     - Roster with attendance and holders

Meeting status (public):

	GET /meetings/{id} - Counts, timestamps, rules report
*/
package router
