// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the proxy-solver API server.

proxy-solver assigns absent members of a meeting to present members who
vote on their behalf, following each absent member's ranked preferences,
and reports the quorum and supermajority thresholds the meeting can meet.

# Starting the Server

The server reads environment variables, a .env file, or CLI flags:

	ADMIN_KEY_SALT=secret go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --admin-salt secret

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for meeting admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:proxy-solver.db)
  - DEFAULT_CAPACITY (-c): Proxies per holder for new meetings, 0 = unbounded
  - LOG_LEVEL (--log-level): debug, info, warn, error (default: info)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - solver: Preference-cascade proxy assignment
  - rules: Quorum and amendment thresholds
  - handlers: HTTP request handlers (solution, rules, meetings)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Meeting ids and admin keys
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
