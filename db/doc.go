// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the meeting store and manages its schema.

# Drivers

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - sqlite: modernc.org/sqlite (pure Go, default), e.g. "file:proxy-solver.db"
    or ":memory:" in tests
  - postgres: github.com/lib/pq

Queries use $N placeholders, which both drivers accept.

# Schema

CreateSchema is idempotent (IF NOT EXISTS) and is run at startup:

	if err := db.CreateSchema(conn); err != nil {
		// handle
	}

Tables:

  - meeting: title, proxy capacity, attendance/proxy timestamps
  - member: roster entries with JSON-encoded ranked preferences
  - attendance: present member ids per meeting
  - proxy_snapshot: each computed ProxySolution, newest referenced by
    meeting.final_snapshot_id
*/
package db
