// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to the subset shared by SQLite and PostgreSQL.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Meetings
CREATE TABLE IF NOT EXISTS meeting (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    capacity INTEGER NOT NULL DEFAULT 0 CHECK (capacity >= 0),
    created_at TIMESTAMP NOT NULL,
    attendance_taken_at TIMESTAMP,
    proxies_assigned_at TIMESTAMP,
    final_snapshot_id TEXT
);

-- Roster (preferences is a JSON array of member ids, most preferred first)
CREATE TABLE IF NOT EXISTS member (
    meeting_id TEXT NOT NULL REFERENCES meeting(id) ON DELETE CASCADE,
    id TEXT NOT NULL,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    roster_order INTEGER NOT NULL,
    preferences TEXT NOT NULL,
    PRIMARY KEY (meeting_id, id)
);

CREATE INDEX IF NOT EXISTS idx_member_roster_order ON member(meeting_id, roster_order);

-- Attendance
CREATE TABLE IF NOT EXISTS attendance (
    meeting_id TEXT NOT NULL REFERENCES meeting(id) ON DELETE CASCADE,
    member_id TEXT NOT NULL,
    PRIMARY KEY (meeting_id, member_id)
);

-- Proxy Snapshots (payload is the JSON ProxySolution)
CREATE TABLE IF NOT EXISTS proxy_snapshot (
    id TEXT PRIMARY KEY,
    meeting_id TEXT NOT NULL REFERENCES meeting(id) ON DELETE CASCADE,
    computed_at TIMESTAMP NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_proxy_snapshot_meeting_id ON proxy_snapshot(meeting_id);
`
