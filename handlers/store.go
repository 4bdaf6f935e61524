// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/proxy-solver/models"
)

// getMeeting retrieves a meeting row; sql.ErrNoRows when missing
func getMeeting(db *sql.DB, meetingID string) (models.Meeting, error) {
	var m models.Meeting
	err := db.QueryRow(`
		SELECT id, title, capacity, created_at, attendance_taken_at,
		       proxies_assigned_at, final_snapshot_id
		FROM meeting
		WHERE id = $1
	`, meetingID).Scan(
		&m.ID, &m.Title, &m.Capacity, &m.CreatedAt, &m.AttendanceTakenAt,
		&m.ProxiesAssignedAt, &m.FinalSnapshotID,
	)
	return m, err
}

// getRoster retrieves members in the order they were submitted
func getRoster(db *sql.DB, meetingID string) ([]models.RosterMember, error) {
	rows, err := db.Query(`
		SELECT id, first_name, last_name, preferences
		FROM member
		WHERE meeting_id = $1
		ORDER BY roster_order
	`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roster := []models.RosterMember{}
	for rows.Next() {
		var m models.RosterMember
		var prefs string
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &prefs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(prefs), &m.Preferences); err != nil {
			return nil, fmt.Errorf("member %s preferences: %w", m.ID, err)
		}
		if m.Preferences == nil {
			m.Preferences = []string{}
		}
		roster = append(roster, m)
	}

	return roster, rows.Err()
}

// getAttendance retrieves the present member ids, sorted by id
func getAttendance(db *sql.DB, meetingID string) ([]string, error) {
	rows, err := db.Query(`
		SELECT member_id FROM attendance WHERE meeting_id = $1 ORDER BY member_id
	`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	present := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		present = append(present, id)
	}

	return present, rows.Err()
}

// getSnapshot decodes a stored proxy solution
func getSnapshot(db *sql.DB, snapshotID string) (models.ProxySolution, error) {
	var payload string
	err := db.QueryRow(`
		SELECT payload FROM proxy_snapshot WHERE id = $1
	`, snapshotID).Scan(&payload)
	if err != nil {
		return models.ProxySolution{}, err
	}

	var solution models.ProxySolution
	if err := json.Unmarshal([]byte(payload), &solution); err != nil {
		return models.ProxySolution{}, fmt.Errorf("snapshot %s payload: %w", snapshotID, err)
	}
	return solution, nil
}

// countRows runs a COUNT(*) query scoped to one meeting
func countRows(db *sql.DB, query, meetingID string) (int, error) {
	var n int
	err := db.QueryRow(query, meetingID).Scan(&n)
	return n, err
}

// toProblem projects a stored roster onto the solver input
func toProblem(capacity int, roster []models.RosterMember, present []string) models.ProxyProblem {
	members := make([]models.MemberInfo, len(roster))
	for i, m := range roster {
		members[i] = models.MemberInfo{ID: m.ID, Preferences: m.Preferences}
	}
	return models.ProxyProblem{
		Capacity:       capacity,
		Members:        members,
		MembersPresent: present,
	}
}
