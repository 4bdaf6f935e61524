// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/proxy-solver/auth"
	"github.com/danielhkuo/proxy-solver/cliparse"
	"github.com/danielhkuo/proxy-solver/db"
	"github.com/danielhkuo/proxy-solver/models"
)

// TestDBURL is an in-memory SQLite database private to each connection
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: cliparse.DatabaseSQLite,
		AdminKeySalt: "test-admin-salt",
	}
}

// CreateTestMeeting creates a meeting in the database and returns its ID and admin key
func CreateTestMeeting(t *testing.T, db *sql.DB, cfg cliparse.Config, capacity int) (meetingID, adminKey string) {
	t.Helper()

	meetingID = auth.GenerateID()
	adminKey = auth.GenerateAdminKey(meetingID, cfg.AdminKeySalt)

	_, err := db.Exec(`
		INSERT INTO meeting (id, title, capacity, created_at)
		VALUES ($1, 'Test Meeting', $2, $3)
	`, meetingID, capacity, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test meeting: %v", err)
	}

	return meetingID, adminKey
}

// AddTestMembers inserts roster rows in the given order
func AddTestMembers(t *testing.T, db *sql.DB, meetingID string, members []models.RosterMember) {
	t.Helper()

	for i, m := range members {
		prefs := m.Preferences
		if prefs == nil {
			prefs = []string{}
		}
		encoded, _ := json.Marshal(prefs)
		_, err := db.Exec(`
			INSERT INTO member (meeting_id, id, first_name, last_name, roster_order, preferences)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, meetingID, m.ID, m.FirstName, m.LastName, i, string(encoded))
		if err != nil {
			t.Fatalf("Failed to create test member: %v", err)
		}
	}
}

// TakeTestAttendance records the present members and stamps the meeting
func TakeTestAttendance(t *testing.T, db *sql.DB, meetingID string, present ...string) {
	t.Helper()

	for _, id := range present {
		_, err := db.Exec(`
			INSERT INTO attendance (meeting_id, member_id) VALUES ($1, $2)
		`, meetingID, id)
		if err != nil {
			t.Fatalf("Failed to record test attendance: %v", err)
		}
	}

	_, err := db.Exec(`
		UPDATE meeting SET attendance_taken_at = $1 WHERE id = $2
	`, time.Now().UTC(), meetingID)
	if err != nil {
		t.Fatalf("Failed to stamp test attendance: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeRawRequest creates an HTTP test request with an unencoded body
func MakeRawRequest(method, path, body string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
