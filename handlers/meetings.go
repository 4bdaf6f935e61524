// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"cmp"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/proxy-solver/auth"
	"github.com/danielhkuo/proxy-solver/cliparse"
	"github.com/danielhkuo/proxy-solver/middleware"
	"github.com/danielhkuo/proxy-solver/models"
	"github.com/danielhkuo/proxy-solver/rules"
	"github.com/danielhkuo/proxy-solver/solver"
)

type MeetingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewMeetingHandler(db *sql.DB, cfg cliparse.Config) *MeetingHandler {
	return &MeetingHandler{db: db, cfg: cfg}
}

// CreateMeeting handles POST /meetings
func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMeetingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	capacity := h.cfg.DefaultCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if capacity < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "capacity must be a non-negative integer")
		return
	}

	meetingID := auth.GenerateID()
	adminKey := auth.GenerateAdminKey(meetingID, h.cfg.AdminKeySalt)

	_, err := h.db.Exec(`
		INSERT INTO meeting (id, title, capacity, created_at)
		VALUES ($1, $2, $3, $4)
	`, meetingID, req.Title, capacity, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert meeting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create meeting")
		return
	}

	slog.Info("meeting created", "meeting_id", meetingID, "capacity", capacity)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateMeetingResponse{
		MeetingID: meetingID,
		AdminKey:  adminKey,
	})
}

// ReplaceMembers handles PUT /meetings/:id/members
// Replacing the roster discards attendance and proxy assignments
func (h *MeetingHandler) ReplaceMembers(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.ReplaceMembersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.Members == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "members is required")
		return
	}

	seen := make(map[string]bool, len(req.Members))
	for _, m := range req.Members {
		if m.ID == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "member id is required")
			return
		}
		if seen[m.ID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "duplicate member id: "+m.ID)
			return
		}
		seen[m.ID] = true
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM attendance WHERE meeting_id = $1`,
		`DELETE FROM member WHERE meeting_id = $1`,
		`UPDATE meeting
		 SET attendance_taken_at = NULL, proxies_assigned_at = NULL, final_snapshot_id = NULL
		 WHERE id = $1`,
	} {
		if _, err := tx.Exec(stmt, meetingID); err != nil {
			slog.Error("failed to reset roster", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to replace members")
			return
		}
	}

	for i, m := range req.Members {
		prefs := m.Preferences
		if prefs == nil {
			prefs = []string{}
		}
		encoded, err := json.Marshal(prefs)
		if err != nil {
			slog.Error("failed to encode preferences", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to replace members")
			return
		}

		_, err = tx.Exec(`
			INSERT INTO member (meeting_id, id, first_name, last_name, roster_order, preferences)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, meetingID, m.ID, m.FirstName, m.LastName, i, string(encoded))
		if err != nil {
			slog.Error("failed to insert member", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to replace members")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to replace members")
		return
	}

	slog.Info("roster replaced", "meeting_id", meetingID, "total", len(req.Members))

	middleware.JSONResponse(w, http.StatusOK, models.ReplaceMembersResponse{
		Total: len(req.Members),
	})
}

// ReplaceAttendance handles PUT /meetings/:id/attendance
// Taking attendance again invalidates the previous proxy assignment
func (h *MeetingHandler) ReplaceAttendance(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.ReplaceAttendanceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.MembersPresent == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "members_present is required")
		return
	}

	roster, err := getRoster(h.db, meetingID)
	if err != nil {
		slog.Error("failed to query roster", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	known := make(map[string]bool, len(roster))
	for _, m := range roster {
		known[m.ID] = true
	}

	// Stored attendance must be a subset of the roster
	present := []string{}
	seen := make(map[string]bool, len(req.MembersPresent))
	for _, id := range req.MembersPresent {
		if !known[id] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown member id: "+id)
			return
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		present = append(present, id)
	}

	takenAt := time.Now().UTC()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM attendance WHERE meeting_id = $1`, meetingID); err != nil {
		slog.Error("failed to clear attendance", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record attendance")
		return
	}

	for _, id := range present {
		_, err := tx.Exec(`
			INSERT INTO attendance (meeting_id, member_id) VALUES ($1, $2)
		`, meetingID, id)
		if err != nil {
			slog.Error("failed to insert attendance", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record attendance")
			return
		}
	}

	_, err = tx.Exec(`
		UPDATE meeting
		SET attendance_taken_at = $1, proxies_assigned_at = NULL, final_snapshot_id = NULL
		WHERE id = $2
	`, takenAt, meetingID)
	if err != nil {
		slog.Error("failed to stamp attendance", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record attendance")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record attendance")
		return
	}

	slog.Info("attendance taken", "meeting_id", meetingID, "present", len(present))

	middleware.JSONResponse(w, http.StatusOK, models.ReplaceAttendanceResponse{
		Present:           len(present),
		AttendanceTakenAt: takenAt,
	})
}

// AssignProxies handles POST /meetings/:id/proxies
// Solves against the stored roster and attendance and records a snapshot
func (h *MeetingHandler) AssignProxies(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	meeting, err := getMeeting(h.db, meetingID)
	if err != nil {
		slog.Error("failed to query meeting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if meeting.AttendanceTakenAt == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Attendance has not been taken")
		return
	}

	roster, err := getRoster(h.db, meetingID)
	if err != nil {
		slog.Error("failed to query roster", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	present, err := getAttendance(h.db, meetingID)
	if err != nil {
		slog.Error("failed to query attendance", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	problem := toProblem(meeting.Capacity, roster, present)
	if err := solver.Validate(problem); err != nil {
		slog.Error("stored meeting is not solvable", "meeting_id", meetingID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Stored roster is invalid")
		return
	}
	solution := solveAndLog(problem)

	payload, err := json.Marshal(solution)
	if err != nil {
		slog.Error("failed to encode solution", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save proxies")
		return
	}

	snapshotID := auth.GenerateID()
	computedAt := time.Now().UTC()

	// Begin transaction
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO proxy_snapshot (id, meeting_id, computed_at, payload)
		VALUES ($1, $2, $3, $4)
	`, snapshotID, meetingID, computedAt, string(payload))
	if err != nil {
		slog.Error("failed to insert snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save proxies")
		return
	}

	_, err = tx.Exec(`
		UPDATE meeting
		SET proxies_assigned_at = $1, final_snapshot_id = $2
		WHERE id = $3
	`, computedAt, snapshotID, meetingID)
	if err != nil {
		slog.Error("failed to stamp proxies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save proxies")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save proxies")
		return
	}

	slog.Info("proxies assigned", "meeting_id", meetingID, "snapshot_id", snapshotID)

	middleware.JSONResponse(w, http.StatusOK, models.AssignProxiesResponse{
		SnapshotID: snapshotID,
		ComputedAt: computedAt,
		Solution:   solution,
		Metrics:    solver.Metrics(problem, solution),
	})
}

// GetMeeting handles GET /meetings/:id
// Returns counts, humanized timestamps, and the governance rules report
func (h *MeetingHandler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := meetingIDFromPath(w, r)
	if !ok {
		return
	}

	meeting, err := getMeeting(h.db, meetingID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Meeting not found")
		return
	}
	if err != nil {
		slog.Error("failed to query meeting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	total, err := countRows(h.db, `SELECT COUNT(*) FROM member WHERE meeting_id = $1`, meetingID)
	if err != nil {
		slog.Error("failed to count members", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	present, err := countRows(h.db, `SELECT COUNT(*) FROM attendance WHERE meeting_id = $1`, meetingID)
	if err != nil {
		slog.Error("failed to count attendance", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	represented := 0
	if meeting.FinalSnapshotID != nil {
		solution, err := getSnapshot(h.db, *meeting.FinalSnapshotID)
		if err != nil {
			slog.Error("failed to load snapshot", "snapshot_id", *meeting.FinalSnapshotID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		represented = len(solution.MembersRepresented)
	}

	report, err := rules.Evaluate(models.RuleCounts{
		Present:     present,
		Represented: represented,
		Total:       total,
	})
	if err != nil {
		slog.Error("failed to evaluate rules", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to evaluate rules")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeetingStatusResponse{
		Meeting:         meeting,
		Total:           total,
		Present:         present,
		Represented:     represented,
		AttendanceTaken: humanizeStamp(meeting.AttendanceTakenAt),
		ProxiesAssigned: humanizeStamp(meeting.ProxiesAssignedAt),
		Rules:           report,
	})
}

// GetRoster handles GET /meetings/:id/roster
// Members are sorted by last name, then first name
func (h *MeetingHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	meeting, err := getMeeting(h.db, meetingID)
	if err != nil {
		slog.Error("failed to query meeting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	roster, err := getRoster(h.db, meetingID)
	if err != nil {
		slog.Error("failed to query roster", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	present, err := getAttendance(h.db, meetingID)
	if err != nil {
		slog.Error("failed to query attendance", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var solution models.ProxySolution
	if meeting.FinalSnapshotID != nil {
		solution, err = getSnapshot(h.db, *meeting.FinalSnapshotID)
		if err != nil {
			slog.Error("failed to load snapshot", "snapshot_id", *meeting.FinalSnapshotID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	isPresent := make(map[string]bool, len(present))
	for _, id := range present {
		isPresent[id] = true
	}

	entries := make([]models.RosterEntry, len(roster))
	for i, m := range roster {
		entries[i] = models.RosterEntry{RosterMember: m, Present: isPresent[m.ID]}
		if holder, ok := solution.MembersRepresented[m.ID]; ok {
			entries[i].ProxyHolder = &holder
		}
	}

	slices.SortStableFunc(entries, func(a, b models.RosterEntry) int {
		return cmp.Or(
			cmp.Compare(a.LastName, b.LastName),
			cmp.Compare(a.FirstName, b.FirstName),
			cmp.Compare(a.ID, b.ID),
		)
	})

	middleware.JSONResponse(w, http.StatusOK, models.RosterResponse{Members: entries})
}

// authorize checks the path id, the admin key, and that the meeting exists
func (h *MeetingHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	meetingID, ok := meetingIDFromPath(w, r)
	if !ok {
		return "", false
	}

	// Validate admin key
	adminKey := r.Header.Get(auth.AdminKeyHeader)
	if err := auth.ValidateAdminKey(meetingID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return "", false
	}

	var exists int
	err := h.db.QueryRow(`SELECT 1 FROM meeting WHERE id = $1`, meetingID).Scan(&exists)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Meeting not found")
		return "", false
	}
	if err != nil {
		slog.Error("failed to query meeting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return "", false
	}

	return meetingID, true
}

func meetingIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	meetingID := r.PathValue("id")
	if meetingID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "meeting_id is required")
		return "", false
	}
	if err := auth.ValidateID(meetingID); err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Meeting not found")
		return "", false
	}
	return meetingID, true
}

// humanizeStamp renders "3 minutes ago", or "never" when unset
func humanizeStamp(ts *time.Time) string {
	if ts == nil {
		return "never"
	}
	return humanize.Time(*ts)
}
