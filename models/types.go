package models

import (
	"log/slog"
	"time"
)

// Proxy-solving types

// MemberInfo is one roster entry as seen by the solver.
// Preferences are ranked most-preferred first.
type MemberInfo struct {
	ID          string   `json:"id"`
	Preferences []string `json:"preferences"`
}

// ProxyProblem is the body of POST /solution.
// Capacity 0 means present members may hold any number of proxies.
type ProxyProblem struct {
	Capacity       int          `json:"capacity"`
	Members        []MemberInfo `json:"members"`
	MembersPresent []string     `json:"members_present"`
}

// ProxySolution maps absent member -> proxy holder.
// MembersUnrepresented keeps roster order.
type ProxySolution struct {
	MembersRepresented   map[string]string `json:"members_represented"`
	MembersUnrepresented []string          `json:"members_unrepresented"`
}

type ProxyMetrics struct {
	Capacity      int `json:"capacity"`
	Total         int `json:"total"`
	Present       int `json:"present"`
	Absent        int `json:"absent"`
	Represented   int `json:"represented"`
	Unrepresented int `json:"unrepresented"`
}

func (m ProxyMetrics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("capacity", m.Capacity),
		slog.Int("total", m.Total),
		slog.Int("present", m.Present),
		slog.Int("absent", m.Absent),
		slog.Int("represented", m.Represented),
		slog.Int("unrepresented", m.Unrepresented),
	)
}

// Rules types

type RuleCounts struct {
	Present     int `json:"present"`
	Represented int `json:"represented"`
	Total       int `json:"total"`
}

type RuleThresholds struct {
	MembersQuorumPresent              int `json:"members_quorum_present"`
	MembersQuorumPresentOrRepresented int `json:"members_quorum_present_or_represented"`
	MembershipElection                int `json:"membership_election"`
	BylawsAmendment                   int `json:"bylaws_amendment"`
	ConstitutionalAmendment           int `json:"constitutional_amendment"`
	DirectorsQuorum                   int `json:"directors_quorum"`
}

type RulesReport struct {
	Counts               RuleCounts     `json:"counts"`
	Thresholds           RuleThresholds `json:"thresholds"`
	HaveQuorum           bool           `json:"have_quorum"`
	CanElectMembers      bool           `json:"can_elect_members"`
	CanAmendBylaws       bool           `json:"can_amend_bylaws"`
	CanAmendConstitution bool           `json:"can_amend_constitution"`
	HaveDirectorsQuorum  bool           `json:"have_directors_quorum"`
}

// Meeting request types

// CreateMeetingRequest leaves Capacity nil to take the server default
type CreateMeetingRequest struct {
	Title    string `json:"title"`
	Capacity *int   `json:"capacity,omitempty"`
}

type ReplaceMembersRequest struct {
	Members []RosterMember `json:"members"`
}

type ReplaceAttendanceRequest struct {
	MembersPresent []string `json:"members_present"`
}

// Meeting response types

type CreateMeetingResponse struct {
	MeetingID string `json:"meeting_id"`
	AdminKey  string `json:"admin_key"`
}

type ReplaceMembersResponse struct {
	Total int `json:"total"`
}

type ReplaceAttendanceResponse struct {
	Present           int       `json:"present"`
	AttendanceTakenAt time.Time `json:"attendance_taken_at"`
}

type AssignProxiesResponse struct {
	SnapshotID string        `json:"snapshot_id"`
	ComputedAt time.Time     `json:"computed_at"`
	Solution   ProxySolution `json:"solution"`
	Metrics    ProxyMetrics  `json:"metrics"`
}

type MeetingStatusResponse struct {
	Meeting         Meeting     `json:"meeting"`
	Total           int         `json:"total"`
	Present         int         `json:"present"`
	Represented     int         `json:"represented"`
	AttendanceTaken string      `json:"attendance_taken"`
	ProxiesAssigned string      `json:"proxies_assigned"`
	Rules           RulesReport `json:"rules"`
}

type RosterResponse struct {
	Members []RosterEntry `json:"members"`
}

// Meeting domain types

type Meeting struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Capacity          int        `json:"capacity"`
	CreatedAt         time.Time  `json:"created_at"`
	AttendanceTakenAt *time.Time `json:"attendance_taken_at,omitempty"`
	ProxiesAssignedAt *time.Time `json:"proxies_assigned_at,omitempty"`
	FinalSnapshotID   *string    `json:"final_snapshot_id,omitempty"`
}

// RosterMember carries display names alongside the solver fields.
type RosterMember struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Preferences []string `json:"preferences"`
}

type RosterEntry struct {
	RosterMember
	Present     bool    `json:"present"`
	ProxyHolder *string `json:"proxy_holder,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
