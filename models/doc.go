// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Solver Types

The proxy solver contract, shared by POST /solution and the meeting flow:

  - ProxyProblem: capacity, members ({id, preferences}), members_present
  - ProxySolution: members_represented (absent -> holder), members_unrepresented
  - ProxyMetrics: sizes of a problem or solution, logged around each solve

# Rules Types

  - RuleCounts: present, represented, total
  - RuleThresholds: every threshold for the given total
  - RulesReport: counts, thresholds, and the quorum/pass predicates

# Meeting Types

Request types:

  - CreateMeetingRequest: title, capacity
  - ReplaceMembersRequest: members (with first_name, last_name)
  - ReplaceAttendanceRequest: members_present

Response types:

  - CreateMeetingResponse: meeting_id, admin_key
  - AssignProxiesResponse: snapshot_id, computed_at, solution, metrics
  - MeetingStatusResponse: counts, humanized timestamps, rules
  - RosterResponse: sorted roster with presence and proxy holder
  - ErrorResponse: error, message
*/
package models
