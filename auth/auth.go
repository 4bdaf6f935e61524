// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// AdminKeyHeader carries the meeting admin key on mutating requests
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidID       = errors.New("invalid id format")
)

// GenerateID creates a random UUIDv4 for meetings and snapshots
func GenerateID() string {
	return uuid.NewString()
}

// ValidateID rejects ids that are not UUIDs before they reach the database
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// GenerateAdminKey creates an HMAC-based admin key for a meeting
// This is deterministic and verifiable
func GenerateAdminKey(meetingID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(meetingID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the meeting
func ValidateAdminKey(meetingID, adminKey, salt string) error {
	expected := GenerateAdminKey(meetingID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}
