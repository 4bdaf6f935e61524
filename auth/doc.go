// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides meeting ids and admin key utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(meetingID, salt)
	err := auth.ValidateAdminKey(meetingID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same meeting ID and salt always produce the same key. This allows
validation without storing the key in the database.

Clients send it in the X-Admin-Key header (AdminKeyHeader).

# ID Generation

Meetings and proxy snapshots are keyed by random UUIDs:

	id := auth.GenerateID()
	err := auth.ValidateID(r.PathValue("id"))
*/
package auth
