package model

import "github.com/google/uuid"

// Vote is a single skip request that did not reach the threshold.
// It stays meaningful only while TrackID matches the room's current
// track; stale votes are purged in bulk on track change.
type Vote struct {
	ID      uuid.UUID
	RoomID  uuid.UUID
	VoterID UserID
	TrackID string
}
