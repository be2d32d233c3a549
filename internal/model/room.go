package model

import (
	"time"

	"github.com/google/uuid"
)

const RoomCodeLength = 6

type Room struct {
	ID            uuid.UUID
	Code          string
	HostID        UserID
	GuestCanPause bool
	VotesToSkip   int

	// CurrentTrackID is the last track observed playing in this room.
	// nil until the first poll sees playback. Mutated only by the
	// playback usecase.
	CurrentTrackID *string

	CreatedAt time.Time
}

// CurrentTrack returns the observed track id, empty string when none yet.
func (r Room) CurrentTrack() string {
	if r.CurrentTrackID == nil {
		return ""
	}
	return *r.CurrentTrackID
}

func (r Room) IsHost(id UserID) bool {
	return id != EmptyUserID && r.HostID == id
}
