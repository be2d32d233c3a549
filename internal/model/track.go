package model

import "strings"

// TrackSnapshot is the point-in-time playback state reported by the
// provider for a host's account.
type TrackSnapshot struct {
	TrackID    string
	Title      string
	Artists    []string
	DurationMS int
	ProgressMS int
	ImageURL   string
	Playing    bool
}

// ArtistLine joins artist names in listed order.
func (s TrackSnapshot) ArtistLine() string {
	return strings.Join(s.Artists, ", ")
}

// NowPlaying is a room-scoped view of the current track together with
// the skip-vote tally.
type NowPlaying struct {
	TrackSnapshot

	Votes         int
	VotesRequired int
}
