package usecase_playback

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MachariaP/RiffTrax-v2/internal/model"
	"github.com/MachariaP/RiffTrax-v2/internal/service/roomlock"
	usecase_room "github.com/MachariaP/RiffTrax-v2/internal/usecase/room"
)

var (
	// ErrRoomNotFound aliases the registry's sentinel so callers of
	// this usecase never need to import the room package.
	ErrRoomNotFound = usecase_room.ErrResourceNotFound

	ErrNoPlayback = errors.New("no active playback")
	ErrForbidden  = errors.New("transport control not allowed")
	ErrProvider   = errors.New("provider call failed")
	ErrInternal   = errors.New("internal error")
)

//go:generate mockery --name=RoomStore --output=./mocks --filename=room_store.go
type RoomStore interface {
	ByCode(ctx context.Context, code string) (model.Room, error)
	SetCurrentTrack(ctx context.Context, roomID uuid.UUID, trackID string) error
}

//go:generate mockery --name=VoteLedger --output=./mocks --filename=vote_ledger.go
type VoteLedger interface {
	// Record inserts a vote. A repeated vote by the same voter for
	// the same track is a no-op.
	Record(ctx context.Context, vote model.Vote) error
	Tally(ctx context.Context, roomID uuid.UUID, trackID string) (int, error)
	Clear(ctx context.Context, roomID uuid.UUID) error
	ClearTrack(ctx context.Context, roomID uuid.UUID, trackID string) error
}

//go:generate mockery --name=Provider --output=./mocks --filename=provider.go
type Provider interface {
	// CurrentlyPlaying returns ErrNoPlayback when the host's account
	// reports no active track.
	CurrentlyPlaying(ctx context.Context, key model.CredentialKey) (model.TrackSnapshot, error)
	Play(ctx context.Context, key model.CredentialKey) error
	Pause(ctx context.Context, key model.CredentialKey) error
	Skip(ctx context.Context, key model.CredentialKey) error
}

type Usecase struct {
	rooms    RoomStore
	ledger   VoteLedger
	provider Provider

	// locks serializes poll-update and skip-decision per room code;
	// rooms stay independent of each other.
	locks  *roomlock.Locker
	logger *slog.Logger
}

func New(rooms RoomStore, ledger VoteLedger, provider Provider) *Usecase {
	return &Usecase{
		rooms:    rooms,
		ledger:   ledger,
		provider: provider,
		locks:    roomlock.New(),
		logger:   slog.Default(),
	}
}

// CurrentTrack polls the provider for the host's playback state,
// invalidates stale votes when the track changed, and returns the
// room-scoped view with the live tally.
func (u *Usecase) CurrentTrack(ctx context.Context, code string) (model.NowPlaying, error) {
	// The room is read under the lock: deciding against a pre-lock
	// snapshot would let two polls observe the same stale track and
	// clear the ledger twice.
	unlock := u.locks.Lock(code)
	defer unlock()

	room, err := u.rooms.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.NowPlaying{}, ErrRoomNotFound
		}
		return model.NowPlaying{}, errors.Join(ErrInternal, err)
	}

	snap, err := u.provider.CurrentlyPlaying(ctx, model.CredentialKeyFor(room.HostID))
	if err != nil {
		// A failing provider poll degrades to "nothing to show" and
		// must not touch room or vote state.
		if !errors.Is(err, ErrNoPlayback) {
			u.logger.Error("currently-playing poll failed",
				slog.String("room", room.Code),
				slog.String("error", err.Error()))
		}
		return model.NowPlaying{}, ErrNoPlayback
	}

	if snap.TrackID != room.CurrentTrack() {
		if err := u.ledger.Clear(ctx, room.ID); err != nil {
			return model.NowPlaying{}, errors.Join(ErrInternal, err)
		}
		if err := u.rooms.SetCurrentTrack(ctx, room.ID, snap.TrackID); err != nil {
			return model.NowPlaying{}, errors.Join(ErrInternal, err)
		}
	}

	votes, err := u.ledger.Tally(ctx, room.ID, snap.TrackID)
	if err != nil {
		return model.NowPlaying{}, errors.Join(ErrInternal, err)
	}

	return model.NowPlaying{
		TrackSnapshot: snap,
		Votes:         votes,
		VotesRequired: room.VotesToSkip,
	}, nil
}

// RequestSkip executes the skip immediately when the requester is the
// host or the tally plus the requester's own implicit vote reaches the
// threshold; otherwise it records the vote.
func (u *Usecase) RequestSkip(ctx context.Context, code string, requester model.UserID) error {
	// Same ordering as CurrentTrack: the skip decision must tally the
	// room's live track, not a pre-lock snapshot of it.
	unlock := u.locks.Lock(code)
	defer unlock()

	room, err := u.rooms.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	votes, err := u.ledger.Tally(ctx, room.ID, room.CurrentTrack())
	if err != nil {
		return errors.Join(ErrInternal, err)
	}

	if room.IsHost(requester) || votes+1 >= room.VotesToSkip {
		if err := u.ledger.ClearTrack(ctx, room.ID, room.CurrentTrack()); err != nil {
			return errors.Join(ErrInternal, err)
		}
		// Fire and forget: success is confirmed only by the next
		// poll observing a track change.
		if err := u.provider.Skip(ctx, model.CredentialKeyFor(room.HostID)); err != nil {
			return errors.Join(ErrProvider, err)
		}
		return nil
	}

	vote := model.Vote{
		ID:      uuid.New(),
		RoomID:  room.ID,
		VoterID: requester,
		TrackID: room.CurrentTrack(),
	}
	if err := u.ledger.Record(ctx, vote); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// Play forwards a play command for the room's host. Gated by the
// transport-control rule, not by votes.
func (u *Usecase) Play(ctx context.Context, code string, requester model.UserID) error {
	return u.transport(ctx, code, requester, u.provider.Play)
}

// Pause forwards a pause command under the same gate as Play.
func (u *Usecase) Pause(ctx context.Context, code string, requester model.UserID) error {
	return u.transport(ctx, code, requester, u.provider.Pause)
}

func (u *Usecase) transport(ctx context.Context, code string, requester model.UserID, command func(context.Context, model.CredentialKey) error) error {
	room, err := u.rooms.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	if !transportAllowed(room, requester) {
		return ErrForbidden
	}

	if err := command(ctx, model.CredentialKeyFor(room.HostID)); err != nil {
		return errors.Join(ErrProvider, err)
	}
	return nil
}

// transportAllowed is the play/pause authorization rule: the host
// always may, guests only when the room policy says so.
func transportAllowed(room model.Room, requester model.UserID) bool {
	return room.IsHost(requester) || room.GuestCanPause
}
