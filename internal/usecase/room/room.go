package usecase_room

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MachariaP/RiffTrax-v2/internal/model"
)

var (
	ErrCodeConflict     = errors.New("code conflict")
	ErrRoomsUnavailable = errors.New("no available rooms")
	ErrInvalidThreshold = errors.New("votes to skip must be positive")
	ErrNotHost          = errors.New("requester is not the host")
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
)

//go:generate mockery --name=RoomRepository --output=./mocks --filename=room_repository.go
type RoomRepository interface {
	Create(ctx context.Context, room model.Room) error
	ByCode(ctx context.Context, code string) (model.Room, error)
	ByHost(ctx context.Context, hostID model.UserID) (model.Room, error)
	UpdatePolicy(ctx context.Context, code string, guestCanPause bool, votesToSkip int) error
	DeleteByCode(ctx context.Context, code string) error
	CodeExists(ctx context.Context, code string) (bool, error)
}

type Usecase struct {
	repo RoomRepository
}

func New(repo RoomRepository) *Usecase {
	return &Usecase{repo: repo}
}

// Create books a room for hostID. A host owns at most one room at a
// time, so a second create from the same host updates the policy of
// the existing room instead of minting a new code.
func (u *Usecase) Create(ctx context.Context, hostID model.UserID, guestCanPause bool, votesToSkip int) (model.Room, error) {
	if votesToSkip < 1 {
		return model.Room{}, ErrInvalidThreshold
	}

	existing, err := u.repo.ByHost(ctx, hostID)
	if err == nil {
		if err := u.repo.UpdatePolicy(ctx, existing.Code, guestCanPause, votesToSkip); err != nil {
			return model.Room{}, errors.Join(ErrInternal, err)
		}
		existing.GuestCanPause = guestCanPause
		existing.VotesToSkip = votesToSkip
		return existing, nil
	}
	if !errors.Is(err, ErrResourceNotFound) {
		return model.Room{}, errors.Join(ErrInternal, err)
	}

	return u.createRoom(ctx, hostID, guestCanPause, votesToSkip)
}

// Assuming that sampled codes can still conflict with a concurrent
// insert between the existence check and the write.
// Retrying...
func (u *Usecase) createRoom(ctx context.Context, hostID model.UserID, guestCanPause bool, votesToSkip int) (model.Room, error) {
	var retries = 3
	for retries > 0 {
		code, err := GenerateUniqueCode(func(code string) (bool, error) {
			return u.repo.CodeExists(ctx, code)
		})
		if err != nil {
			return model.Room{}, errors.Join(ErrInternal, err)
		}

		room := model.Room{
			ID:            uuid.New(),
			Code:          code,
			HostID:        hostID,
			GuestCanPause: guestCanPause,
			VotesToSkip:   votesToSkip,
			CreatedAt:     time.Now(),
		}
		if err := u.repo.Create(ctx, room); err != nil {
			if errors.Is(err, ErrCodeConflict) {
				retries--
				continue
			}
			return model.Room{}, errors.Join(ErrInternal, err)
		}
		return room, nil
	}
	return model.Room{}, ErrRoomsUnavailable
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateUniqueCode samples room codes over the uppercase alphabet
// until one passes the injected existence check.
func GenerateUniqueCode(exists func(code string) (bool, error)) (string, error) {
	for {
		code := sampleCode()
		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
}

func sampleCode() string {
	var builder strings.Builder
	builder.Grow(model.RoomCodeLength)

	for i := 0; i < model.RoomCodeLength; i++ {
		builder.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}

	return builder.String()
}

func (u *Usecase) Join(ctx context.Context, code string) (model.Room, error) {
	return u.Get(ctx, code)
}

func (u *Usecase) Get(ctx context.Context, code string) (model.Room, error) {
	room, err := u.repo.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Room{}, ErrResourceNotFound
		}
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	return room, nil
}

func (u *Usecase) UpdatePolicy(ctx context.Context, code string, requester model.UserID, guestCanPause bool, votesToSkip int) (model.Room, error) {
	if votesToSkip < 1 {
		return model.Room{}, ErrInvalidThreshold
	}

	room, err := u.Get(ctx, code)
	if err != nil {
		return model.Room{}, err
	}
	if !room.IsHost(requester) {
		return model.Room{}, ErrNotHost
	}

	if err := u.repo.UpdatePolicy(ctx, code, guestCanPause, votesToSkip); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Room{}, ErrResourceNotFound
		}
		return model.Room{}, errors.Join(ErrInternal, err)
	}

	room.GuestCanPause = guestCanPause
	room.VotesToSkip = votesToSkip
	return room, nil
}

// Teardown deletes the room and, through cascade, its votes.
// Host only.
func (u *Usecase) Teardown(ctx context.Context, code string, requester model.UserID) error {
	room, err := u.Get(ctx, code)
	if err != nil {
		return err
	}
	if !room.IsHost(requester) {
		return ErrNotHost
	}

	if err := u.repo.DeleteByCode(ctx, code); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}
