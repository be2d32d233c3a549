package usecase_room

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MachariaP/RiffTrax-v2/internal/model"
	"github.com/MachariaP/RiffTrax-v2/internal/usecase/room/mocks"
)

type UsecaseRoomUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	repo    *mocks.RoomRepository
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	repo := mocks.NewRoomRepository(t)
	usecase := New(repo)

	return &resources{
		usecase: usecase,
		repo:    repo,
		ctx:     context.Background(),
	}
}

const hostID model.UserID = "host-1"

func hostedRoom() model.Room {
	return model.Room{
		ID:            uuid.New(),
		Code:          "QWERTY",
		HostID:        hostID,
		GuestCanPause: false,
		VotesToSkip:   2,
	}
}

func isCodeShaped(code string) bool {
	if len(code) != model.RoomCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

func (s *UsecaseRoomUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	t.Run("Should mint a fresh code for a new host", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		r.repo.On("ByHost", r.ctx, hostID).Return(model.Room{}, ErrResourceNotFound).Once()
		r.repo.On("CodeExists", r.ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
		r.repo.On("Create", r.ctx, mock.MatchedBy(func(room model.Room) bool {
			return room.HostID == hostID && isCodeShaped(room.Code) && room.VotesToSkip == 3
		})).Return(nil).Once()

		room, err := r.usecase.Create(r.ctx, hostID, true, 3)

		assert.NoError(t, err)
		assert.True(t, isCodeShaped(room.Code))
		assert.True(t, room.GuestCanPause)
	})

	t.Run("Should re-book the existing room for a returning host", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		existing := hostedRoom()

		r.repo.On("ByHost", r.ctx, hostID).Return(existing, nil).Once()
		r.repo.On("UpdatePolicy", r.ctx, existing.Code, true, 5).Return(nil).Once()

		room, err := r.usecase.Create(r.ctx, hostID, true, 5)

		assert.NoError(t, err)
		assert.Equal(t, existing.Code, room.Code)
		assert.Equal(t, 5, room.VotesToSkip)
		assert.True(t, room.GuestCanPause)
		r.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should retry on insert conflict and give up after three", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		r.repo.On("ByHost", r.ctx, hostID).Return(model.Room{}, ErrResourceNotFound).Once()
		r.repo.On("CodeExists", r.ctx, mock.AnythingOfType("string")).Return(false, nil).Times(3)
		r.repo.On("Create", r.ctx, mock.AnythingOfType("model.Room")).Return(ErrCodeConflict).Times(3)

		_, err := r.usecase.Create(r.ctx, hostID, false, 2)

		assert.ErrorIs(t, err, ErrRoomsUnavailable)
	})

	t.Run("Should reject a non-positive threshold", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		_, err := r.usecase.Create(r.ctx, hostID, false, 0)

		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("Should wrap repository failure", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		r.repo.On("ByHost", r.ctx, hostID).Return(model.Room{}, errors.New("pg down")).Once()

		_, err := r.usecase.Create(r.ctx, hostID, false, 2)

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func (s *UsecaseRoomUnitSuite) TestGenerateUniqueCode(t provider.T) {
	t.Parallel()

	t.Run("Should resample until the code is free", func(t provider.T) {
		t.Parallel()
		taken := 2
		seen := make([]string, 0, 3)

		code, err := GenerateUniqueCode(func(code string) (bool, error) {
			seen = append(seen, code)
			if taken > 0 {
				taken--
				return true, nil
			}
			return false, nil
		})

		assert.NoError(t, err)
		assert.Len(t, seen, 3)
		assert.True(t, isCodeShaped(code))
	})

	t.Run("Should surface existence-check failure", func(t provider.T) {
		t.Parallel()
		wantErr := errors.New("pg down")

		_, err := GenerateUniqueCode(func(string) (bool, error) {
			return false, wantErr
		})

		assert.ErrorIs(t, err, wantErr)
	})
}

func (s *UsecaseRoomUnitSuite) TestJoin(t provider.T) {
	t.Parallel()

	t.Run("Should return the room by code", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		room := hostedRoom()

		r.repo.On("ByCode", r.ctx, room.Code).Return(room, nil).Once()

		got, err := r.usecase.Join(r.ctx, room.Code)

		assert.NoError(t, err)
		assert.Equal(t, room, got)
	})

	t.Run("Should report unknown code", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		r.repo.On("ByCode", r.ctx, "NOSUCH").Return(model.Room{}, ErrResourceNotFound).Once()

		_, err := r.usecase.Join(r.ctx, "NOSUCH")

		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func (s *UsecaseRoomUnitSuite) TestUpdatePolicy(t provider.T) {
	t.Parallel()

	t.Run("Should update for the host", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		room := hostedRoom()

		r.repo.On("ByCode", r.ctx, room.Code).Return(room, nil).Once()
		r.repo.On("UpdatePolicy", r.ctx, room.Code, true, 4).Return(nil).Once()

		got, err := r.usecase.UpdatePolicy(r.ctx, room.Code, hostID, true, 4)

		assert.NoError(t, err)
		assert.True(t, got.GuestCanPause)
		assert.Equal(t, 4, got.VotesToSkip)
	})

	t.Run("Should refuse a non-host requester", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		room := hostedRoom()

		r.repo.On("ByCode", r.ctx, room.Code).Return(room, nil).Once()

		_, err := r.usecase.UpdatePolicy(r.ctx, room.Code, "someone-else", true, 4)

		assert.ErrorIs(t, err, ErrNotHost)
		r.repo.AssertNotCalled(t, "UpdatePolicy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject a non-positive threshold", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		_, err := r.usecase.UpdatePolicy(r.ctx, "QWERTY", hostID, true, 0)

		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})
}

func (s *UsecaseRoomUnitSuite) TestTeardown(t provider.T) {
	t.Parallel()

	t.Run("Should delete for the host", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		room := hostedRoom()

		r.repo.On("ByCode", r.ctx, room.Code).Return(room, nil).Once()
		r.repo.On("DeleteByCode", r.ctx, room.Code).Return(nil).Once()

		assert.NoError(t, r.usecase.Teardown(r.ctx, room.Code, hostID))
	})

	t.Run("Should refuse a non-host requester", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		room := hostedRoom()

		r.repo.On("ByCode", r.ctx, room.Code).Return(room, nil).Once()

		err := r.usecase.Teardown(r.ctx, room.Code, "someone-else")

		assert.ErrorIs(t, err, ErrNotHost)
		r.repo.AssertNotCalled(t, "DeleteByCode", mock.Anything, mock.Anything)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRoomUnitSuite))
}
