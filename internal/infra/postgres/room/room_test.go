package infra_postgres_room

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/MachariaP/RiffTrax-v2/internal/model"
	usecase_room "github.com/MachariaP/RiffTrax-v2/internal/usecase/room"
)

type RoomInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	driver := New(sqlxDB)

	return &resources{
		db:     sqlxDB,
		mock:   mock,
		driver: driver,
		ctx:    context.Background(),
	}
}

func validRoom() model.Room {
	return model.Room{
		ID:            uuid.New(),
		Code:          "ABCDEF",
		HostID:        "host-1",
		GuestCanPause: false,
		VotesToSkip:   2,
		CreatedAt:     time.Now(),
	}
}

func roomColumns() []string {
	return []string{"id", "code", "host_id", "guest_can_pause", "votes_to_skip", "current_track_id", "created_at"}
}

func (s *RoomInfraUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources, room model.Room)
		expectedErr error
	}{
		{
			name: "Should create room successfully",
			setupMocks: func(r *resources, room model.Room) {
				r.mock.ExpectExec("INSERT INTO rooms").
					WithArgs(room.ID, room.Code, string(room.HostID), room.GuestCanPause, room.VotesToSkip, room.CreatedAt).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "Should map unique violation to code conflict",
			setupMocks: func(r *resources, room model.Room) {
				r.mock.ExpectExec("INSERT INTO rooms").
					WithArgs(room.ID, room.Code, string(room.HostID), room.GuestCanPause, room.VotesToSkip, room.CreatedAt).
					WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "rooms_code_key"`))
			},
			expectedErr: usecase_room.ErrCodeConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			room := validRoom()
			tc.setupMocks(r, room)

			err := r.driver.Create(r.ctx, room)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestByCode(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources, room model.Room)
		expectedErr error
		wantTrack   string
	}{
		{
			name: "Should load room with a current track",
			setupMocks: func(r *resources, room model.Room) {
				rows := sqlmock.NewRows(roomColumns()).AddRow(
					room.ID, room.Code, string(room.HostID), room.GuestCanPause,
					room.VotesToSkip, sql.NullString{String: "track-A", Valid: true}, room.CreatedAt,
				)
				r.mock.ExpectQuery("SELECT (.+) FROM rooms").
					WithArgs(room.Code).
					WillReturnRows(rows)
			},
			wantTrack: "track-A",
		},
		{
			name: "Should load room without a current track",
			setupMocks: func(r *resources, room model.Room) {
				rows := sqlmock.NewRows(roomColumns()).AddRow(
					room.ID, room.Code, string(room.HostID), room.GuestCanPause,
					room.VotesToSkip, sql.NullString{}, room.CreatedAt,
				)
				r.mock.ExpectQuery("SELECT (.+) FROM rooms").
					WithArgs(room.Code).
					WillReturnRows(rows)
			},
			wantTrack: "",
		},
		{
			name: "Should report unknown code",
			setupMocks: func(r *resources, room model.Room) {
				r.mock.ExpectQuery("SELECT (.+) FROM rooms").
					WithArgs(room.Code).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: usecase_room.ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			room := validRoom()
			tc.setupMocks(r, room)

			got, err := r.driver.ByCode(r.ctx, room.Code)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, room.Code, got.Code)
				assert.Equal(t, tc.wantTrack, got.CurrentTrack())
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestUpdatePolicy(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources)
		expectedErr error
	}{
		{
			name: "Should update policy successfully",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("UPDATE rooms").
					WithArgs(true, 5, "ABCDEF").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Should report unknown code",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("UPDATE rooms").
					WithArgs(true, 5, "ABCDEF").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: usecase_room.ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			err := r.driver.UpdatePolicy(r.ctx, "ABCDEF", true, 5)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestSetCurrentTrack(t provider.T) {
	t.Parallel()

	r := initResources(t)
	roomID := uuid.New()

	r.mock.ExpectExec("UPDATE rooms").
		WithArgs("track-B", roomID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, r.driver.SetCurrentTrack(r.ctx, roomID, "track-B"))
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (s *RoomInfraUnitSuite) TestDeleteByCode(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources)
		expectedErr error
	}{
		{
			name: "Should delete room successfully",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("DELETE FROM rooms").
					WithArgs("ABCDEF").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Should report unknown code",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("DELETE FROM rooms").
					WithArgs("ABCDEF").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: usecase_room.ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			err := r.driver.DeleteByCode(r.ctx, "ABCDEF")

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestCodeExists(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		exists bool
	}{
		{name: "Should report a taken code", exists: true},
		{name: "Should report a free code", exists: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			rows := sqlmock.NewRows([]string{"exists"}).AddRow(tc.exists)
			r.mock.ExpectQuery("SELECT EXISTS").
				WithArgs("ABCDEF").
				WillReturnRows(rows)

			exists, err := r.driver.CodeExists(r.ctx, "ABCDEF")

			assert.NoError(t, err)
			assert.Equal(t, tc.exists, exists)
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(RoomInfraUnitSuite))
}
