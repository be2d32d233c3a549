package infra_postgres_room

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MachariaP/RiffTrax-v2/internal/model"
	usecase_room "github.com/MachariaP/RiffTrax-v2/internal/usecase/room"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	ID             uuid.UUID      `db:"id"`
	Code           string         `db:"code"`
	HostID         string         `db:"host_id"`
	GuestCanPause  bool           `db:"guest_can_pause"`
	VotesToSkip    int            `db:"votes_to_skip"`
	CurrentTrackID sql.NullString `db:"current_track_id"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (dto roomDTO) toModel() model.Room {
	room := model.Room{
		ID:            dto.ID,
		Code:          dto.Code,
		HostID:        model.UserID(dto.HostID),
		GuestCanPause: dto.GuestCanPause,
		VotesToSkip:   dto.VotesToSkip,
		CreatedAt:     dto.CreatedAt,
	}
	if dto.CurrentTrackID.Valid {
		track := dto.CurrentTrackID.String
		room.CurrentTrackID = &track
	}
	return room
}

func (d *Driver) Create(ctx context.Context, room model.Room) error {
	dto := roomDTO{
		ID:            room.ID,
		Code:          room.Code,
		HostID:        string(room.HostID),
		GuestCanPause: room.GuestCanPause,
		VotesToSkip:   room.VotesToSkip,
		CreatedAt:     room.CreatedAt,
	}

	query := `
		INSERT INTO rooms (id, code, host_id, guest_can_pause, votes_to_skip, created_at)
		VALUES (:id, :code, :host_id, :guest_can_pause, :votes_to_skip, :created_at)
	`

	_, err := d.db.NamedExecContext(ctx, query, dto)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key") {
			return usecase_room.ErrCodeConflict
		}
		return err
	}
	return nil
}

func (d *Driver) ByCode(ctx context.Context, code string) (model.Room, error) {
	var dto roomDTO

	query := `
        SELECT id, code, host_id, guest_can_pause, votes_to_skip, current_track_id, created_at
        FROM rooms
        WHERE code = $1
    `

	err := d.db.GetContext(ctx, &dto, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return dto.toModel(), nil
}

func (d *Driver) ByHost(ctx context.Context, hostID model.UserID) (model.Room, error) {
	var dto roomDTO

	query := `
        SELECT id, code, host_id, guest_can_pause, votes_to_skip, current_track_id, created_at
        FROM rooms
        WHERE host_id = $1
    `

	err := d.db.GetContext(ctx, &dto, query, string(hostID))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return dto.toModel(), nil
}

func (d *Driver) UpdatePolicy(ctx context.Context, code string, guestCanPause bool, votesToSkip int) error {
	query := `
        UPDATE rooms
        SET guest_can_pause = $1, votes_to_skip = $2
        WHERE code = $3
    `

	result, err := d.db.ExecContext(ctx, query, guestCanPause, votesToSkip, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) SetCurrentTrack(ctx context.Context, roomID uuid.UUID, trackID string) error {
	query := `
        UPDATE rooms
        SET current_track_id = $1
        WHERE id = $2
    `

	result, err := d.db.ExecContext(ctx, query, trackID, roomID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) DeleteByCode(ctx context.Context, code string) error {
	query := `
        DELETE FROM rooms
        WHERE code = $1
    `

	result, err := d.db.ExecContext(ctx, query, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) CodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM rooms WHERE code = $1)`

	var exists bool
	err := d.db.QueryRowContext(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
