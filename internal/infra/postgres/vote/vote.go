package infra_postgres_vote

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MachariaP/RiffTrax-v2/internal/model"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type voteDTO struct {
	ID      uuid.UUID `db:"id"`
	RoomID  uuid.UUID `db:"room_id"`
	VoterID string    `db:"voter_id"`
	TrackID string    `db:"track_id"`
}

// Record inserts the vote. The (room_id, voter_id, track_id) unique
// index makes a repeated vote a silent no-op, so one voter counts
// once per track.
func (d *Driver) Record(ctx context.Context, vote model.Vote) error {
	dto := voteDTO{
		ID:      vote.ID,
		RoomID:  vote.RoomID,
		VoterID: string(vote.VoterID),
		TrackID: vote.TrackID,
	}

	query := `
		INSERT INTO votes (id, room_id, voter_id, track_id)
		VALUES (:id, :room_id, :voter_id, :track_id)
		ON CONFLICT (room_id, voter_id, track_id)
		DO NOTHING
	`

	_, err := d.db.NamedExecContext(ctx, query, dto)
	return err
}

func (d *Driver) Tally(ctx context.Context, roomID uuid.UUID, trackID string) (int, error) {
	var count int

	query := `
        SELECT COUNT(id)
        FROM votes
        WHERE room_id = $1 AND track_id = $2
    `

	err := d.db.GetContext(ctx, &count, query, roomID, trackID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (d *Driver) Clear(ctx context.Context, roomID uuid.UUID) error {
	query := `
        DELETE FROM votes
        WHERE room_id = $1
    `

	_, err := d.db.ExecContext(ctx, query, roomID)
	return err
}

func (d *Driver) ClearTrack(ctx context.Context, roomID uuid.UUID, trackID string) error {
	query := `
        DELETE FROM votes
        WHERE room_id = $1 AND track_id = $2
    `

	_, err := d.db.ExecContext(ctx, query, roomID, trackID)
	return err
}
