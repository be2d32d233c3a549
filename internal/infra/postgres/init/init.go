package infra_pg_init

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/MachariaP/RiffTrax-v2/internal/config"
)

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}

	return db
}

// MustMigrate applies the schema. Idempotent, runs on every start.
func MustMigrate(db *sqlx.DB) {
	const schema = `
	CREATE TABLE IF NOT EXISTS rooms (
		id UUID PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		host_id TEXT NOT NULL UNIQUE,
		guest_can_pause BOOLEAN NOT NULL DEFAULT FALSE,
		votes_to_skip INT NOT NULL DEFAULT 1,
		current_track_id TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS votes (
		id UUID PRIMARY KEY,
		room_id UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
		voter_id TEXT NOT NULL,
		track_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (room_id, voter_id, track_id)
	);

	CREATE TABLE IF NOT EXISTS credentials (
		key TEXT PRIMARY KEY,
		access_token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		token_type TEXT NOT NULL,
		expiry TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
}
