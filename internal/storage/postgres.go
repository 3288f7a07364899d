package storage

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres implements Store on top of a Postgres database. All queries are
// single statements; there are no cross-statement transactions by design.
type Postgres struct {
	db *sqlx.DB
}

var _ Store = (*Postgres)(nil)

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*Postgres, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) Ping() error {
	return p.db.Ping()
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	picture    TEXT,
	role       TEXT NOT NULL DEFAULT 'user',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	token      TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS boards (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	description   TEXT,
	owner_id      TEXT NOT NULL,
	collaborators TEXT[] NOT NULL DEFAULT '{}',
	is_template   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS columns (
	id         TEXT PRIMARY KEY,
	board_id   TEXT NOT NULL,
	name       TEXT NOT NULL,
	ord        INTEGER NOT NULL,
	wip_limit  INTEGER,
	color      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS columns_board_idx ON columns (board_id, ord);

CREATE TABLE IF NOT EXISTS cards (
	id          TEXT PRIMARY KEY,
	board_id    TEXT NOT NULL,
	column_id   TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT,
	priority    TEXT NOT NULL DEFAULT 'medium',
	due_date    TIMESTAMPTZ,
	assigned_to TEXT,
	ord         INTEGER NOT NULL,
	created_by  TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS cards_board_idx ON cards (board_id, ord);
CREATE INDEX IF NOT EXISTS cards_assignee_idx ON cards (assigned_to) WHERE due_date IS NOT NULL;

CREATE TABLE IF NOT EXISTS comments (
	id         TEXT PRIMARY KEY,
	card_id    TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	text       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS comments_card_idx ON comments (card_id, created_at);
`

// Migrate creates the schema if it does not exist yet.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, schema)
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
