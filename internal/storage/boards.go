package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sashafierce98/TGPTaskflow/internal/models"
)

func (p *Postgres) CreateBoard(ctx context.Context, board *models.Board) error {
	query := `
		INSERT INTO boards (id, name, description, owner_id, collaborators, is_template, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := p.db.ExecContext(ctx, query,
		board.ID, board.Name, board.Description, board.OwnerID,
		pq.StringArray(board.Collaborators), board.IsTemplate,
		board.CreatedAt, board.UpdatedAt)
	return err
}

func (p *Postgres) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	query := `
		SELECT id, name, description, owner_id, collaborators, is_template, created_at, updated_at
		FROM boards
		WHERE id = $1
	`
	board, err := scanBoard(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return board, nil
}

func (p *Postgres) ListBoards(ctx context.Context) ([]models.Board, error) {
	query := `
		SELECT id, name, description, owner_id, collaborators, is_template, created_at, updated_at
		FROM boards
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := p.db.QueryContext(ctx, query, ListCap)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := make([]models.Board, 0)
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, *board)
	}
	return boards, rows.Err()
}

func (p *Postgres) DeleteBoard(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) CountBoards(ctx context.Context) (int, error) {
	var n int
	err := p.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM boards`)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (*models.Board, error) {
	var board models.Board
	var collaborators pq.StringArray
	if err := row.Scan(
		&board.ID,
		&board.Name,
		&board.Description,
		&board.OwnerID,
		&collaborators,
		&board.IsTemplate,
		&board.CreatedAt,
		&board.UpdatedAt,
	); err != nil {
		return nil, err
	}
	board.Collaborators = []string(collaborators)
	return &board, nil
}

// CreateColumn appends the column to its board: the order is computed and
// written in the same statement, so concurrent creations cannot collide.
func (p *Postgres) CreateColumn(ctx context.Context, column *models.Column) error {
	query := `
		INSERT INTO columns (id, board_id, name, ord, wip_limit, color, created_at)
		VALUES ($1, $2, $3,
			(SELECT COALESCE(MAX(ord) + 1, 0) FROM columns WHERE board_id = $2),
			$4, $5, $6)
		RETURNING ord
	`
	return p.db.QueryRowContext(ctx, query,
		column.ID, column.BoardID, column.Name,
		column.WIPLimit, column.Color, column.CreatedAt).
		Scan(&column.Order)
}

func (p *Postgres) GetColumn(ctx context.Context, id string) (*models.Column, error) {
	var column models.Column
	query := `SELECT id, board_id, name, ord, wip_limit, color, created_at FROM columns WHERE id = $1`
	if err := p.db.GetContext(ctx, &column, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &column, nil
}

func (p *Postgres) ListColumns(ctx context.Context, boardID string) ([]models.Column, error) {
	columns := make([]models.Column, 0)
	query := `
		SELECT id, board_id, name, ord, wip_limit, color, created_at
		FROM columns
		WHERE board_id = $1
		ORDER BY ord
		LIMIT $2
	`
	if err := p.db.SelectContext(ctx, &columns, query, boardID, ListCap); err != nil {
		return nil, err
	}
	return columns, nil
}

func (p *Postgres) UpdateColumn(ctx context.Context, id, name string, wipLimit *int, color string) error {
	query := `UPDATE columns SET name = $1, wip_limit = $2, color = $3 WHERE id = $4`
	res, err := p.db.ExecContext(ctx, query, name, wipLimit, color, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteColumn(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM columns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteColumnsByBoard(ctx context.Context, boardID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM columns WHERE board_id = $1`, boardID)
	return err
}
