package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sashafierce98/TGPTaskflow/internal/models"
)

// CreateCard appends the card to its column; see CreateColumn for the order
// assignment contract.
func (p *Postgres) CreateCard(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (id, board_id, column_id, title, description, priority,
			due_date, assigned_to, ord, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COALESCE(MAX(ord) + 1, 0) FROM cards WHERE column_id = $3),
			$9, $10, $11)
		RETURNING ord
	`
	return p.db.QueryRowContext(ctx, query,
		card.ID, card.BoardID, card.ColumnID, card.Title, card.Description,
		card.Priority, card.DueDate, card.AssignedTo,
		card.CreatedBy, card.CreatedAt, card.UpdatedAt).
		Scan(&card.Order)
}

func (p *Postgres) GetCard(ctx context.Context, id string) (*models.Card, error) {
	var card models.Card
	query := `
		SELECT id, board_id, column_id, title, description, priority,
			due_date, assigned_to, ord, created_by, created_at, updated_at
		FROM cards
		WHERE id = $1
	`
	if err := p.db.GetContext(ctx, &card, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (p *Postgres) ListCardsByBoard(ctx context.Context, boardID string) ([]models.Card, error) {
	cards := make([]models.Card, 0)
	query := `
		SELECT id, board_id, column_id, title, description, priority,
			due_date, assigned_to, ord, created_by, created_at, updated_at
		FROM cards
		WHERE board_id = $1
		ORDER BY ord
		LIMIT $2
	`
	if err := p.db.SelectContext(ctx, &cards, query, boardID, ListCap); err != nil {
		return nil, err
	}
	return cards, nil
}

func (p *Postgres) ListAssignedCardsDue(ctx context.Context, userID string) ([]models.Card, error) {
	cards := make([]models.Card, 0)
	query := `
		SELECT id, board_id, column_id, title, description, priority,
			due_date, assigned_to, ord, created_by, created_at, updated_at
		FROM cards
		WHERE assigned_to = $1 AND due_date IS NOT NULL
		LIMIT $2
	`
	if err := p.db.SelectContext(ctx, &cards, query, userID, ListCap); err != nil {
		return nil, err
	}
	return cards, nil
}

// UpdateCard writes the full row. The order value travels with the card when
// it changes columns; it is never recomputed here.
func (p *Postgres) UpdateCard(ctx context.Context, card *models.Card) error {
	query := `
		UPDATE cards
		SET column_id = $1, title = $2, description = $3, priority = $4,
			due_date = $5, assigned_to = $6, ord = $7, updated_at = $8
		WHERE id = $9
	`
	res, err := p.db.ExecContext(ctx, query,
		card.ColumnID, card.Title, card.Description, card.Priority,
		card.DueDate, card.AssignedTo, card.Order, card.UpdatedAt, card.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCard is deliberately lenient: deleting an absent card succeeds.
func (p *Postgres) DeleteCard(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	return err
}

func (p *Postgres) DeleteCardsByBoard(ctx context.Context, boardID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM cards WHERE board_id = $1`, boardID)
	return err
}

func (p *Postgres) DeleteCardsByColumn(ctx context.Context, columnID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM cards WHERE column_id = $1`, columnID)
	return err
}

func (p *Postgres) CountCards(ctx context.Context) (int, error) {
	var n int
	err := p.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM cards`)
	return n, err
}

func (p *Postgres) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, card_id, user_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := p.db.ExecContext(ctx, query,
		comment.ID, comment.CardID, comment.UserID, comment.Text, comment.CreatedAt)
	return err
}

func (p *Postgres) ListComments(ctx context.Context, cardID string) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	query := `
		SELECT id, card_id, user_id, text, created_at
		FROM comments
		WHERE card_id = $1
		ORDER BY created_at
		LIMIT $2
	`
	if err := p.db.SelectContext(ctx, &comments, query, cardID, ListCap); err != nil {
		return nil, err
	}
	return comments, nil
}

func (p *Postgres) DeleteCommentsByCard(ctx context.Context, cardID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM comments WHERE card_id = $1`, cardID)
	return err
}
