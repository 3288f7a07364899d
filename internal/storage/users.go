package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sashafierce98/TGPTaskflow/internal/models"
)

func (p *Postgres) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, picture, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := p.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Picture, user.Role, user.CreatedAt)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (p *Postgres) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, name, picture, role, created_at FROM users WHERE id = $1`
	if err := p.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, name, picture, role, created_at FROM users WHERE email = $1`
	if err := p.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (p *Postgres) UpdateUserProfile(ctx context.Context, id, name string, picture *string) error {
	query := `UPDATE users SET name = $1, picture = $2 WHERE id = $3`
	_, err := p.db.ExecContext(ctx, query, name, picture, id)
	return err
}

// UpdateUserRole overwrites the role verbatim. Validation, if any, is the
// caller's concern.
func (p *Postgres) UpdateUserRole(ctx context.Context, id, role string) error {
	query := `UPDATE users SET role = $1 WHERE id = $2`
	res, err := p.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	query := `SELECT id, email, name, picture, role, created_at FROM users ORDER BY created_at LIMIT $1`
	if err := p.db.SelectContext(ctx, &users, query, ListCap); err != nil {
		return nil, err
	}
	return users, nil
}

func (p *Postgres) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := p.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	return n, err
}

func (p *Postgres) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := p.db.ExecContext(ctx, query,
		session.Token, session.UserID, session.ExpiresAt, session.CreatedAt)
	return err
}

func (p *Postgres) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	query := `SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1`
	if err := p.db.GetContext(ctx, &session, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (p *Postgres) DeleteSession(ctx context.Context, token string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}
