package storage

import (
	"context"
	"errors"

	"github.com/sashafierce98/TGPTaskflow/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrEmailTaken is returned when creating a user with an email that is
// already registered.
var ErrEmailTaken = errors.New("email already taken")

// ListCap bounds every unpaginated list query.
const ListCap = 1000

// Store is the persistence boundary for the whole service. Each method is an
// independent, non-transactional call; multi-step operations such as
// cascading deletes are sequenced by the callers.
//
// Creation methods assign the entity's Order field where one exists, so that
// max+1 assignment happens inside a single store call.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id, name string, picture *string) error
	UpdateUserRole(ctx context.Context, id, role string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int, error)

	// Sessions. DeleteSession is idempotent: deleting an absent token is not
	// an error.
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// Boards.
	CreateBoard(ctx context.Context, board *models.Board) error
	GetBoard(ctx context.Context, id string) (*models.Board, error)
	ListBoards(ctx context.Context) ([]models.Board, error)
	DeleteBoard(ctx context.Context, id string) error
	CountBoards(ctx context.Context) (int, error)

	// Columns. CreateColumn fills in Order as max(board's columns)+1, or 0
	// for the first column, atomically with the insert.
	CreateColumn(ctx context.Context, column *models.Column) error
	GetColumn(ctx context.Context, id string) (*models.Column, error)
	ListColumns(ctx context.Context, boardID string) ([]models.Column, error)
	UpdateColumn(ctx context.Context, id, name string, wipLimit *int, color string) error
	DeleteColumn(ctx context.Context, id string) error
	DeleteColumnsByBoard(ctx context.Context, boardID string) error

	// Cards. CreateCard fills in Order scoped to the card's column, like
	// CreateColumn. DeleteCard on an absent id is not an error.
	CreateCard(ctx context.Context, card *models.Card) error
	GetCard(ctx context.Context, id string) (*models.Card, error)
	ListCardsByBoard(ctx context.Context, boardID string) ([]models.Card, error)
	ListAssignedCardsDue(ctx context.Context, userID string) ([]models.Card, error)
	UpdateCard(ctx context.Context, card *models.Card) error
	DeleteCard(ctx context.Context, id string) error
	DeleteCardsByBoard(ctx context.Context, boardID string) error
	DeleteCardsByColumn(ctx context.Context, columnID string) error
	CountCards(ctx context.Context) (int, error)

	// Comments.
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, cardID string) ([]models.Comment, error)
	DeleteCommentsByCard(ctx context.Context, cardID string) error
}
