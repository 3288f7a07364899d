package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/sashafierce98/TGPTaskflow/internal/models"
)

// Memory is an in-memory Store used by tests and local development. A single
// mutex guards every collection; entities are copied on the way in and out so
// callers never share memory with the store.
type Memory struct {
	mu       sync.Mutex
	users    []models.User
	sessions []models.Session
	boards   []models.Board
	columns  []models.Column
	cards    []models.Card
	comments []models.Comment
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == user.Email {
			return ErrEmailTaken
		}
	}
	m.users = append(m.users, *user)
	return nil
}

func (m *Memory) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			user := m.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			user := m.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateUserProfile(_ context.Context, id, name string, picture *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Name = name
			m.users[i].Picture = picture
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) UpdateUserRole(_ context.Context, id, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Role = role
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, len(m.users))
	copy(out, m.users)
	return capList(out), nil
}

func (m *Memory) CountUsers(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *Memory) CreateSession(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, *session)
	return nil
}

func (m *Memory) GetSession(_ context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sessions {
		if m.sessions[i].Token == token {
			session := m.sessions[i]
			return &session, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sessions {
		if m.sessions[i].Token == token {
			m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) CreateBoard(_ context.Context, board *models.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := *board
	b.Collaborators = append([]string(nil), board.Collaborators...)
	m.boards = append(m.boards, b)
	return nil
}

func (m *Memory) GetBoard(_ context.Context, id string) (*models.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.boards {
		if m.boards[i].ID == id {
			board := m.boards[i]
			board.Collaborators = append([]string(nil), m.boards[i].Collaborators...)
			return &board, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListBoards(_ context.Context) ([]models.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Board, len(m.boards))
	copy(out, m.boards)
	return capList(out), nil
}

func (m *Memory) DeleteBoard(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.boards {
		if m.boards[i].ID == id {
			m.boards = append(m.boards[:i], m.boards[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) CountBoards(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.boards), nil
}

func (m *Memory) CreateColumn(_ context.Context, column *models.Column) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := 0
	for i := range m.columns {
		if m.columns[i].BoardID == column.BoardID && m.columns[i].Order >= next {
			next = m.columns[i].Order + 1
		}
	}
	column.Order = next
	m.columns = append(m.columns, *column)
	return nil
}

func (m *Memory) GetColumn(_ context.Context, id string) (*models.Column, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.columns {
		if m.columns[i].ID == id {
			column := m.columns[i]
			return &column, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListColumns(_ context.Context, boardID string) ([]models.Column, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Column, 0)
	for i := range m.columns {
		if m.columns[i].BoardID == boardID {
			out = append(out, m.columns[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return capList(out), nil
}

func (m *Memory) UpdateColumn(_ context.Context, id, name string, wipLimit *int, color string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.columns {
		if m.columns[i].ID == id {
			m.columns[i].Name = name
			m.columns[i].WIPLimit = wipLimit
			m.columns[i].Color = color
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteColumn(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.columns {
		if m.columns[i].ID == id {
			m.columns = append(m.columns[:i], m.columns[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteColumnsByBoard(_ context.Context, boardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.columns[:0]
	for i := range m.columns {
		if m.columns[i].BoardID != boardID {
			kept = append(kept, m.columns[i])
		}
	}
	m.columns = kept
	return nil
}

func (m *Memory) CreateCard(_ context.Context, card *models.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := 0
	for i := range m.cards {
		if m.cards[i].ColumnID == card.ColumnID && m.cards[i].Order >= next {
			next = m.cards[i].Order + 1
		}
	}
	card.Order = next
	m.cards = append(m.cards, *card)
	return nil
}

func (m *Memory) GetCard(_ context.Context, id string) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cards {
		if m.cards[i].ID == id {
			card := m.cards[i]
			return &card, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListCardsByBoard(_ context.Context, boardID string) ([]models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Card, 0)
	for i := range m.cards {
		if m.cards[i].BoardID == boardID {
			out = append(out, m.cards[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return capList(out), nil
}

func (m *Memory) ListAssignedCardsDue(_ context.Context, userID string) ([]models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Card, 0)
	for i := range m.cards {
		c := m.cards[i]
		if c.AssignedTo != nil && *c.AssignedTo == userID && c.DueDate != nil {
			out = append(out, c)
		}
	}
	return capList(out), nil
}

func (m *Memory) UpdateCard(_ context.Context, card *models.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cards {
		if m.cards[i].ID == card.ID {
			m.cards[i] = *card
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteCard(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cards {
		if m.cards[i].ID == id {
			m.cards = append(m.cards[:i], m.cards[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) DeleteCardsByBoard(_ context.Context, boardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.cards[:0]
	for i := range m.cards {
		if m.cards[i].BoardID != boardID {
			kept = append(kept, m.cards[i])
		}
	}
	m.cards = kept
	return nil
}

func (m *Memory) DeleteCardsByColumn(_ context.Context, columnID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.cards[:0]
	for i := range m.cards {
		if m.cards[i].ColumnID != columnID {
			kept = append(kept, m.cards[i])
		}
	}
	m.cards = kept
	return nil
}

func (m *Memory) CountCards(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cards), nil
}

func (m *Memory) CreateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *Memory) ListComments(_ context.Context, cardID string) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Comment, 0)
	for i := range m.comments {
		if m.comments[i].CardID == cardID {
			out = append(out, m.comments[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return capList(out), nil
}

func (m *Memory) DeleteCommentsByCard(_ context.Context, cardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.comments[:0]
	for i := range m.comments {
		if m.comments[i].CardID != cardID {
			kept = append(kept, m.comments[i])
		}
	}
	m.comments = kept
	return nil
}

func capList[T any](list []T) []T {
	if len(list) > ListCap {
		return list[:ListCap]
	}
	return list
}
