package models

import "time"

// Roles assigned to users. SetRole accepts arbitrary strings for
// compatibility with older clients, so these are defaults, not a closed set.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Card priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type User struct {
	ID        string    `json:"user_id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Picture   *string   `json:"picture,omitempty" db:"picture"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Session is a server-side record of an issued bearer token. Never updated
// after creation; expiry is enforced on every authenticated request.
type Session struct {
	UserID    string    `json:"user_id" db:"user_id" msgpack:"user_id"`
	Token     string    `json:"session_token" db:"token" msgpack:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at" msgpack:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at" msgpack:"created_at"`
}

type Board struct {
	ID            string    `json:"board_id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description,omitempty" db:"description"`
	OwnerID       string    `json:"owner_id" db:"owner_id"`
	Collaborators []string  `json:"collaborators" db:"-"`
	IsTemplate    bool      `json:"is_template" db:"is_template"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// HasCollaborator reports whether userID is in the board's collaborator set.
func (b *Board) HasCollaborator(userID string) bool {
	for _, id := range b.Collaborators {
		if id == userID {
			return true
		}
	}
	return false
}

type Column struct {
	ID        string    `json:"column_id" db:"id"`
	BoardID   string    `json:"board_id" db:"board_id"`
	Name      string    `json:"name" db:"name"`
	Order     int       `json:"order" db:"ord"`
	WIPLimit  *int      `json:"wip_limit,omitempty" db:"wip_limit"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Card struct {
	ID          string     `json:"card_id" db:"id"`
	BoardID     string     `json:"board_id" db:"board_id"`
	ColumnID    string     `json:"column_id" db:"column_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Priority    string     `json:"priority" db:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	AssignedTo  *string    `json:"assigned_to,omitempty" db:"assigned_to"`
	Order       int        `json:"order" db:"ord"`
	CreatedBy   string     `json:"created_by" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type Comment struct {
	ID        string    `json:"comment_id" db:"id"`
	CardID    string    `json:"card_id" db:"card_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateBoardInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsTemplate  bool    `json:"is_template"`
}

type CreateColumnInput struct {
	Name     string `json:"name"`
	WIPLimit *int   `json:"wip_limit"`
	Color    string `json:"color"`
}

type CreateCardInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *string    `json:"assigned_to"`
}

// UpdateCardInput is a partial patch: nil means "leave unchanged". There is
// no way to clear a set field through this shape; unassigning a card requires
// a dedicated endpoint that does not exist yet.
type UpdateCardInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *string    `json:"assigned_to"`
	ColumnID    *string    `json:"column_id"`
}

type AddCommentInput struct {
	Text string `json:"text"`
}

// Notification kinds, in classification priority order.
const (
	NotificationOverdue     = "overdue"
	NotificationDueToday    = "due_today"
	NotificationDueThisWeek = "due_this_week"
)

// Notification is derived on demand from assigned cards; nothing is stored.
type Notification struct {
	Type    string `json:"type"`
	CardID  string `json:"card_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type AnalyticsSummary struct {
	TotalUsers  int `json:"total_users"`
	TotalBoards int `json:"total_boards"`
	TotalCards  int `json:"total_cards"`
}
