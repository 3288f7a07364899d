// Package kanban implements the board/column/card/comment domain service.
package kanban

import (
	"context"
	"time"

	"github.com/sashafierce98/TGPTaskflow/internal/authz"
	"github.com/sashafierce98/TGPTaskflow/internal/models"
	"github.com/sashafierce98/TGPTaskflow/internal/storage"
)

// defaultColumn describes one of the columns every new board starts with.
type defaultColumn struct {
	name     string
	color    string
	wipLimit *int
}

func intPtr(n int) *int { return &n }

// defaultColumns is the fixed bootstrap sequence; orders 0-4 follow from
// creation order.
var defaultColumns = []defaultColumn{
	{name: "Backlog", color: "#64748B"},
	{name: "To Do", color: "#3B82F6", wipLimit: intPtr(15)},
	{name: "In Progress", color: "#F59E0B", wipLimit: intPtr(5)},
	{name: "Done", color: "#10B981"},
	{name: "Questions", color: "#8B5CF6"},
}

// DefaultColumnColor matches the original client's fallback column color.
const DefaultColumnColor = "#64748B"

type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// CreateBoard creates the board owned by callerID and bootstraps the five
// default columns. The bootstrap is a sequence of independent inserts; a
// crash mid-way leaves a partial board (no cross-document transactions).
func (s *Service) CreateBoard(ctx context.Context, callerID string, input models.CreateBoardInput) (*models.Board, error) {
	now := time.Now().UTC()
	board := &models.Board{
		ID:            models.NewID("board"),
		Name:          input.Name,
		Description:   input.Description,
		OwnerID:       callerID,
		Collaborators: []string{},
		IsTemplate:    input.IsTemplate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateBoard(ctx, board); err != nil {
		return nil, err
	}

	for _, def := range defaultColumns {
		column := &models.Column{
			ID:        models.NewID("col"),
			BoardID:   board.ID,
			Name:      def.name,
			WIPLimit:  def.wipLimit,
			Color:     def.color,
			CreatedAt: now,
		}
		if err := s.store.CreateColumn(ctx, column); err != nil {
			return nil, err
		}
	}

	return board, nil
}

// ListBoards returns every board: read access is organization-wide.
func (s *Service) ListBoards(ctx context.Context) ([]models.Board, error) {
	return s.store.ListBoards(ctx)
}

// GetBoard returns a single board if the caller is the owner, a
// collaborator, or an admin.
func (s *Service) GetBoard(ctx context.Context, callerID, boardID string) (*models.Board, error) {
	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	caller, err := s.store.GetUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadBoard(caller, board); err != nil {
		return nil, err
	}
	return board, nil
}

// DeleteBoard removes the board with its columns and cards. Comments on the
// cascaded cards are left behind, matching the historical behavior. Success
// is reported from the board deletion alone.
func (s *Service) DeleteBoard(ctx context.Context, callerID, boardID string) error {
	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(callerID, board); err != nil {
		return err
	}

	if err := s.store.DeleteBoard(ctx, boardID); err != nil {
		return err
	}
	_ = s.store.DeleteColumnsByBoard(ctx, boardID)
	_ = s.store.DeleteCardsByBoard(ctx, boardID)
	return nil
}

// ListColumns returns the board's columns ascending by order.
func (s *Service) ListColumns(ctx context.Context, boardID string) ([]models.Column, error) {
	return s.store.ListColumns(ctx, boardID)
}

// CreateColumn appends a column to the board; owner only.
func (s *Service) CreateColumn(ctx context.Context, callerID, boardID string, input models.CreateColumnInput) (*models.Column, error) {
	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(callerID, board); err != nil {
		return nil, err
	}

	color := input.Color
	if color == "" {
		color = DefaultColumnColor
	}
	column := &models.Column{
		ID:        models.NewID("col"),
		BoardID:   boardID,
		Name:      input.Name,
		WIPLimit:  input.WIPLimit,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateColumn(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

// UpdateColumn replaces name, WIP limit and color; order and board
// association are immutable here. Owner only.
func (s *Service) UpdateColumn(ctx context.Context, callerID, columnID string, input models.CreateColumnInput) error {
	column, err := s.store.GetColumn(ctx, columnID)
	if err != nil {
		return err
	}
	board, err := s.store.GetBoard(ctx, column.BoardID)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(callerID, board); err != nil {
		return err
	}
	return s.store.UpdateColumn(ctx, columnID, input.Name, input.WIPLimit, input.Color)
}

// DeleteColumn removes the column and its cards; comments on those cards are
// orphaned. Owner only.
func (s *Service) DeleteColumn(ctx context.Context, callerID, columnID string) error {
	column, err := s.store.GetColumn(ctx, columnID)
	if err != nil {
		return err
	}
	board, err := s.store.GetBoard(ctx, column.BoardID)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(callerID, board); err != nil {
		return err
	}

	if err := s.store.DeleteColumn(ctx, columnID); err != nil {
		return err
	}
	_ = s.store.DeleteCardsByColumn(ctx, columnID)
	return nil
}

// ListCards returns the board's cards ascending by order.
func (s *Service) ListCards(ctx context.Context, boardID string) ([]models.Card, error) {
	return s.store.ListCardsByBoard(ctx, boardID)
}

// CreateCard appends a card to the column. Any authenticated user may create
// cards on any board; no ownership check and no existence check on the
// board/column references.
func (s *Service) CreateCard(ctx context.Context, callerID, boardID, columnID string, input models.CreateCardInput) (*models.Card, error) {
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := time.Now().UTC()
	card := &models.Card{
		ID:          models.NewID("card"),
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateCard applies the non-nil patch fields and refreshes the updated
// timestamp. A nil field is "leave unchanged", so set fields cannot be
// cleared through this path. Moving to another column keeps the card's
// numeric order.
func (s *Service) UpdateCard(ctx context.Context, cardID string, input models.UpdateCardInput) (*models.Card, error) {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		card.Title = *input.Title
	}
	if input.Description != nil {
		card.Description = input.Description
	}
	if input.Priority != nil {
		card.Priority = *input.Priority
	}
	if input.DueDate != nil {
		card.DueDate = input.DueDate
	}
	if input.AssignedTo != nil {
		card.AssignedTo = input.AssignedTo
	}
	if input.ColumnID != nil {
		card.ColumnID = *input.ColumnID
	}
	card.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteCard removes the card and its comments. No existence check: deleting
// an unknown card succeeds.
func (s *Service) DeleteCard(ctx context.Context, cardID string) error {
	if err := s.store.DeleteCard(ctx, cardID); err != nil {
		return err
	}
	return s.store.DeleteCommentsByCard(ctx, cardID)
}

// ListComments returns the card's comments ascending by creation time.
func (s *Service) ListComments(ctx context.Context, cardID string) ([]models.Comment, error) {
	return s.store.ListComments(ctx, cardID)
}

// AddComment appends an immutable comment authored by the caller.
func (s *Service) AddComment(ctx context.Context, callerID, cardID, text string) (*models.Comment, error) {
	comment := &models.Comment{
		ID:        models.NewID("comment"),
		CardID:    cardID,
		UserID:    callerID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
