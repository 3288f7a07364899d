// Package admin implements the role-gated administration surface.
package admin

import (
	"context"

	"github.com/sashafierce98/TGPTaskflow/internal/authz"
	"github.com/sashafierce98/TGPTaskflow/internal/models"
	"github.com/sashafierce98/TGPTaskflow/internal/storage"
)

type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) requireAdmin(ctx context.Context, callerID string) error {
	caller, err := s.store.GetUser(ctx, callerID)
	if err != nil {
		return err
	}
	return authz.RequireAdmin(caller)
}

// ListUsers returns all users. Admin only.
func (s *Service) ListUsers(ctx context.Context, callerID string) ([]models.User, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx)
}

// SetRole overwrites the target user's role with the supplied string. The
// value is not validated against a closed set: older clients send roles this
// service has never heard of, and rejecting them would break them. Admin
// only.
func (s *Service) SetRole(ctx context.Context, callerID, targetUserID, role string) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	return s.store.UpdateUserRole(ctx, targetUserID, role)
}

// Analytics returns whole-system cardinalities. Admin only.
func (s *Service) Analytics(ctx context.Context, callerID string) (*models.AnalyticsSummary, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	users, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	boards, err := s.store.CountBoards(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := s.store.CountCards(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AnalyticsSummary{
		TotalUsers:  users,
		TotalBoards: boards,
		TotalCards:  cards,
	}, nil
}
