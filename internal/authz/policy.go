// Package authz holds the pure authorization rules. Functions here never
// touch storage; callers fetch the entities first (missing targets are a
// NotFound, decided before any rule runs).
package authz

import (
	"errors"

	"github.com/sashafierce98/TGPTaskflow/internal/models"
)

// ErrForbidden is returned for every authorization denial.
var ErrForbidden = errors.New("access denied")

// CanReadBoard allows the owner, any collaborator, and admins.
func CanReadBoard(user *models.User, board *models.Board) error {
	if board.OwnerID == user.ID {
		return nil
	}
	if board.HasCollaborator(user.ID) {
		return nil
	}
	if user.Role == models.RoleAdmin {
		return nil
	}
	return ErrForbidden
}

// RequireOwner gates board deletion and all column mutations. Deliberately
// narrower than CanReadBoard: the admin role does not bypass it.
func RequireOwner(userID string, board *models.Board) error {
	if board.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}

// RequireAdmin gates the admin surface.
func RequireAdmin(user *models.User) error {
	if user.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
