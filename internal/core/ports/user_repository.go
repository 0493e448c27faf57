package ports

import (
	"context"

	"github.com/medichain/identity-service/internal/core/domain"
)

// UserRepository defines the persistence boundary for user records.
// Uniqueness of username and mail_id is enforced by the implementation
// (storage-level constraints), not by callers: Create must reject a
// duplicate even when a concurrent registration slipped past the
// service's pre-checks.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByMailID returns domain.ErrUserNotFound when no user matches.
	FindByMailID(ctx context.Context, mailID string) (*domain.User, error)
	// Create persists a new user, assigning ID, CreatedAt and UpdatedAt.
	// Returns domain.ErrUsernameTaken or domain.ErrEmailTaken on a
	// uniqueness violation.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// SetActive flips the active flag and refreshes UpdatedAt.
	SetActive(ctx context.Context, username string, active bool) error
}
