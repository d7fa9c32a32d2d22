package ports

import (
	"context"

	"github.com/cinecritic/review-system/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	// Create persists a new account. Returns domain.ErrUserExists when the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
