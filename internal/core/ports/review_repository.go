package ports

import (
	"context"

	"github.com/cinecritic/review-system/internal/core/domain"
)

// ReviewRepository defines persistence operations for the review ledger.
// The (critic, movie) pair is the natural key; Create must enforce its
// uniqueness atomically at the storage layer, not with a read-then-write.
type ReviewRepository interface {
	// Create persists a new review. Returns domain.ErrReviewExists when a
	// review for the same (critic, movie) pair already exists.
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	// FindByCriticAndMovie returns domain.ErrReviewNotFound when no review
	// exists for the pair.
	FindByCriticAndMovie(ctx context.Context, criticID, movieID int64) (*domain.Review, error)
	Update(ctx context.Context, r *domain.Review) (*domain.Review, error)
	ListAll(ctx context.Context) ([]*domain.Review, error)
	ListByCritic(ctx context.Context, criticID int64) ([]*domain.Review, error)
	ListByMovie(ctx context.Context, movieID int64) ([]*domain.Review, error)
	// DeleteByMovie removes all reviews of a movie and returns the count.
	DeleteByMovie(ctx context.Context, movieID int64) (int64, error)
}
