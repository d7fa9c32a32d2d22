package ports

import (
	"context"

	"github.com/cinecritic/review-system/internal/core/domain"
)

// ReviewInput carries all data needed to create or replace a review. The
// handler builds it from path, body, and the authenticated identity; the
// critic of record is always the caller, never a payload field.
type ReviewInput struct {
	CriticID int64
	MovieID  int64
	Stars    int
	Review   string
	Spoilers bool
}

// ReviewService defines use-case operations for the review ledger.
type ReviewService interface {
	// Create attributes a new review to the calling critic. Fails with
	// domain.ErrMovieNotFound for an unknown movie and domain.ErrReviewExists
	// for a duplicate (critic, movie) pair.
	Create(ctx context.Context, input ReviewInput) (*domain.Review, error)
	// Update replaces the caller's review of the movie. A missing movie and
	// a missing review both surface as domain.ErrReviewNotFound.
	Update(ctx context.Context, input ReviewInput) (*domain.Review, error)
	// List returns all reviews for admins and only the caller's own for
	// critics. Other roles are rejected with domain.ErrForbidden.
	List(ctx context.Context, identity domain.Identity) ([]*domain.Review, error)
	// ListByMovie returns a movie's reviews for embedding in movie payloads.
	ListByMovie(ctx context.Context, movieID int64) ([]*domain.Review, error)
}
