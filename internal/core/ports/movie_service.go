package ports

import (
	"context"

	"github.com/cinecritic/review-system/internal/core/domain"
)

// GenreInput is a single genre item in a movie payload.
type GenreInput struct {
	Name string
}

// MovieInput carries all data needed to create or replace a movie.
type MovieInput struct {
	Title          string
	Duration       string
	Premiere       string
	Classification int
	Synopsis       string
	Genres         []GenreInput
}

// MovieService defines use-case operations for the movie catalog. Role
// gating happens before these are reached; the service only enforces data
// invariants (genre dedup, cascade on delete).
type MovieService interface {
	Create(ctx context.Context, input MovieInput) (*domain.Movie, error)
	Get(ctx context.Context, id int64) (*domain.Movie, error)
	List(ctx context.Context, title string) ([]*domain.Movie, error)
	Update(ctx context.Context, id int64, input MovieInput) (*domain.Movie, error)
	// Delete removes the movie and cascades to its reviews.
	Delete(ctx context.Context, id int64) error
}
