package ports

import (
	"context"

	"github.com/cinecritic/review-system/internal/core/domain"
)

// MovieRepository defines persistence operations for the movie catalog.
type MovieRepository interface {
	Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	// FindByID retrieves a movie with its genres resolved. Returns
	// domain.ErrMovieNotFound when no movie has the id.
	FindByID(ctx context.Context, id int64) (*domain.Movie, error)
	// List returns all movies, optionally filtered by a case-insensitive
	// title substring when title is non-empty.
	List(ctx context.Context, title string) ([]*domain.Movie, error)
	Update(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	Delete(ctx context.Context, id int64) error
	// FindOrCreateGenre resolves a genre by exact name match, creating it
	// when absent. The returned genre carries the canonical id either way.
	FindOrCreateGenre(ctx context.Context, name string) (*domain.Genre, error)
}
