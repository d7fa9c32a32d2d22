package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cinecritic/review-system/internal/core/domain"
	"github.com/cinecritic/review-system/internal/core/ports"
)

// MovieService implements catalog operations. Genre payload items are
// resolved through the repository's find-or-create on every call, so two
// movies naming the same genre share one genre row.
type MovieService struct {
	movies  ports.MovieRepository
	reviews ports.ReviewRepository
	logger  zerolog.Logger
}

func NewMovieService(movies ports.MovieRepository, reviews ports.ReviewRepository, logger zerolog.Logger) *MovieService {
	return &MovieService{movies: movies, reviews: reviews, logger: logger}
}

func (s *MovieService) Create(ctx context.Context, input ports.MovieInput) (*domain.Movie, error) {
	genres, err := s.resolveGenres(ctx, input.Genres)
	if err != nil {
		return nil, err
	}

	movie := &domain.Movie{
		Title:          input.Title,
		Duration:       input.Duration,
		Premiere:       input.Premiere,
		Classification: input.Classification,
		Synopsis:       input.Synopsis,
		Genres:         genres,
	}

	created, err := s.movies.Create(ctx, movie)
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create movie")
		return nil, err
	}

	s.logger.Info().Int64("movie_id", created.ID).Str("title", created.Title).Msg("movie created")

	return created, nil
}

func (s *MovieService) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	return s.movies.FindByID(ctx, id)
}

func (s *MovieService) List(ctx context.Context, title string) ([]*domain.Movie, error) {
	return s.movies.List(ctx, title)
}

// Update replaces the movie's fields and resolves the payload genres again.
// Genres accumulate: an update adds new associations but never removes one.
func (s *MovieService) Update(ctx context.Context, id int64, input ports.MovieInput) (*domain.Movie, error) {
	existing, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, input.Genres)
	if err != nil {
		return nil, err
	}

	movie := &domain.Movie{
		ID:             existing.ID,
		Title:          input.Title,
		Duration:       input.Duration,
		Premiere:       input.Premiere,
		Classification: input.Classification,
		Synopsis:       input.Synopsis,
		Genres:         mergeGenres(existing.Genres, genres),
	}

	return s.movies.Update(ctx, movie)
}

// Delete removes the movie and cascades to its reviews.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	if _, err := s.movies.FindByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.reviews.DeleteByMovie(ctx, id)
	if err != nil {
		return fmt.Errorf("cascade reviews: %w", err)
	}

	if err := s.movies.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("movie_id", id).Int64("reviews_removed", removed).Msg("movie deleted")
	return nil
}

// resolveGenres maps payload genre names to canonical genre rows. The lookup
// is exact and case-sensitive; a miss creates the genre.
func (s *MovieService) resolveGenres(ctx context.Context, inputs []ports.GenreInput) ([]domain.Genre, error) {
	genres := make([]domain.Genre, 0, len(inputs))
	for _, in := range inputs {
		genre, err := s.movies.FindOrCreateGenre(ctx, in.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve genre %q: %w", in.Name, err)
		}
		genres = append(genres, *genre)
	}
	return genres, nil
}

// mergeGenres appends incoming genres to current, skipping ids already held.
func mergeGenres(current, incoming []domain.Genre) []domain.Genre {
	seen := make(map[int64]struct{}, len(current))
	merged := make([]domain.Genre, 0, len(current)+len(incoming))
	for _, g := range current {
		seen[g.ID] = struct{}{}
		merged = append(merged, g)
	}
	for _, g := range incoming {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		merged = append(merged, g)
	}
	return merged
}
