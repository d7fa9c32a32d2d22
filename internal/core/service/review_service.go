package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cinecritic/review-system/internal/core/domain"
	"github.com/cinecritic/review-system/internal/core/ports"
)

// ReviewService implements the review ledger. The one-review-per-critic-
// per-movie invariant is enforced by the repository's atomic create; the
// service layers the movie-existence check and ownership semantics on top.
type ReviewService struct {
	reviews  ports.ReviewRepository
	movies   ports.MovieRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewReviewService(
	reviews ports.ReviewRepository,
	movies ports.MovieRepository,
	accounts ports.AccountRepository,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{reviews: reviews, movies: movies, accounts: accounts, logger: logger}
}

// Create attributes a new review of the movie to the calling critic.
func (s *ReviewService) Create(ctx context.Context, input ports.ReviewInput) (*domain.Review, error) {
	if !domain.ValidStars(input.Stars) {
		return nil, domain.ErrValidation
	}

	// Unknown movie beats duplicate: check existence before inserting.
	if _, err := s.movies.FindByID(ctx, input.MovieID); err != nil {
		return nil, err
	}

	critic, err := s.accounts.FindByID(ctx, input.CriticID)
	if err != nil {
		return nil, fmt.Errorf("resolve critic: %w", err)
	}

	review := &domain.Review{
		Stars:    input.Stars,
		Review:   input.Review,
		Spoilers: input.Spoilers,
		MovieID:  input.MovieID,
		Critic: domain.Critic{
			ID:        critic.ID,
			FirstName: critic.FirstName,
			LastName:  critic.LastName,
		},
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		if errors.Is(err, domain.ErrReviewExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("movie_id", input.MovieID).Int64("critic_id", input.CriticID).Msg("failed to create review")
		return nil, err
	}

	s.logger.Info().Int64("review_id", created.ID).Int64("movie_id", input.MovieID).Int64("critic_id", input.CriticID).Msg("review created")
	return created, nil
}

// Update replaces the caller's review of the movie. The review is looked up
// by the (caller, movie) pair, so a critic can never reach another critic's
// review, and the critic of record stays the caller by construction. A
// missing movie and a missing review collapse into the same not-found result.
func (s *ReviewService) Update(ctx context.Context, input ports.ReviewInput) (*domain.Review, error) {
	if !domain.ValidStars(input.Stars) {
		return nil, domain.ErrValidation
	}

	existing, err := s.reviews.FindByCriticAndMovie(ctx, input.CriticID, input.MovieID)
	if err != nil {
		return nil, err
	}

	existing.Stars = input.Stars
	existing.Review = input.Review
	existing.Spoilers = input.Spoilers

	return s.reviews.Update(ctx, existing)
}

// List returns every review for admins and only the caller's own for critics.
func (s *ReviewService) List(ctx context.Context, identity domain.Identity) ([]*domain.Review, error) {
	if !identity.Role.CanListReviews() {
		return nil, domain.ErrForbidden
	}
	if identity.Role.SeesAllReviews() {
		return s.reviews.ListAll(ctx)
	}
	return s.reviews.ListByCritic(ctx, identity.UserID)
}

// ListByMovie returns a movie's reviews for embedding in movie payloads.
func (s *ReviewService) ListByMovie(ctx context.Context, movieID int64) ([]*domain.Review, error) {
	return s.reviews.ListByMovie(ctx, movieID)
}
