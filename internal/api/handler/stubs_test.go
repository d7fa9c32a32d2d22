package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinecritic/review-system/internal/core/domain"
	"github.com/cinecritic/review-system/internal/core/ports"
)

// Stub services record the inputs they receive and play back canned results.
// Handlers return errors instead of writing error responses, so the tests
// assert on the returned error and on successful response bodies.

type stubAuthService struct {
	registerInput ports.RegisterInput
	registerUser  *domain.User
	registerErr   error

	loginToken string
	loginErr   error
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	s.registerInput = input
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerUser, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.loginToken, nil
}

type stubMovieService struct {
	createInput ports.MovieInput
	updateID    int64
	deletedID   int64

	movie     *domain.Movie
	movies    []*domain.Movie
	listTitle string
	err       error
}

func (s *stubMovieService) Create(_ context.Context, input ports.MovieInput) (*domain.Movie, error) {
	s.createInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.movie, nil
}

func (s *stubMovieService) Get(context.Context, int64) (*domain.Movie, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.movie, nil
}

func (s *stubMovieService) List(_ context.Context, title string) ([]*domain.Movie, error) {
	s.listTitle = title
	if s.err != nil {
		return nil, s.err
	}
	return s.movies, nil
}

func (s *stubMovieService) Update(_ context.Context, id int64, _ ports.MovieInput) (*domain.Movie, error) {
	s.updateID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.movie, nil
}

func (s *stubMovieService) Delete(_ context.Context, id int64) error {
	s.deletedID = id
	return s.err
}

type stubReviewService struct {
	createInput ports.ReviewInput
	updateInput ports.ReviewInput

	review  *domain.Review
	reviews []*domain.Review
	err     error
}

func (s *stubReviewService) Create(_ context.Context, input ports.ReviewInput) (*domain.Review, error) {
	s.createInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewService) Update(_ context.Context, input ports.ReviewInput) (*domain.Review, error) {
	s.updateInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewService) List(context.Context, domain.Identity) ([]*domain.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reviews, nil
}

func (s *stubReviewService) ListByMovie(context.Context, int64) ([]*domain.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reviews, nil
}

// newTestContext builds an echo context with the request validator attached,
// matching the router setup.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func setIdentity(c echo.Context, identity domain.Identity) {
	c.Set("identity", identity)
}
