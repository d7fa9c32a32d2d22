package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cinecritic/review-system/internal/core/domain"
)

func interstellar() *domain.Movie {
	return &domain.Movie{
		ID:             3,
		Title:          "Interstellar",
		Duration:       "2h49m",
		Premiere:       "2014-11-07",
		Classification: 12,
		Synopsis:       "a crew travels through a wormhole",
		Genres:         []domain.Genre{{ID: 1, Name: "Sci-Fi"}},
	}
}

func criticIdentity() domain.Identity {
	return domain.Identity{UserID: 7, Username: "ebert", Role: domain.RoleCritic}
}

func TestMovieHandlerGetAnonymousOmitsReviews(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{movie: interstellar()}, &stubReviewService{})

	c, rec := newTestContext(http.MethodGet, "/movies/3/", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if _, ok := got["reviews"]; ok {
		t.Fatal("anonymous payload carries the reviews key")
	}
	if got["title"] != "Interstellar" {
		t.Fatalf("title = %v", got["title"])
	}
}

func TestMovieHandlerGetAuthenticatedIncludesEmptyReviews(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{movie: interstellar()}, &stubReviewService{})

	c, rec := newTestContext(http.MethodGet, "/movies/3/", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	setIdentity(c, criticIdentity())

	if err := h.Get(c); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	// The key must be present even when no reviews exist.
	if !strings.Contains(rec.Body.String(), `"reviews":[]`) {
		t.Fatalf("body = %s, want an empty reviews array", rec.Body.String())
	}
}

func TestMovieHandlerGetEmbedsReviews(t *testing.T) {
	reviews := &stubReviewService{reviews: []*domain.Review{{
		ID:       1,
		Stars:    8,
		Review:   "soars",
		MovieID:  3,
		Critic:   domain.Critic{ID: 7, FirstName: "Roger", LastName: "Ebert"},
	}}}
	h := NewMovieHandler(&stubMovieService{movie: interstellar()}, reviews)

	c, rec := newTestContext(http.MethodGet, "/movies/3/", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	setIdentity(c, criticIdentity())

	if err := h.Get(c); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	var got struct {
		Reviews []map[string]any `json:"reviews"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(got.Reviews) != 1 {
		t.Fatalf("embedded %d reviews, want 1", len(got.Reviews))
	}
	critic, ok := got.Reviews[0]["critic"].(map[string]any)
	if !ok || critic["first_name"] != "Roger" {
		t.Fatalf("embedded review = %v", got.Reviews[0])
	}
}

func TestMovieHandlerGetNonNumericID(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{movie: interstellar()}, &stubReviewService{})

	c, _ := newTestContext(http.MethodGet, "/movies/abc/", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Get(c); !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("Get() error = %v, want ErrMovieNotFound", err)
	}
}

func TestMovieHandlerListPassesTitleFilter(t *testing.T) {
	movies := &stubMovieService{movies: []*domain.Movie{interstellar()}}
	h := NewMovieHandler(movies, &stubReviewService{})

	c, rec := newTestContext(http.MethodGet, "/movies/?title=inter", "")

	if err := h.List(c); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if movies.listTitle != "inter" {
		t.Fatalf("service got title filter %q, want %q", movies.listTitle, "inter")
	}
}

func TestMovieHandlerCreate(t *testing.T) {
	movies := &stubMovieService{movie: interstellar()}
	h := NewMovieHandler(movies, &stubReviewService{})

	body := `{"title":"Interstellar","duration":"2h49m","premiere":"2014-11-07","classification":12,"synopsis":"a crew travels through a wormhole","genres":[{"name":"Sci-Fi"}]}`
	c, rec := newTestContext(http.MethodPost, "/movies/", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if len(movies.createInput.Genres) != 1 || movies.createInput.Genres[0].Name != "Sci-Fi" {
		t.Fatalf("service got genres %v", movies.createInput.Genres)
	}
}

func TestMovieHandlerCreateMalformedGenres(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{}, &stubReviewService{})

	body := `{"title":"Interstellar","duration":"2h49m","premiere":"2014-11-07","classification":12,"synopsis":"x","genres":[{"name":""}]}`
	c, _ := newTestContext(http.MethodPost, "/movies/", body)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Create() error = %v, want 422", err)
	}
}

func TestMovieHandlerCreateMissingFields(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{}, &stubReviewService{})

	c, _ := newTestContext(http.MethodPost, "/movies/", `{"title":"Interstellar"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Create() error = %v, want 422", err)
	}
}

func TestMovieHandlerUpdateMissingFields(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{}, &stubReviewService{})

	c, _ := newTestContext(http.MethodPut, "/movies/3/", `{"title":"Interstellar"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("Update() error = %v, want 400", err)
	}
}

func TestMovieHandlerDelete(t *testing.T) {
	movies := &stubMovieService{}
	h := NewMovieHandler(movies, &stubReviewService{})

	c, rec := newTestContext(http.MethodDelete, "/movies/3/", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if movies.deletedID != 3 {
		t.Fatalf("service deleted id %d, want 3", movies.deletedID)
	}
}

func TestMovieHandlerDeleteUnknownMovie(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{err: domain.ErrMovieNotFound}, &stubReviewService{})

	c, _ := newTestContext(http.MethodDelete, "/movies/42/", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Delete(c); !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("Delete() error = %v, want ErrMovieNotFound", err)
	}
}
