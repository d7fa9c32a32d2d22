package handler

import (
	"github.com/cinecritic/review-system/internal/core/domain"
	"github.com/cinecritic/review-system/internal/core/ports"
)

// --- Request types ---

type registerRequest struct {
	Username    string `json:"username"   validate:"required"`
	Password    string `json:"password"   validate:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type genreRequest struct {
	Name string `json:"name" validate:"required"`
}

type movieRequest struct {
	Title          string         `json:"title"          validate:"required"`
	Duration       string         `json:"duration"       validate:"required"`
	Premiere       string         `json:"premiere"       validate:"required"`
	Classification int            `json:"classification" validate:"required"`
	Synopsis       string         `json:"synopsis"       validate:"required"`
	Genres         []genreRequest `json:"genres"         validate:"dive"`
}

// reviewRequest carries the body of review create and update. Spoilers is a
// pointer so an explicit false still satisfies required.
type reviewRequest struct {
	Stars    int    `json:"stars"    validate:"required,min=1,max=10"`
	Review   string `json:"review"   validate:"required"`
	Spoilers *bool  `json:"spoilers" validate:"required"`
}

// --- Response types ---

type loginResponse struct {
	Token string `json:"token"`
}

type criticResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// reviewResponse deliberately omits the movie id: reviews are always read in
// a movie's context or with the critic's own scope, never re-joined by id.
type reviewResponse struct {
	ID       int64          `json:"id"`
	Stars    int            `json:"stars"`
	Review   string         `json:"review"`
	Spoilers bool           `json:"spoilers"`
	Critic   criticResponse `json:"critic"`
}

// movieResponse embeds genres always. Reviews appear only for authenticated
// callers: a nil pointer drops the key from the JSON entirely, a non-nil
// pointer renders it even when the slice is empty.
type movieResponse struct {
	ID             int64             `json:"id"`
	Title          string            `json:"title"`
	Duration       string            `json:"duration"`
	Premiere       string            `json:"premiere"`
	Classification int               `json:"classification"`
	Synopsis       string            `json:"synopsis"`
	Genres         []domain.Genre    `json:"genres"`
	Reviews        *[]reviewResponse `json:"reviews,omitempty"`
}

// --- Mapping helpers ---

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:       r.ID,
		Stars:    r.Stars,
		Review:   r.Review,
		Spoilers: r.Spoilers,
		Critic: criticResponse{
			ID:        r.Critic.ID,
			FirstName: r.Critic.FirstName,
			LastName:  r.Critic.LastName,
		},
	}
}

func toReviewResponses(reviews []*domain.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out
}

func toMovieResponse(m *domain.Movie, reviews *[]reviewResponse) movieResponse {
	genres := m.Genres
	if genres == nil {
		genres = []domain.Genre{}
	}
	return movieResponse{
		ID:             m.ID,
		Title:          m.Title,
		Duration:       m.Duration,
		Premiere:       m.Premiere,
		Classification: m.Classification,
		Synopsis:       m.Synopsis,
		Genres:         genres,
		Reviews:        reviews,
	}
}

func toMovieInput(req movieRequest) ports.MovieInput {
	genres := make([]ports.GenreInput, 0, len(req.Genres))
	for _, g := range req.Genres {
		genres = append(genres, ports.GenreInput{Name: g.Name})
	}
	return ports.MovieInput{
		Title:          req.Title,
		Duration:       req.Duration,
		Premiere:       req.Premiere,
		Classification: req.Classification,
		Synopsis:       req.Synopsis,
		Genres:         genres,
	}
}
