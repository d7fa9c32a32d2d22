package domain

import "errors"

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrForbidden     = errors.New("access forbidden")
)

// Genre is a deduplicated label shared across movies: resolving a genre by
// name reuses the existing row rather than creating a twin.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie is the catalog aggregate. Deleting a movie cascades to its reviews;
// genres are shared and survive the movie.
type Movie struct {
	ID             int64
	Title          string
	Duration       string
	Premiere       string
	Classification int
	Synopsis       string
	Genres         []Genre
}
