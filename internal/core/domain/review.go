package domain

import "errors"

const (
	// MinStars and MaxStars bound the stars field, both inclusive.
	MinStars = 1
	MaxStars = 10
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("You already made this review.")
)

// Critic is the author summary embedded in review payloads.
type Critic struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Review is a critic's verdict on a single movie. At most one review exists
// per (critic, movie) pair; the pair is the review's natural key and only the
// authoring critic may mutate it.
type Review struct {
	ID       int64
	Stars    int
	Review   string
	Spoilers bool
	MovieID  int64
	Critic   Critic
}

// ValidStars reports whether stars is within the accepted range.
func ValidStars(stars int) bool {
	return stars >= MinStars && stars <= MaxStars
}
