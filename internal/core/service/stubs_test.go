package service

import (
	"context"
	"strings"
	"sync"

	"github.com/cinecritic/review-system/internal/core/domain"
)

// In-memory repository stubs shared by the service tests. The review stub
// guards its pair index with a mutex so the concurrent-create test exercises
// the same atomic check-then-write contract the real storage provides.

type stubAccountRepo struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]*domain.User
	byID   map[int64]*domain.User
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byName: make(map[string]*domain.User), byID: make(map[int64]*domain.User)}
}

func (r *stubAccountRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := *user
	stored.ID = r.nextID
	r.byName[stored.Username] = &stored
	r.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

type stubMovieRepo struct {
	mu           sync.Mutex
	nextMovieID  int64
	nextGenreID  int64
	movies       map[int64]*domain.Movie
	genres       map[string]*domain.Genre
	genreLookups int
}

func newStubMovieRepo() *stubMovieRepo {
	return &stubMovieRepo{movies: make(map[int64]*domain.Movie), genres: make(map[string]*domain.Genre)}
}

func (r *stubMovieRepo) Create(_ context.Context, m *domain.Movie) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextMovieID++
	stored := *m
	stored.ID = r.nextMovieID
	r.movies[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubMovieRepo) FindByID(_ context.Context, id int64) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	out := *m
	return &out, nil
}

func (r *stubMovieRepo) List(_ context.Context, title string) ([]*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Movie
	for id := int64(1); id <= r.nextMovieID; id++ {
		m, ok := r.movies[id]
		if !ok {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(title)) {
			continue
		}
		clone := *m
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubMovieRepo) Update(_ context.Context, m *domain.Movie) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[m.ID]; !ok {
		return nil, domain.ErrMovieNotFound
	}
	stored := *m
	r.movies[m.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubMovieRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[id]; !ok {
		return domain.ErrMovieNotFound
	}
	delete(r.movies, id)
	return nil
}

func (r *stubMovieRepo) FindOrCreateGenre(_ context.Context, name string) (*domain.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.genreLookups++
	if g, ok := r.genres[name]; ok {
		out := *g
		return &out, nil
	}
	r.nextGenreID++
	g := &domain.Genre{ID: r.nextGenreID, Name: name}
	r.genres[name] = g
	out := *g
	return &out, nil
}

type reviewKey struct {
	criticID int64
	movieID  int64
}

type stubReviewRepo struct {
	mu     sync.Mutex
	nextID int64
	byPair map[reviewKey]*domain.Review
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{byPair: make(map[reviewKey]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := reviewKey{criticID: review.Critic.ID, movieID: review.MovieID}
	if _, exists := r.byPair[key]; exists {
		return nil, domain.ErrReviewExists
	}
	r.nextID++
	stored := *review
	stored.ID = r.nextID
	r.byPair[key] = &stored
	out := stored
	return &out, nil
}

func (r *stubReviewRepo) FindByCriticAndMovie(_ context.Context, criticID, movieID int64) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.byPair[reviewKey{criticID: criticID, movieID: movieID}]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	out := *review
	return &out, nil
}

func (r *stubReviewRepo) Update(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := reviewKey{criticID: review.Critic.ID, movieID: review.MovieID}
	if _, ok := r.byPair[key]; !ok {
		return nil, domain.ErrReviewNotFound
	}
	stored := *review
	r.byPair[key] = &stored
	out := stored
	return &out, nil
}

func (r *stubReviewRepo) ListAll(_ context.Context) ([]*domain.Review, error) {
	return r.listWhere(func(*domain.Review) bool { return true }), nil
}

func (r *stubReviewRepo) ListByCritic(_ context.Context, criticID int64) ([]*domain.Review, error) {
	return r.listWhere(func(review *domain.Review) bool { return review.Critic.ID == criticID }), nil
}

func (r *stubReviewRepo) ListByMovie(_ context.Context, movieID int64) ([]*domain.Review, error) {
	return r.listWhere(func(review *domain.Review) bool { return review.MovieID == movieID }), nil
}

func (r *stubReviewRepo) DeleteByMovie(_ context.Context, movieID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for key := range r.byPair {
		if key.movieID == movieID {
			delete(r.byPair, key)
			removed++
		}
	}
	return removed, nil
}

func (r *stubReviewRepo) listWhere(keep func(*domain.Review) bool) []*domain.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Review, 0, len(r.byPair))
	for id := int64(1); id <= r.nextID; id++ {
		for _, review := range r.byPair {
			if review.ID == id && keep(review) {
				clone := *review
				out = append(out, &clone)
			}
		}
	}
	return out
}
