package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinecritic/review-system/internal/core/domain"
)

const (
	moviesCollection = "movies"
	genresCollection = "genres"
)

// MovieRepository persists movies and the shared genre rows. Movie documents
// embed the resolved genres (id + name); the genres collection stays the
// canonical dedup registry with a unique index on name.
type MovieRepository struct {
	db     *mongo.Database
	movies *mongo.Collection
	genres *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{
		db:     db,
		movies: db.Collection(moviesCollection),
		genres: db.Collection(genresCollection),
	}
}

type mongoGenre struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

type mongoMovie struct {
	ID             int64        `bson:"_id"`
	Title          string       `bson:"title"`
	Duration       string       `bson:"duration"`
	Premiere       string       `bson:"premiere"`
	Classification int          `bson:"classification"`
	Synopsis       string       `bson:"synopsis"`
	Genres         []mongoGenre `bson:"genres"`
}

func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, moviesCollection)
	if err != nil {
		return nil, err
	}

	doc := toMovieDoc(m)
	doc.ID = id

	if _, err := r.movies.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}

	return toMovie(doc), nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoMovie
	if err := r.movies.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return toMovie(doc), nil
}

// List returns movies ordered by id. A non-empty title filters by
// case-insensitive substring match.
func (r *MovieRepository) List(ctx context.Context, title string) ([]*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if title != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(title), Options: "i"}
	}

	cursor, err := r.movies.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoMovie
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}

	movies := make([]*domain.Movie, 0, len(docs))
	for _, doc := range docs {
		movies = append(movies, toMovie(doc))
	}
	return movies, nil
}

func (r *MovieRepository) Update(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMovieDoc(m)
	doc.ID = m.ID

	res, err := r.movies.ReplaceOne(ctx, bson.M{"_id": m.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMovieNotFound
	}
	return toMovie(doc), nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.movies.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

// FindOrCreateGenre resolves a genre by exact name, creating it on a miss.
// The unique index on name backstops the create: losing the insert race
// means someone else created the row, so it is re-read.
func (r *MovieRepository) FindOrCreateGenre(ctx context.Context, name string) (*domain.Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	genre, err := r.findGenre(ctx, name)
	if err == nil {
		return genre, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find genre: %w", err)
	}

	id, err := nextID(ctx, r.db, genresCollection)
	if err != nil {
		return nil, err
	}

	if _, err := r.genres.InsertOne(ctx, mongoGenre{ID: id, Name: name}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.findGenre(ctx, name)
		}
		return nil, fmt.Errorf("insert genre: %w", err)
	}

	return &domain.Genre{ID: id, Name: name}, nil
}

func (r *MovieRepository) findGenre(ctx context.Context, name string) (*domain.Genre, error) {
	var doc mongoGenre
	if err := r.genres.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		return nil, err
	}
	return &domain.Genre{ID: doc.ID, Name: doc.Name}, nil
}

// EnsureIndexes creates the unique genre name index.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.genres.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func toMovieDoc(m *domain.Movie) mongoMovie {
	genres := make([]mongoGenre, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, mongoGenre{ID: g.ID, Name: g.Name})
	}
	return mongoMovie{
		ID:             m.ID,
		Title:          m.Title,
		Duration:       m.Duration,
		Premiere:       m.Premiere,
		Classification: m.Classification,
		Synopsis:       m.Synopsis,
		Genres:         genres,
	}
}

func toMovie(doc mongoMovie) *domain.Movie {
	genres := make([]domain.Genre, 0, len(doc.Genres))
	for _, g := range doc.Genres {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return &domain.Movie{
		ID:             doc.ID,
		Title:          doc.Title,
		Duration:       doc.Duration,
		Premiere:       doc.Premiere,
		Classification: doc.Classification,
		Synopsis:       doc.Synopsis,
		Genres:         genres,
	}
}
