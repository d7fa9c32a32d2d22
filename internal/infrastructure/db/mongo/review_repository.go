package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinecritic/review-system/internal/core/domain"
)

const reviewsCollection = "reviews"

// ReviewRepository persists reviews. The unique compound index on
// (critic_id, movie_id) makes Create the atomic check-then-write for the
// one-review-per-critic-per-movie invariant: concurrent inserts for the same
// pair race on the index, and every loser gets a duplicate-key error.
type ReviewRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{db: db, coll: db.Collection(reviewsCollection)}
}

type mongoCritic struct {
	ID        int64  `bson:"id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
}

type mongoReview struct {
	ID       int64       `bson:"_id"`
	Stars    int         `bson:"stars"`
	Review   string      `bson:"review"`
	Spoilers bool        `bson:"spoilers"`
	MovieID  int64       `bson:"movie_id"`
	CriticID int64       `bson:"critic_id"`
	Critic   mongoCritic `bson:"critic"`
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, reviewsCollection)
	if err != nil {
		return nil, err
	}

	doc := toReviewDoc(review)
	doc.ID = id

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrReviewExists
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	return toReview(doc), nil
}

func (r *ReviewRepository) FindByCriticAndMovie(ctx context.Context, criticID, movieID int64) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoReview
	err := r.coll.FindOne(ctx, bson.M{"critic_id": criticID, "movie_id": movieID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return toReview(doc), nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toReviewDoc(review)
	doc.ID = review.ID

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": review.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrReviewNotFound
	}
	return toReview(doc), nil
}

func (r *ReviewRepository) ListAll(ctx context.Context) ([]*domain.Review, error) {
	return r.list(ctx, bson.M{})
}

func (r *ReviewRepository) ListByCritic(ctx context.Context, criticID int64) ([]*domain.Review, error) {
	return r.list(ctx, bson.M{"critic_id": criticID})
}

func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID int64) ([]*domain.Review, error) {
	return r.list(ctx, bson.M{"movie_id": movieID})
}

func (r *ReviewRepository) DeleteByMovie(ctx context.Context, movieID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"movie_id": movieID})
	if err != nil {
		return 0, fmt.Errorf("delete reviews: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ReviewRepository) list(ctx context.Context, filter bson.M) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoReview
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	reviews := make([]*domain.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, toReview(doc))
	}
	return reviews, nil
}

// EnsureIndexes creates the unique (critic_id, movie_id) index the ledger
// invariant rests on.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "critic_id", Value: 1}, {Key: "movie_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func toReviewDoc(review *domain.Review) mongoReview {
	return mongoReview{
		ID:       review.ID,
		Stars:    review.Stars,
		Review:   review.Review,
		Spoilers: review.Spoilers,
		MovieID:  review.MovieID,
		CriticID: review.Critic.ID,
		Critic: mongoCritic{
			ID:        review.Critic.ID,
			FirstName: review.Critic.FirstName,
			LastName:  review.Critic.LastName,
		},
	}
}

func toReview(doc mongoReview) *domain.Review {
	return &domain.Review{
		ID:       doc.ID,
		Stars:    doc.Stars,
		Review:   doc.Review,
		Spoilers: doc.Spoilers,
		MovieID:  doc.MovieID,
		Critic: domain.Critic{
			ID:        doc.Critic.ID,
			FirstName: doc.Critic.FirstName,
			LastName:  doc.Critic.LastName,
		},
	}
}
