package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"homeserve/database"
	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	coll := database.DB().Collection("reviews")
	repo := &MongoReviewRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// unique tuple index enforces one review per (client, provider, serviceDate).
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "serviceDate", Value: -1}}},
		{Keys: bson.D{
			{Key: "clientId", Value: 1},
			{Key: "providerId", Value: 1},
			{Key: "serviceDate", Value: 1},
		}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new review document.
func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("review already exists for this service date: %w", err)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by its unique ID.
func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return &review, nil
}

// Update replaces the mutable fields of an existing review.
func (r *MongoReviewRepo) Update(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	review.UpdatedAt = time.Now()
	filter := bson.M{"id": review.ID}
	update := bson.M{"$set": bson.M{
		"rating":    review.Rating,
		"comment":   review.Comment,
		"updatedAt": review.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update review with id %s: %w", review.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("review with id %s not found", review.ID)
	}
	return nil
}

// Delete removes a review document by its ID.
func (r *MongoReviewRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("review with id %s not found", id)
	}
	return nil
}

// ExistsForTuple reports whether a review already exists for the exact
// (client, provider, serviceDate) tuple.
func (r *MongoReviewRepo) ExistsForTuple(clientID, providerID string, serviceDate time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"clientId":    clientID,
		"providerId":  providerID,
		"serviceDate": serviceDate,
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return count > 0, nil
}

// AverageRating computes the unrounded mean rating over all reviews for the
// provider via an aggregation pipeline. Recomputing from the full set on
// every mutation avoids drift from incremental adjustments.
func (r *MongoReviewRepo) AverageRating(providerID string) (float64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"providerId": providerID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("rating aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode rating aggregation: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Avg, nil
}

// List retrieves reviews matching the filter, sorted as requested.
func (r *MongoReviewRepo) List(filter models.ReviewFilter) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.ProviderID != "" {
		query["providerId"] = filter.ProviderID
	}
	rating := bson.M{}
	if filter.MinRating > 0 {
		rating["$gte"] = filter.MinRating
	}
	if filter.MaxRating > 0 {
		rating["$lte"] = filter.MaxRating
	}
	if len(rating) > 0 {
		query["rating"] = rating
	}
	dates := bson.M{}
	if !filter.DateFrom.IsZero() {
		dates["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		dates["$lte"] = filter.DateTo
	}
	if len(dates) > 0 {
		query["serviceDate"] = dates
	}

	sortField := "serviceDate"
	if filter.SortBy == models.SortByRating {
		sortField = "rating"
	}
	direction := 1
	if filter.Descending {
		direction = -1
	}

	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: direction}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
