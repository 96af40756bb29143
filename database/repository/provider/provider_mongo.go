package providerRepo

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

// publicProjection excludes credential fields from reads that serve public
// listings.
var publicProjection = bson.M{"passwordHash": 0, "tokenHash": 0}

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	coll := database.DB().Collection("providers")
	repo := &MongoProviderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "serviceType", Value: 1}, {Key: "rating", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByIDWithProjection retrieves a provider by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoProviderRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Provider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&provider); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

// GetByID retrieves a provider by its unique ID (full document).
func (r *MongoProviderRepo) GetByID(id string) (*models.Provider, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByEmail retrieves a provider by its email address (full document).
func (r *MongoProviderRepo) GetByEmail(email string) (*models.Provider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&provider); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch provider with email %s: %w", email, err)
	}
	return &provider, nil
}

// GetAll retrieves all providers without credential fields.
func (r *MongoProviderRepo) GetAll() ([]models.Provider, error) {
	return r.find(bson.M{}, nil)
}

// ListByServiceType retrieves providers offering the given service type.
func (r *MongoProviderRepo) ListByServiceType(serviceType models.ServiceType) ([]models.Provider, error) {
	return r.find(bson.M{"serviceType": serviceType}, nil)
}

// Search retrieves providers matching the criteria, sorted by rating
// descending.
func (r *MongoProviderRepo) Search(criteria ProviderSearchCriteria) ([]models.Provider, error) {
	filter := bson.M{}
	if criteria.ServiceType != "" {
		filter["serviceType"] = criteria.ServiceType
	}
	if criteria.MaxHourlyRate > 0 {
		filter["hourlyRate"] = bson.M{"$lte": criteria.MaxHourlyRate}
	}
	sort := bson.D{{Key: "rating", Value: -1}}
	return r.find(filter, sort)
}

func (r *MongoProviderRepo) find(filter bson.M, sort bson.D) ([]models.Provider, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetProjection(publicProjection)
	if sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve providers: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

// Create inserts a new provider document.
func (r *MongoProviderRepo) Create(provider *models.Provider) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, provider)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial update wrapped in $set.
func (r *MongoProviderRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	update := bson.M{"$set": updateDoc}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s not found", id)
	}
	return nil
}

// UpdateRating writes the derived aggregate rating.
func (r *MongoProviderRepo) UpdateRating(id string, rating float64) error {
	return r.UpdateSetDocument(id, bson.M{"rating": rating})
}

// PublicNames returns the public name fields for the given provider IDs.
func (r *MongoProviderRepo) PublicNames(ids []string) (map[string]models.PublicProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"id": 1, "firstName": 1, "lastName": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider names: %w", err)
	}
	defer cursor.Close(ctx)

	names := make(map[string]models.PublicProfile, len(ids))
	for cursor.Next(ctx) {
		var p models.Provider
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode provider: %w", err)
		}
		names[p.ID] = p.PublicName()
	}
	return names, nil
}
