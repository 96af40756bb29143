package clientRepo

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

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo creates a new instance of ClientRepository using MongoDB.
func NewMongoClientRepo() ClientRepository {
	coll := database.DB().Collection("clients")
	repo := &MongoClientRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoClientRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByIDWithProjection retrieves a client by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoClientRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Client, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var client models.Client
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch client with id %s: %w", id, err)
	}
	return &client, nil
}

// GetByID retrieves a client by its unique ID (full document).
func (r *MongoClientRepo) GetByID(id string) (*models.Client, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByEmail retrieves a client by its email address (full document).
func (r *MongoClientRepo) GetByEmail(email string) (*models.Client, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var client models.Client
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch client with email %s: %w", email, err)
	}
	return &client, nil
}

// Create inserts a new client document.
func (r *MongoClientRepo) Create(client *models.Client) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial update wrapped in $set.
func (r *MongoClientRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	update := bson.M{"$set": updateDoc}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update client with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("client with id %s not found", id)
	}
	return nil
}

// AppendReservationSummary pushes a reservation summary onto the client's
// denormalized cache.
func (r *MongoClientRepo) AppendReservationSummary(id string, summary models.ReservationSummary) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{
		"$push": bson.M{"reservations": summary},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to append reservation summary for client %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("client with id %s not found", id)
	}
	return nil
}

// UpdateReservationSummaryStatus syncs the cached reservation entry with its
// new status.
func (r *MongoClientRepo) UpdateReservationSummaryStatus(clientID, reservationID string, status models.ReservationStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":                         clientID,
		"reservations.reservationId": reservationID,
	}
	update := bson.M{
		"$set": bson.M{
			"reservations.$.status": status,
			"updatedAt":             time.Now(),
		},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation summary for client %s: %w", clientID, err)
	}
	return nil
}

// PublicNames returns the public name fields for the given client IDs.
func (r *MongoClientRepo) PublicNames(ids []string) (map[string]models.PublicProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"id": 1, "firstName": 1, "lastName": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client names: %w", err)
	}
	defer cursor.Close(ctx)

	names := make(map[string]models.PublicProfile, len(ids))
	for cursor.Next(ctx) {
		var c models.Client
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode client: %w", err)
		}
		names[c.ID] = c.PublicName()
	}
	return names, nil
}
