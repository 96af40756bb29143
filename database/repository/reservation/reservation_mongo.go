package reservationRepo

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

// MongoReservationRepo implements ReservationRepository using MongoDB.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo creates a new instance of ReservationRepository using MongoDB.
func NewMongoReservationRepo() ReservationRepository {
	coll := database.DB().Collection("reservations")
	repo := &MongoReservationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// compound tuple index backs the review precondition lookup.
func (r *MongoReservationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "clientId", Value: 1}}},
		{Keys: bson.D{{Key: "providerId", Value: 1}}},
		{Keys: bson.D{
			{Key: "clientId", Value: 1},
			{Key: "providerId", Value: 1},
			{Key: "serviceDate", Value: 1},
		}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new reservation document.
func (r *MongoReservationRepo) Create(reservation *models.Reservation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// GetByID retrieves a reservation by its unique ID.
func (r *MongoReservationRepo) GetByID(id string) (*models.Reservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var reservation models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&reservation); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch reservation with id %s: %w", id, err)
	}
	return &reservation, nil
}

// ListByClient retrieves all reservations booked by the client.
func (r *MongoReservationRepo) ListByClient(clientID string) ([]models.Reservation, error) {
	return r.find(bson.M{"clientId": clientID})
}

// ListByProvider retrieves all reservations addressed to the provider.
func (r *MongoReservationRepo) ListByProvider(providerID string) ([]models.Reservation, error) {
	return r.find(bson.M{"providerId": providerID})
}

func (r *MongoReservationRepo) find(filter bson.M) ([]models.Reservation, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "serviceDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

// UpdateStatus persists a new lifecycle status.
func (r *MongoReservationRepo) UpdateStatus(id string, status models.ReservationStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("reservation with id %s not found", id)
	}
	return nil
}

// ExistsDone reports whether a completed reservation exists for the exact
// (client, provider, serviceDate) tuple.
func (r *MongoReservationRepo) ExistsDone(clientID, providerID string, serviceDate time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"clientId":    clientID,
		"providerId":  providerID,
		"serviceDate": serviceDate,
		"status":      models.StatusDone,
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check completed reservation: %w", err)
	}
	return count > 0, nil
}
