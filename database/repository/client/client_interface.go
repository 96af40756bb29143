package clientRepo

import (
	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ClientRepository defines methods for client data access.
type ClientRepository interface {
	// GetByID retrieves a client by its unique ID. Returns nil when absent.
	GetByID(id string) (*models.Client, error)
	// GetByEmail retrieves a client by its email address. Returns nil when absent.
	GetByEmail(email string) (*models.Client, error)
	// Create inserts a new client record.
	Create(client *models.Client) error
	// UpdateSetDocument applies a $set-style partial update.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// GetByIDWithProjection retrieves a client by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Client, error)
	// AppendReservationSummary pushes a reservation summary onto the client's
	// denormalized cache.
	AppendReservationSummary(id string, summary models.ReservationSummary) error
	// UpdateReservationSummaryStatus syncs the denormalized cache entry for a
	// reservation with its new status.
	UpdateReservationSummaryStatus(clientID, reservationID string, status models.ReservationStatus) error
	// PublicNames returns the public name fields for the given client IDs.
	PublicNames(ids []string) (map[string]models.PublicProfile, error)
}
