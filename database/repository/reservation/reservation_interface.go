package reservationRepo

import (
	"time"

	"homeserve/models"
)

// ReservationRepository defines methods for reservation data access.
// Reservations are never deleted; their status only moves forward.
type ReservationRepository interface {
	// Create inserts a new reservation record.
	Create(reservation *models.Reservation) error
	// GetByID retrieves a reservation by its unique ID. Returns nil when absent.
	GetByID(id string) (*models.Reservation, error)
	// ListByClient retrieves all reservations booked by the client.
	ListByClient(clientID string) ([]models.Reservation, error)
	// ListByProvider retrieves all reservations addressed to the provider.
	ListByProvider(providerID string) ([]models.Reservation, error)
	// UpdateStatus persists a new lifecycle status.
	UpdateStatus(id string, status models.ReservationStatus) error
	// ExistsDone reports whether a reservation with status done exists for the
	// exact (client, provider, serviceDate) tuple.
	ExistsDone(clientID, providerID string, serviceDate time.Time) (bool, error)
}
