package reservation

import (
	"time"

	clientRepo "homeserve/database/repository/client"
	providerRepo "homeserve/database/repository/provider"
	reservationRepo "homeserve/database/repository/reservation"
	"homeserve/models"
)

// CreateRequest carries the fields a client submits to book a provider.
type CreateRequest struct {
	ProviderID    string         `json:"providerId" binding:"required"`
	ServiceDate   time.Time      `json:"serviceDate" binding:"required"`
	DurationHours float64        `json:"durationHours" binding:"required"`
	Address       models.Address `json:"address"`
	Comment       string         `json:"comment"`
}

// ReservationService is the reservation ledger: it creates bookings with a
// fixed price and walks them through their lifecycle.
type ReservationService interface {
	Create(clientID string, req CreateRequest) (*models.Reservation, error)
	ListForUser(requester models.Principal) ([]models.ReservationView, error)
	Transition(reservationID string, requester models.Principal, newStatus models.ReservationStatus) (*models.Reservation, error)
}

// DefaultReservationService is the production implementation.
type DefaultReservationService struct {
	Repo      reservationRepo.ReservationRepository
	Clients   clientRepo.ClientRepository
	Providers providerRepo.ProviderRepository
}
