package reservation

import (
	"homeserve/models"
	"homeserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create books a provider for a client. The price is computed from the
// provider's current hourly rate and never recomputed afterwards.
func (s *DefaultReservationService) Create(clientID string, req CreateRequest) (*models.Reservation, error) {
	if req.DurationHours <= 0 {
		return nil, utils.NewInvalidInput("duration must be positive")
	}
	if req.ServiceDate.IsZero() {
		return nil, utils.NewInvalidInput("service date is required")
	}

	prov, err := s.Providers.GetByID(req.ProviderID)
	if err != nil {
		utils.GetLogger().Error("Create: failed to fetch provider", zap.Error(err))
		return nil, utils.NewInternal("failed to create reservation")
	}
	if prov == nil {
		return nil, utils.NewNotFound("provider not found")
	}

	reservation := models.Reservation{
		ID:            uuid.New().String(),
		ClientID:      clientID,
		ProviderID:    req.ProviderID,
		ServiceDate:   req.ServiceDate,
		DurationHours: req.DurationHours,
		Status:        models.StatusPending,
		Address:       req.Address,
		Price:         prov.HourlyRate * req.DurationHours,
		Comment:       req.Comment,
	}

	if err := s.Repo.Create(&reservation); err != nil {
		utils.GetLogger().Error("Create: failed to create reservation", zap.Error(err))
		return nil, utils.NewInternal("failed to create reservation")
	}

	// Best effort: the client's embedded reservation list is a convenience
	// cache, the reservations collection stays authoritative.
	if err := s.Clients.AppendReservationSummary(clientID, reservation.Summary()); err != nil {
		utils.GetLogger().Warn("Create: failed to denormalize reservation summary",
			zap.String("clientId", clientID), zap.Error(err))
	}

	return &reservation, nil
}

// ListForUser returns the requester's reservations, each joined with the
// counterpart's public name.
func (s *DefaultReservationService) ListForUser(requester models.Principal) ([]models.ReservationView, error) {
	var (
		reservations []models.Reservation
		err          error
	)
	switch requester.Role {
	case models.RoleClient:
		reservations, err = s.Repo.ListByClient(requester.ID)
	case models.RoleProvider:
		reservations, err = s.Repo.ListByProvider(requester.ID)
	default:
		return nil, utils.NewInvalidInput("role must be client or provider")
	}
	if err != nil {
		utils.GetLogger().Error("ListForUser: failed to fetch reservations", zap.Error(err))
		return nil, utils.NewInternal("failed to fetch reservations")
	}

	counterpartIDs := make([]string, 0, len(reservations))
	for _, r := range reservations {
		if requester.Role == models.RoleClient {
			counterpartIDs = append(counterpartIDs, r.ProviderID)
		} else {
			counterpartIDs = append(counterpartIDs, r.ClientID)
		}
	}

	var names map[string]models.PublicProfile
	if requester.Role == models.RoleClient {
		names, err = s.Providers.PublicNames(counterpartIDs)
	} else {
		names, err = s.Clients.PublicNames(counterpartIDs)
	}
	if err != nil {
		utils.GetLogger().Error("ListForUser: failed to join counterpart names", zap.Error(err))
		return nil, utils.NewInternal("failed to fetch reservations")
	}

	views := make([]models.ReservationView, 0, len(reservations))
	for _, r := range reservations {
		counterpartID := r.ProviderID
		if requester.Role == models.RoleProvider {
			counterpartID = r.ClientID
		}
		views = append(views, models.ReservationView{
			Reservation: r,
			Counterpart: names[counterpartID],
		})
	}
	return views, nil
}

// Transition moves a reservation through its lifecycle. Only the reservation's
// client or provider may request it, and only along the allow-listed edges.
func (s *DefaultReservationService) Transition(reservationID string, requester models.Principal, newStatus models.ReservationStatus) (*models.Reservation, error) {
	if !newStatus.Valid() {
		return nil, utils.NewInvalidInput("unknown reservation status")
	}

	reservation, err := s.Repo.GetByID(reservationID)
	if err != nil {
		utils.GetLogger().Error("Transition: failed to fetch reservation", zap.Error(err))
		return nil, utils.NewInternal("failed to update reservation")
	}
	if reservation == nil {
		return nil, utils.NewNotFound("reservation not found")
	}

	switch requester.Role {
	case models.RoleClient:
		if reservation.ClientID != requester.ID {
			return nil, utils.NewForbidden("not a party to this reservation")
		}
	case models.RoleProvider:
		if reservation.ProviderID != requester.ID {
			return nil, utils.NewForbidden("not a party to this reservation")
		}
	default:
		return nil, utils.NewForbidden("not a party to this reservation")
	}

	if !reservation.Status.CanTransitionTo(newStatus) {
		return nil, utils.NewPreconditionFailed(
			"cannot move reservation from " + string(reservation.Status) + " to " + string(newStatus))
	}

	if err := s.Repo.UpdateStatus(reservationID, newStatus); err != nil {
		utils.GetLogger().Error("Transition: failed to persist status", zap.Error(err))
		return nil, utils.NewInternal("failed to update reservation")
	}
	reservation.Status = newStatus

	// Keep the client's denormalized summary in sync, best effort.
	if err := s.Clients.UpdateReservationSummaryStatus(reservation.ClientID, reservationID, newStatus); err != nil {
		utils.GetLogger().Warn("Transition: failed to sync reservation summary",
			zap.String("clientId", reservation.ClientID), zap.Error(err))
	}

	return reservation, nil
}
