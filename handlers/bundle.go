package handlers

import (
	clientRepo "homeserve/database/repository/client"
	providerRepo "homeserve/database/repository/provider"
)

// HandlerBundle aggregates the repositories needed by middleware and the
// handlers bound by the routes package.
type HandlerBundle struct {
	// Repositories consumed by the auth middleware.
	ClientRepo   clientRepo.ClientRepository
	ProviderRepo providerRepo.ProviderRepository

	Auth         *AuthHandler
	Providers    *ProviderHandler
	Reservations *ReservationHandler
	Reviews      *ReviewHandler
}
