package provider

import (
	providerRepo "homeserve/database/repository/provider"
	"homeserve/models"

	"github.com/go-redis/redis/v8"
)

// ProfileUpdate carries the mutable profile fields. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	HourlyRate  *float64 `json:"hourlyRate,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// ProviderService exposes provider discovery and profile management.
type ProviderService interface {
	GetByID(id string) (*models.Provider, error)
	List() ([]models.Provider, error)
	ListByService(serviceType models.ServiceType) ([]models.Provider, error)
	Search(criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error)
	UpdateProfile(providerID string, update ProfileUpdate) (*models.Provider, error)
	UpdateAvailability(providerID string, availability []string) (*models.Provider, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo  providerRepo.ProviderRepository
	Cache *redis.Client
}
