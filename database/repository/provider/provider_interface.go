package providerRepo

import (
	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderSearchCriteria narrows provider discovery queries. Zero values mean
// "no constraint".
type ProviderSearchCriteria struct {
	ServiceType   models.ServiceType
	MaxHourlyRate float64
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID. Returns nil when absent.
	GetByID(id string) (*models.Provider, error)
	// GetByEmail retrieves a provider by its email address. Returns nil when absent.
	GetByEmail(email string) (*models.Provider, error)
	// GetAll retrieves all providers, credentials excluded.
	GetAll() ([]models.Provider, error)
	// ListByServiceType retrieves providers offering the given service type.
	ListByServiceType(serviceType models.ServiceType) ([]models.Provider, error)
	// Search retrieves providers matching the criteria, best rated first.
	Search(criteria ProviderSearchCriteria) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// UpdateSetDocument applies a $set-style partial update.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// UpdateRating writes the derived aggregate rating.
	UpdateRating(id string, rating float64) error
	// GetByIDWithProjection retrieves a provider by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Provider, error)
	// PublicNames returns the public name fields for the given provider IDs.
	PublicNames(ids []string) (map[string]models.PublicProfile, error)
}
