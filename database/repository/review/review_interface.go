package reviewRepo

import (
	"time"

	"homeserve/models"
)

// ReviewRepository defines methods for review data access. The review set is
// the source of truth for provider aggregate ratings.
type ReviewRepository interface {
	// Create inserts a new review record.
	Create(review *models.Review) error
	// GetByID retrieves a review by its unique ID. Returns nil when absent.
	GetByID(id string) (*models.Review, error)
	// Update replaces the mutable fields of an existing review.
	Update(review *models.Review) error
	// Delete removes a review record by its ID.
	Delete(id string) error
	// ExistsForTuple reports whether a review already exists for the exact
	// (client, provider, serviceDate) tuple.
	ExistsForTuple(clientID, providerID string, serviceDate time.Time) (bool, error)
	// AverageRating computes the unrounded mean rating over all reviews for
	// the provider. Returns 0 when the provider has no reviews.
	AverageRating(providerID string) (float64, error)
	// List retrieves reviews matching the filter, sorted as requested.
	List(filter models.ReviewFilter) ([]models.Review, error)
}
