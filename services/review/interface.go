package review

import (
	"time"

	clientRepo "homeserve/database/repository/client"
	providerRepo "homeserve/database/repository/provider"
	reservationRepo "homeserve/database/repository/reservation"
	reviewRepo "homeserve/database/repository/review"
	"homeserve/models"

	"github.com/go-redis/redis/v8"
)

// SubmitRequest carries the fields a client submits to review a completed
// service occurrence.
type SubmitRequest struct {
	ProviderID  string    `json:"providerId" binding:"required"`
	Rating      int       `json:"rating" binding:"required"`
	Comment     string    `json:"comment" binding:"required"`
	ServiceDate time.Time `json:"serviceDate" binding:"required"`
}

// UpdateRequest carries a partial review update. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewService is the review ledger plus the rating aggregator: every
// mutation re-derives the provider's aggregate rating from the full review
// set.
type ReviewService interface {
	Submit(requester models.Principal, req SubmitRequest) (*models.Review, error)
	Update(reviewID string, requester models.Principal, req UpdateRequest) (*models.Review, error)
	Remove(reviewID string, requester models.Principal) error
	ListForProvider(providerID string, filter models.ReviewFilter) (*models.ReviewListing, error)
	Search(filter models.ReviewFilter) (*models.ReviewListing, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo         reviewRepo.ReviewRepository
	Reservations reservationRepo.ReservationRepository
	Clients      clientRepo.ClientRepository
	Providers    providerRepo.ProviderRepository
	// Cache, when set, is used to drop the provider profile cache entry after
	// a rating write.
	Cache *redis.Client
}
