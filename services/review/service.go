package review

import (
	"context"
	"fmt"
	"math"

	"homeserve/models"
	"homeserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit records a review for a completed service occurrence and folds it
// into the provider's aggregate rating. The review insert strictly precedes
// the aggregate write, so a reader never observes an updated aggregate
// without its review.
func (s *DefaultReviewService) Submit(requester models.Principal, req SubmitRequest) (*models.Review, error) {
	if requester.Role != models.RoleClient {
		return nil, utils.NewForbidden("only clients can submit reviews")
	}

	done, err := s.Reservations.ExistsDone(requester.ID, req.ProviderID, req.ServiceDate)
	if err != nil {
		utils.GetLogger().Error("Submit: failed to check completed reservation", zap.Error(err))
		return nil, utils.NewInternal("failed to submit review")
	}
	if !done {
		return nil, utils.NewPreconditionFailed("no completed reservation for this provider and service date")
	}

	exists, err := s.Repo.ExistsForTuple(requester.ID, req.ProviderID, req.ServiceDate)
	if err != nil {
		utils.GetLogger().Error("Submit: failed to check existing review", zap.Error(err))
		return nil, utils.NewInternal("failed to submit review")
	}
	if exists {
		return nil, utils.NewConflict("a review for this service date already exists")
	}

	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	if err := validateComment(req.Comment); err != nil {
		return nil, err
	}

	review := models.Review{
		ID:          uuid.New().String(),
		ClientID:    requester.ID,
		ProviderID:  req.ProviderID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		ServiceDate: req.ServiceDate,
	}

	if err := s.Repo.Create(&review); err != nil {
		utils.GetLogger().Error("Submit: failed to create review", zap.Error(err))
		return nil, utils.NewInternal("failed to submit review")
	}

	if err := s.recomputeRating(req.ProviderID); err != nil {
		return nil, err
	}
	return &review, nil
}

// Update applies a partial update to a review owned by the requester, then
// re-derives the provider's aggregate.
func (s *DefaultReviewService) Update(reviewID string, requester models.Principal, req UpdateRequest) (*models.Review, error) {
	review, err := s.authorizedReview(reviewID, requester)
	if err != nil {
		return nil, err
	}

	if req.Rating == nil && req.Comment == nil {
		return nil, utils.NewInvalidInput("no review fields to update")
	}
	if req.Rating != nil {
		if err := validateRating(*req.Rating); err != nil {
			return nil, err
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		if err := validateComment(*req.Comment); err != nil {
			return nil, err
		}
		review.Comment = *req.Comment
	}

	if err := s.Repo.Update(review); err != nil {
		utils.GetLogger().Error("Update: failed to update review", zap.Error(err))
		return nil, utils.NewInternal("failed to update review")
	}

	if err := s.recomputeRating(review.ProviderID); err != nil {
		return nil, err
	}
	return review, nil
}

// Remove deletes a review owned by the requester and re-derives the
// provider's aggregate, which falls back to 0 when no reviews remain.
func (s *DefaultReviewService) Remove(reviewID string, requester models.Principal) error {
	review, err := s.authorizedReview(reviewID, requester)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(reviewID); err != nil {
		utils.GetLogger().Error("Remove: failed to delete review", zap.Error(err))
		return utils.NewInternal("failed to delete review")
	}

	return s.recomputeRating(review.ProviderID)
}

// authorizedReview loads a review and checks that the requester is its
// authoring client.
func (s *DefaultReviewService) authorizedReview(reviewID string, requester models.Principal) (*models.Review, error) {
	review, err := s.Repo.GetByID(reviewID)
	if err != nil {
		utils.GetLogger().Error("authorizedReview: failed to fetch review", zap.Error(err))
		return nil, utils.NewInternal("failed to fetch review")
	}
	if review == nil {
		return nil, utils.NewNotFound("review not found")
	}
	if requester.Role != models.RoleClient || review.ClientID != requester.ID {
		return nil, utils.NewForbidden("only the authoring client can modify this review")
	}
	return review, nil
}

// recomputeRating re-derives the provider's aggregate rating from the full
// review set and writes it back, rounded to one decimal. 0 when the set is
// empty.
func (s *DefaultReviewService) recomputeRating(providerID string) error {
	avg, err := s.Repo.AverageRating(providerID)
	if err != nil {
		utils.GetLogger().Error("recomputeRating: aggregation failed",
			zap.String("providerId", providerID), zap.Error(err))
		return utils.NewInternal("failed to update provider rating")
	}

	rating := roundOneDecimal(avg)
	if err := s.Providers.UpdateRating(providerID, rating); err != nil {
		utils.GetLogger().Error("recomputeRating: failed to write provider rating",
			zap.String("providerId", providerID), zap.Error(err))
		return utils.NewInternal("failed to update provider rating")
	}

	if s.Cache != nil {
		if err := s.Cache.Del(context.Background(), utils.ProviderProfileCacheKey(providerID)).Err(); err != nil {
			utils.GetLogger().Warn("recomputeRating: provider cache delete failed", zap.Error(err))
		}
	}
	return nil
}

func validateRating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return utils.NewInvalidInput(fmt.Sprintf("rating must be between %d and %d", models.MinRating, models.MaxRating))
	}
	return nil
}

func validateComment(comment string) error {
	if len(comment) < models.MinCommentLength || len(comment) > models.MaxCommentLength {
		return utils.NewInvalidInput(fmt.Sprintf("comment must be between %d and %d characters", models.MinCommentLength, models.MaxCommentLength))
	}
	return nil
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
