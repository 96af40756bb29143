package review

import (
	"homeserve/models"
	"homeserve/utils"

	"go.uber.org/zap"
)

// ListForProvider returns the provider's reviews matching the filter, joined
// with the authors' public names. The mean is computed over the filtered set,
// which deliberately differs from the provider's stored aggregate over all
// reviews.
func (s *DefaultReviewService) ListForProvider(providerID string, filter models.ReviewFilter) (*models.ReviewListing, error) {
	if providerID == "" {
		return nil, utils.NewInvalidInput("provider id is required")
	}
	filter.ProviderID = providerID
	return s.list(filter, false)
}

// Search returns reviews matching the filter across all providers, joined
// with both client and provider public names.
func (s *DefaultReviewService) Search(filter models.ReviewFilter) (*models.ReviewListing, error) {
	return s.list(filter, true)
}

func (s *DefaultReviewService) list(filter models.ReviewFilter, withProviders bool) (*models.ReviewListing, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	reviews, err := s.Repo.List(filter)
	if err != nil {
		utils.GetLogger().Error("list: failed to fetch reviews", zap.Error(err))
		return nil, utils.NewInternal("failed to fetch reviews")
	}

	clientIDs := make([]string, 0, len(reviews))
	providerIDs := make([]string, 0, len(reviews))
	for _, rv := range reviews {
		clientIDs = append(clientIDs, rv.ClientID)
		providerIDs = append(providerIDs, rv.ProviderID)
	}

	clientNames, err := s.Clients.PublicNames(clientIDs)
	if err != nil {
		utils.GetLogger().Error("list: failed to join client names", zap.Error(err))
		return nil, utils.NewInternal("failed to fetch reviews")
	}
	var providerNames map[string]models.PublicProfile
	if withProviders {
		providerNames, err = s.Providers.PublicNames(providerIDs)
		if err != nil {
			utils.GetLogger().Error("list: failed to join provider names", zap.Error(err))
			return nil, utils.NewInternal("failed to fetch reviews")
		}
	}

	views := make([]models.ReviewView, 0, len(reviews))
	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
		view := models.ReviewView{
			Review: rv,
			Client: clientNames[rv.ClientID],
		}
		if withProviders {
			name := providerNames[rv.ProviderID]
			view.Provider = &name
		}
		views = append(views, view)
	}

	mean := 0.0
	if len(reviews) > 0 {
		mean = roundOneDecimal(float64(sum) / float64(len(reviews)))
	}

	return &models.ReviewListing{
		Reviews:    views,
		Total:      len(reviews),
		MeanRating: mean,
	}, nil
}

func validateFilter(filter models.ReviewFilter) error {
	if filter.SortBy != "" && filter.SortBy != models.SortByDate && filter.SortBy != models.SortByRating {
		return utils.NewInvalidInput("sortBy must be date or rating")
	}
	if filter.MinRating < 0 || filter.MaxRating < 0 {
		return utils.NewInvalidInput("rating bounds must be positive")
	}
	if filter.MinRating > 0 && filter.MaxRating > 0 && filter.MinRating > filter.MaxRating {
		return utils.NewInvalidInput("minRating cannot exceed maxRating")
	}
	return nil
}
