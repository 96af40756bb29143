package provider

import (
	"context"
	"encoding/json"
	"time"

	providerRepo "homeserve/database/repository/provider"
	"homeserve/models"
	"homeserve/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const profileCacheTTL = 5 * time.Minute

// GetByID returns the provider's public profile, served from the cache when
// possible.
func (s *DefaultProviderService) GetByID(id string) (*models.Provider, error) {
	ctx := context.Background()
	cacheKey := utils.ProviderProfileCacheKey(id)

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var prov models.Provider
			if err := json.Unmarshal([]byte(cached), &prov); err == nil {
				return &prov, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("GetByID: provider cache read failed", zap.Error(err))
		}
	}

	prov, err := s.Repo.GetByIDWithProjection(id, bson.M{"passwordHash": 0, "tokenHash": 0})
	if err != nil {
		utils.GetLogger().Error("GetByID: failed to fetch provider", zap.String("id", id), zap.Error(err))
		return nil, utils.NewInternal("failed to fetch provider")
	}
	if prov == nil {
		return nil, utils.NewNotFound("provider not found")
	}

	if s.Cache != nil {
		if payload, err := json.Marshal(prov); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, payload, profileCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("GetByID: provider cache write failed", zap.Error(err))
			}
		}
	}
	return prov, nil
}

// List returns all providers, best rated first left to the caller.
func (s *DefaultProviderService) List() ([]models.Provider, error) {
	providers, err := s.Repo.GetAll()
	if err != nil {
		utils.GetLogger().Error("List: failed to fetch providers", zap.Error(err))
		return nil, utils.NewInternal("failed to fetch providers")
	}
	return providers, nil
}

// ListByService returns providers offering the given service type.
func (s *DefaultProviderService) ListByService(serviceType models.ServiceType) ([]models.Provider, error) {
	if !serviceType.Valid() {
		return nil, utils.NewInvalidInput("invalid service type")
	}
	providers, err := s.Repo.ListByServiceType(serviceType)
	if err != nil {
		utils.GetLogger().Error("ListByService: failed to fetch providers", zap.Error(err))
		return nil, utils.NewInternal("failed to fetch providers")
	}
	return providers, nil
}

// Search returns providers matching the criteria, sorted by rating descending.
func (s *DefaultProviderService) Search(criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error) {
	if criteria.ServiceType != "" && !criteria.ServiceType.Valid() {
		return nil, utils.NewInvalidInput("invalid service type")
	}
	providers, err := s.Repo.Search(criteria)
	if err != nil {
		utils.GetLogger().Error("Search: provider search failed", zap.Error(err))
		return nil, utils.NewInternal("provider search failed")
	}
	return providers, nil
}

// UpdateProfile applies a partial profile update for the authenticated
// provider. Rate changes never touch previously priced reservations.
func (s *DefaultProviderService) UpdateProfile(providerID string, update ProfileUpdate) (*models.Provider, error) {
	updateDoc := bson.M{}
	if update.HourlyRate != nil {
		if *update.HourlyRate <= 0 {
			return nil, utils.NewInvalidInput("hourly rate must be positive")
		}
		updateDoc["hourlyRate"] = *update.HourlyRate
	}
	if update.Description != nil {
		updateDoc["description"] = *update.Description
	}
	if len(updateDoc) == 0 {
		return nil, utils.NewInvalidInput("no profile fields to update")
	}
	return s.applyUpdate(providerID, updateDoc)
}

// UpdateAvailability replaces the provider's availability strings.
func (s *DefaultProviderService) UpdateAvailability(providerID string, availability []string) (*models.Provider, error) {
	return s.applyUpdate(providerID, bson.M{"availability": availability})
}

func (s *DefaultProviderService) applyUpdate(providerID string, updateDoc bson.M) (*models.Provider, error) {
	existing, err := s.Repo.GetByIDWithProjection(providerID, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("applyUpdate: failed to fetch provider", zap.Error(err))
		return nil, utils.NewInternal("failed to update provider")
	}
	if existing == nil {
		return nil, utils.NewNotFound("provider not found")
	}

	if err := s.Repo.UpdateSetDocument(providerID, updateDoc); err != nil {
		utils.GetLogger().Error("applyUpdate: failed to update provider", zap.Error(err))
		return nil, utils.NewInternal("failed to update provider")
	}
	s.invalidateCache(providerID)

	prov, err := s.Repo.GetByIDWithProjection(providerID, bson.M{"passwordHash": 0, "tokenHash": 0})
	if err != nil {
		utils.GetLogger().Error("applyUpdate: failed to reload provider", zap.Error(err))
		return nil, utils.NewInternal("failed to update provider")
	}
	return prov, nil
}

func (s *DefaultProviderService) invalidateCache(providerID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), utils.ProviderProfileCacheKey(providerID)).Err(); err != nil {
		utils.GetLogger().Warn("invalidateCache: provider cache delete failed", zap.Error(err))
	}
}
