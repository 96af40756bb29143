package auth

import (
	"context"

	"homeserve/models"
	"homeserve/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies the credentials for the given role, rotates the stored token
// hash and returns a fresh bearer token. The role is fixed in the token; it is
// never re-inspected per request.
func (s *DefaultAuthService) Login(email, password string, role models.Role) (*AuthResponse, error) {
	if !role.Valid() {
		return nil, utils.NewInvalidInput("role must be client or provider")
	}

	var (
		id           string
		passwordHash string
		firstName    string
		lastName     string
	)

	switch role {
	case models.RoleClient:
		client, err := s.Clients.GetByEmail(email)
		if err != nil {
			utils.GetLogger().Error("Login: failed to fetch client", zap.Error(err))
			return nil, utils.NewInternal("authentication failed, please try again")
		}
		if client == nil {
			return nil, utils.NewUnauthenticated("invalid email or password")
		}
		id, passwordHash = client.ID, client.PasswordHash
		firstName, lastName = client.FirstName, client.LastName
	case models.RoleProvider:
		provider, err := s.Providers.GetByEmail(email)
		if err != nil {
			utils.GetLogger().Error("Login: failed to fetch provider", zap.Error(err))
			return nil, utils.NewInternal("authentication failed, please try again")
		}
		if provider == nil {
			return nil, utils.NewUnauthenticated("invalid email or password")
		}
		id, passwordHash = provider.ID, provider.PasswordHash
		firstName, lastName = provider.FirstName, provider.LastName
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return nil, utils.NewUnauthenticated("invalid email or password")
	}

	principal := models.Principal{ID: id, Role: role}
	token, err := utils.GenerateToken(principal, email, tokenDuration)
	if err != nil {
		utils.GetLogger().Error("Login: failed to generate auth token", zap.Error(err))
		return nil, utils.NewInternal("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	update := bson.M{"tokenHash": tokenHash}
	switch role {
	case models.RoleClient:
		err = s.Clients.UpdateSetDocument(id, update)
	case models.RoleProvider:
		err = s.Providers.UpdateSetDocument(id, update)
	}
	if err != nil {
		utils.GetLogger().Error("Login: failed to persist token hash", zap.Error(err))
		return nil, utils.NewInternal("authentication failed, please try again")
	}

	// Drop any stale cached token hash for this principal.
	cacheKey := utils.AuthCachePrefix + string(role) + ":" + id
	if err := utils.GetAuthCacheClient().Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("Login: failed to clear auth cache", zap.Error(err))
	}

	return &AuthResponse{
		ID:        id,
		Role:      role,
		Token:     token,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}, nil
}
