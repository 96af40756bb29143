package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	clientRepo "homeserve/database/repository/client"
	providerRepo "homeserve/database/repository/provider"
	"homeserve/models"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const principalContextKey = "principal"

// CurrentPrincipal returns the authenticated principal set by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := val.(models.Principal)
	return principal, ok
}

// AuthMiddleware validates the bearer token, checks its hash against the
// principal's stored hash (Redis cache first, store on miss) and sets the
// principal in the request context. The principal's role comes from the token
// claim fixed at issuance.
func AuthMiddleware(clients clientRepo.ClientRepository, providers providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		principal, err := utils.ExtractPrincipalFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + string(principal.Role) + ":" + principal.ID
		ctx := context.Background()

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
				c.Set(principalContextKey, principal)
				c.Next()
				return
			} else if err != redis.Nil {
				utils.GetLogger().Warn("AuthMiddleware: auth cache read failed, falling back to store", zap.Error(err))
			}
		}

		// Cache miss: compare with the token hash stored on the record.
		storedHash, err := lookupTokenHash(principal, clients, providers)
		if err != nil || storedHash == "" || storedHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or account not found"})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func lookupTokenHash(principal models.Principal, clients clientRepo.ClientRepository, providers providerRepo.ProviderRepository) (string, error) {
	proj := bson.M{"id": 1, "tokenHash": 1}
	switch principal.Role {
	case models.RoleClient:
		client, err := clients.GetByIDWithProjection(principal.ID, proj)
		if err != nil || client == nil {
			return "", err
		}
		return client.TokenHash, nil
	case models.RoleProvider:
		provider, err := providers.GetByIDWithProjection(principal.ID, proj)
		if err != nil || provider == nil {
			return "", err
		}
		return provider.TokenHash, nil
	}
	return "", nil
}

// RequireRole rejects requests whose principal does not carry the given role.
// Must run after AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}
		if principal.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}
		c.Next()
	}
}
