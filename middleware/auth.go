package middleware

import (
	"context"
	"net/http"
	"strings"

	"seatwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Identity roles minted by the external identity provider.
const (
	RoleStudent  = "student"
	RoleProvider = "provider"
)

// Context keys set on successful authentication.
const (
	ContextUserID     = "userID"
	ContextProviderID = "providerID"
)

// JWTAuthUserMiddleware authenticates a student (requester) token and sets
// the userID context key.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return requireIdentity(RoleStudent, ContextUserID)
}

// JWTAuthProviderMiddleware authenticates a provider token and sets the
// providerID context key.
func JWTAuthProviderMiddleware() gin.HandlerFunc {
	return requireIdentity(RoleProvider, ContextProviderID)
}

// requireIdentity validates the bearer token, checks its role claim, and
// exposes the subject under the given context key. Identity is minted
// externally; this subsystem only verifies and trusts it. A Redis cache of
// seen token hashes skips repeated signature checks on hot paths.
func requireIdentity(role, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		ctx := context.Background()
		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + role + ":" + computedHash

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			if subject, err := authCache.Get(ctx, cacheKey).Result(); err == nil && subject != "" {
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set(contextKey, subject)
				c.Next()
				return
			} else if err != nil && err != redis.Nil {
				utils.GetLogger().Sugar().Warnf("auth cache read failed, validating token directly: %v", err)
			}
		}

		subject, tokenRole, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		if tokenRole != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Wrong role for this endpoint",
			})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, subject, utils.AuthCacheTTL).Err()
		}

		c.Set(contextKey, subject)
		c.Next()
	}
}
