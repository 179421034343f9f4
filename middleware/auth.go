package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userRepo "athletetech/database/repository/user"
	"athletetech/services/identity"
	"athletetech/services/lifecycle"
	"athletetech/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ctxUserID = "userID"
	ctxActor  = "actor"
)

// cachedActor is what the auth cache stores per uid.
type cachedActor struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// TokenMiddleware verifies the bearer token and sets only the uid. It serves
// routes that run before a profile is known to exist.
func TokenMiddleware(id identity.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := verifyBearer(c, id)
		if !ok {
			return
		}
		c.Set(ctxUserID, uid)
		c.Next()
	}
}

// AuthMiddleware verifies the bearer token, resolves the caller's account
// type and sets a lifecycle.Actor in the context. The role lookup is cached
// in Redis when a cache client is given.
func AuthMiddleware(id identity.Identity, users userRepo.UserRepository, cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := verifyBearer(c, id)
		if !ok {
			return
		}
		ctx := c.Request.Context()

		entry, hit := readCachedActor(ctx, cache, uid)
		if !hit {
			u, err := users.GetByID(ctx, uid)
			if err != nil {
				if errors.Is(err, userRepo.ErrNotFound) {
					c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "No profile for this account"})
					return
				}
				utils.GetLogger().Error("Auth profile lookup failed", zap.String("userId", uid), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal server error"})
				return
			}
			entry = cachedActor{Role: u.UserType, Name: u.FullName()}
			writeCachedActor(ctx, cache, uid, entry)
		}

		role, err := lifecycle.ParseRole(entry.Role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "Unknown account type"})
			return
		}

		c.Set(ctxUserID, uid)
		c.Set(ctxActor, lifecycle.Actor{ID: uid, Role: role, Name: entry.Name})
		c.Next()
	}
}

// UserIDFrom returns the uid set by TokenMiddleware or AuthMiddleware.
func UserIDFrom(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// ActorFrom returns the actor set by AuthMiddleware.
func ActorFrom(c *gin.Context) (lifecycle.Actor, bool) {
	v, exists := c.Get(ctxActor)
	if !exists {
		return lifecycle.Actor{}, false
	}
	actor, ok := v.(lifecycle.Actor)
	return actor, ok
}

// InvalidateActor drops the cached role for uid.
func InvalidateActor(ctx context.Context, cache *redis.Client, uid string) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, utils.AuthCachePrefix+uid).Err(); err != nil {
		utils.GetLogger().Warn("Auth cache invalidation failed", zap.String("userId", uid), zap.Error(err))
	}
}

func verifyBearer(c *gin.Context, id identity.Identity) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Insufficient authorization"})
		return "", false
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Insufficient authorization"})
		return "", false
	}

	uid, err := id.VerifyToken(c.Request.Context(), tokenString)
	if err != nil || uid == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Invalid token"})
		return "", false
	}
	return uid, true
}

func readCachedActor(ctx context.Context, cache *redis.Client, uid string) (cachedActor, bool) {
	var entry cachedActor
	if cache == nil {
		return entry, false
	}
	raw, err := cache.Get(ctx, utils.AuthCachePrefix+uid).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Treat as a miss and fall back to the store.
			utils.GetLogger().Warn("Auth cache read failed", zap.Error(err))
		}
		return entry, false
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return entry, false
	}
	return entry, true
}

func writeCachedActor(ctx context.Context, cache *redis.Client, uid string, entry cachedActor) {
	if cache == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, utils.AuthCachePrefix+uid, raw, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Auth cache write failed", zap.String("userId", uid), zap.Error(err))
	}
}
