package middleware

import (
	"net/http"

	"athletetech/services/lifecycle"
	"athletetech/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects callers whose account type is not role. It must run
// after AuthMiddleware.
func RequireRole(role lifecycle.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Insufficient authorization"})
			return
		}
		if actor.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Message: "This action is only available to " + string(role) + " accounts",
			})
			return
		}
		c.Next()
	}
}
