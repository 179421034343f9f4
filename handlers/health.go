package handlers

import (
	"net/http"

	"athletetech/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency snapshot from the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !healthy(status) {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "message": "Hi, I'm AthleteTech", "health": status})
}

func healthy(s utils.HealthStatus) bool {
	if s.CheckedAt.IsZero() {
		return true
	}
	if !s.StoreUp {
		return false
	}
	for _, up := range s.Redis {
		if !up {
			return false
		}
	}
	return true
}
