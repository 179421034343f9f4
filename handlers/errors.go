package handlers

import (
	"errors"
	"net/http"

	"athletetech/services/booking"
	"athletetech/services/identity"
	"athletetech/services/intelligence"
	"athletetech/services/lifecycle"
	"athletetech/services/user"
	"athletetech/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a service error onto its HTTP status and client message.
// Unknown errors are 500 with a generic message.
func statusFor(err error) (int, string) {
	var (
		lifecycleInvalid *lifecycle.ValidationError
		userInvalid      *user.ValidationError
		aiInvalid        *intelligence.ValidationError
		transition       *lifecycle.TransitionError
	)
	switch {
	case errors.As(err, &lifecycleInvalid), errors.As(err, &userInvalid), errors.As(err, &aiInvalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, user.ErrLoginNotAvailable):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, identity.ErrInvalidCredentials), errors.Is(err, identity.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, lifecycle.ErrWrongRole),
		errors.Is(err, lifecycle.ErrNotParticipant),
		errors.Is(err, user.ErrWrongAccountType):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, booking.ErrNotFound):
		return http.StatusNotFound, "Booking not found"
	case errors.Is(err, booking.ErrCoachNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound, "User not found"
	case errors.As(err, &transition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, booking.ErrConflict):
		return http.StatusConflict, "The booking was changed by someone else. Please refresh and try again."
	case errors.Is(err, user.ErrEmailTaken), errors.Is(err, identity.ErrEmailExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, intelligence.ErrRateLimited):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, intelligence.ErrContentFiltered):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, intelligence.ErrInvalidAPIKey),
		errors.Is(err, intelligence.ErrModel),
		errors.Is(err, intelligence.ErrGeneric):
		return http.StatusInternalServerError, err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

// respondError logs err and writes the mapped JSON error.
func respondError(c *gin.Context, err error, msg string) {
	status, clientMsg := statusFor(err)
	logger := getLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err))
	} else {
		logger.Warn(msg, zap.Int("status", status), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, utils.ErrorResponse{Message: clientMsg})
}

func badRequest(c *gin.Context, err error) {
	getLogger(c).Warn("Invalid request body", zap.Error(err))
	c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request", Details: err.Error()})
}
