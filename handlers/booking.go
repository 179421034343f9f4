package handlers

import (
	"net/http"

	"athletetech/middleware"
	"athletetech/models"
	"athletetech/services/booking"
	"athletetech/services/lifecycle"
	"athletetech/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(service booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: service}
}

func actorOrAbort(c *gin.Context) (lifecycle.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Unauthorized"})
	}
	return actor, ok
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Service.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create booking")
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBookingsHandler handles GET /api/bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	list, err := h.Service.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	detail, err := h.Service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get booking")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// actionHandler runs one lifecycle action. The body is optional for actions
// that need no input.
func (h *BookingHandler) actionHandler(action lifecycle.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorOrAbort(c)
		if !ok {
			return
		}
		var in models.BookingActionInput
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&in); err != nil {
				badRequest(c, err)
				return
			}
		}
		id := c.Param("id")
		b, err := h.Service.Act(c.Request.Context(), actor, id, action, in)
		if err != nil {
			respondError(c, err, "Booking action failed")
			return
		}
		getLogger(c).Info("Booking updated",
			zap.String("bookingId", id), zap.String("action", string(action)), zap.String("status", b.Status))
		c.JSON(http.StatusOK, b)
	}
}

func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	h.actionHandler(lifecycle.ActionAccept)(c)
}

func (h *BookingHandler) DeclineBookingHandler(c *gin.Context) {
	h.actionHandler(lifecycle.ActionDecline)(c)
}

func (h *BookingHandler) EmergencyCancelBookingHandler(c *gin.Context) {
	h.actionHandler(lifecycle.ActionEmergencyCancel)(c)
}

func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	h.actionHandler(lifecycle.ActionMarkComplete)(c)
}

func (h *BookingHandler) ConfirmCompletionBookingHandler(c *gin.Context) {
	h.actionHandler(lifecycle.ActionConfirmCompletion)(c)
}

// DeleteBookingHandler handles DELETE /api/bookings/:id with {"confirm": true}.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var in models.BookingActionInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
	}
	if err := h.Service.Delete(c.Request.Context(), actor, c.Param("id"), in.Confirmed); err != nil {
		respondError(c, err, "Failed to delete booking")
		return
	}
	c.Status(http.StatusNoContent)
}

// CoachSummaryHandler handles GET /api/coaches/:id/summary.
func (h *BookingHandler) CoachSummaryHandler(c *gin.Context) {
	summary, err := h.Service.CoachSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to summarize coach")
		return
	}
	c.JSON(http.StatusOK, summary)
}
