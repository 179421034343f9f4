package handlers

import (
	"net/http"

	"athletetech/middleware"
	"athletetech/models"
	"athletetech/services/intelligence"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	Service intelligence.AssistantService
}

func NewAIHandler(service intelligence.AssistantService) *AIHandler {
	return &AIHandler{Service: service}
}

// ChatHandler handles POST /api/ai/chat.
func (h *AIHandler) ChatHandler(c *gin.Context) {
	var req models.AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Service.Chat(c.Request.Context(), middleware.UserIDFrom(c), req.Message)
	if err != nil {
		respondError(c, err, "AI chat failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClearChatHandler handles DELETE /api/ai/chat.
func (h *AIHandler) ClearChatHandler(c *gin.Context) {
	if err := h.Service.ClearChat(c.Request.Context(), middleware.UserIDFrom(c)); err != nil {
		respondError(c, err, "AI chat reset failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AIHandler) WorkoutPlanHandler(c *gin.Context) {
	var req models.WorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Service.WorkoutPlan(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Workout plan generation failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AIHandler) CareerRoadmapHandler(c *gin.Context) {
	var req models.CareerRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Service.CareerRoadmap(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Career roadmap generation failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}
