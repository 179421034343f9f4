package handlers

import (
	"net/http"

	"athletetech/middleware"
	"athletetech/models"
	"athletetech/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	Service user.UserService
}

func NewUserHandler(service user.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// sessionRequest names the login page the caller used.
type sessionRequest struct {
	UserType string `json:"userType"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"userType"`
}

type fcmTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// RegisterUserHandler handles POST /api/users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var req models.UserRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}
	getLogger(c).Info("User registered", zap.String("userId", resp.User.ID), zap.String("userType", resp.User.UserType))
	c.JSON(http.StatusCreated, resp)
}

// LoginUserHandler handles POST /api/users/login.
func (h *UserHandler) LoginUserHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Service.Login(c.Request.Context(), req.Email, req.Password, req.UserType)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StartSessionHandler handles POST /api/users/session for a verified token.
func (h *UserHandler) StartSessionHandler(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Service.StartSession(c.Request.Context(), middleware.UserIDFrom(c), req.UserType)
	if err != nil {
		respondError(c, err, "Session start failed")
		return
	}
	c.JSON(http.StatusOK, user.AuthResponse{User: u})
}

// GetProfileHandler returns the authenticated user's profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	u, err := h.Service.GetProfile(c.Request.Context(), middleware.UserIDFrom(c))
	if err != nil {
		respondError(c, err, "Failed to get user profile")
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateFCMTokenHandler stores the caller's push token.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req fcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Service.UpdateFCMToken(c.Request.Context(), middleware.UserIDFrom(c), req.Token); err != nil {
		respondError(c, err, "Failed to update FCM token")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCoachesHandler handles GET /api/coaches.
func (h *UserHandler) ListCoachesHandler(c *gin.Context) {
	coaches, err := h.Service.ListCoaches(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list coaches")
		return
	}
	c.JSON(http.StatusOK, gin.H{"coaches": coaches})
}
