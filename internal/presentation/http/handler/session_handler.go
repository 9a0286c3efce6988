package handler

import (
	"github.com/cuatrovientos/retail-api/internal/application/service"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/request"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SessionHandler handles login, logout and the seeded lookup lists
type SessionHandler struct {
	store *service.StoreService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store *service.StoreService) *SessionHandler {
	return &SessionHandler{store: store}
}

// Login opens a session for the user with the given email
func (h *SessionHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.store.Login(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", user)
}

// Logout clears the session
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.store.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Logged out", nil)
}

// Current returns the session user
func (h *SessionHandler) Current(c *gin.Context) {
	user := GetUser(c)
	if user == nil {
		response.Unauthorized(c, "No active session")
		return
	}
	response.OK(c, "Session retrieved successfully", gin.H{
		"user":       user,
		"started_at": h.store.Session().StartedAt,
	})
}

// ListUsers returns the seeded operators for the login picker
func (h *SessionHandler) ListUsers(c *gin.Context) {
	response.OK(c, "Users retrieved successfully", h.store.Users())
}

// ListBrands returns the seeded brands
func (h *SessionHandler) ListBrands(c *gin.Context) {
	response.OK(c, "Brands retrieved successfully", h.store.Brands())
}
