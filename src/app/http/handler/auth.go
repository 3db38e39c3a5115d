package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"jokebox/src/app/http/dto"
	"jokebox/src/app/http/response"
	"jokebox/src/app/middleware"
	"jokebox/src/core/usecase"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	authService *usecase.AuthService
}

func NewAuthHandler(authService *usecase.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "missing field(s): username, password", middleware.GetRequestID(c))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.Created(c, gin.H{
		"message": fmt.Sprintf("user %s created", user.Username),
	})
}

// Login verifies credentials and returns a session token.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "missing field(s): username, password", middleware.GetRequestID(c))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.OK(c, gin.H{"access_token": token})
}
