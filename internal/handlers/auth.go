package handlers

import (
	"net/http"

	"github.com/Vandammecasper/voting-app/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignInAnonymously handles POST /v1/auth/anonymous
func (h *AuthHandler) SignInAnonymously(c *gin.Context) {
	uid, token, err := h.authService.SignInAnonymously()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create identity"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"uid":   uid,
		"token": token,
	})
}
