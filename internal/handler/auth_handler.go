package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/dayboard/backend/internal/dto"
	"github.com/user/dayboard/backend/internal/service"
	apperrors "github.com/user/dayboard/backend/pkg/errors"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Google handles POST /api/auth/google
func (h *AuthHandler) Google(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ValidationError("idToken is required"))
		return
	}

	resp, err := h.authService.AuthenticateWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ValidationError("refreshToken is required"))
		return
	}

	resp, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
