package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grandaincontri/incontri-backend/internal/delivery/http/middleware"
	"github.com/grandaincontri/incontri-backend/internal/usecase/auth"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// LoginRequest carries the single shared passcode.
type LoginRequest struct {
	Passcode string `form:"txt_password" json:"txt_password" binding:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	ok, err := h.authUseCase.Login(c.Request.Context(), middleware.SessionID(c), req.Passcode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "login failed",
		})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Codice errato.",
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Accesso effettuato.",
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUseCase.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "logout failed",
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Sei uscito dall'area riservata.",
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": middleware.IsAuthenticated(c),
	})
}
