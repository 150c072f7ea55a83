package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/mistermo/internal/core"
	"github.com/example/mistermo/internal/models"
)

// AuthHandler handles Telegram WebApp authentication.
type AuthHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us core.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{userService: us, logger: logger}
}

// AuthenticateTelegram handles POST /api/auth/telegram. It exchanges the
// WebApp init data for the stored user and a session token.
func (h *AuthHandler) AuthenticateTelegram(c *gin.Context) {
	var req models.AuthRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "auth.telegram", err)
		return
	}

	user, token, err := h.userService.Authenticate(c.Request.Context(), req.InitData)
	if err != nil {
		respondError(c, h.logger, "auth.telegram", err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}
