package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/mistermo/internal/core"
	"github.com/example/mistermo/internal/models"
)

// UserHandler handles the per-user state flags.
type UserHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, logger: logger}
}

// GetState handles GET /api/user/state?user_id=.
func (h *UserHandler) GetState(c *gin.Context) {
	state, err := h.userService.GetState(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		respondError(c, h.logger, "user.state.get", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetState handles POST /api/user/state.
func (h *UserHandler) SetState(c *gin.Context) {
	var req models.UserStateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "user.state.set", err)
		return
	}

	if err := h.userService.SetState(c.Request.Context(), req); err != nil {
		respondError(c, h.logger, "user.state.set", err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}
