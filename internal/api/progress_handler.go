package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/mistermo/internal/core"
	"github.com/example/mistermo/internal/models"
)

// ProgressHandler serves the daily progress record.
type ProgressHandler struct {
	progressService core.ProgressService
	logger          *zap.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(ps core.ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{progressService: ps, logger: logger}
}

// GetToday handles GET /api/progress/today?user_id=.
func (h *ProgressHandler) GetToday(c *gin.Context) {
	rec, err := h.progressService.GetToday(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		respondError(c, h.logger, "progress.today", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateToday handles POST /api/progress/update. Only the fields present in
// the body are changed.
func (h *ProgressHandler) UpdateToday(c *gin.Context) {
	var req models.ProgressUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "progress.update", err)
		return
	}

	rec, err := h.progressService.UpdateToday(c.Request.Context(), req.UserID, req.ProgressPatch)
	if err != nil {
		respondError(c, h.logger, "progress.update", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
