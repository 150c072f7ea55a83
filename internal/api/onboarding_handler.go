package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/mistermo/internal/core"
)

// OnboardingHandler accepts questionnaire submissions.
type OnboardingHandler struct {
	onboardingService core.OnboardingService
	logger            *zap.Logger
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(obs core.OnboardingService, logger *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: obs, logger: logger}
}

// Save handles POST /api/onboarding/save. The body is passed through raw
// because the answers are stored verbatim.
func (h *OnboardingHandler) Save(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, h.logger, "onboarding.save", err)
		return
	}

	if err := h.onboardingService.Submit(c.Request.Context(), body); err != nil {
		respondError(c, h.logger, "onboarding.save", err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}
