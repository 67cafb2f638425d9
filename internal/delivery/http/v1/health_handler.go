package v1

import (
	"net/http"

	"jobly-relay/internal/domain"

	"github.com/gin-gonic/gin"
)

// isoMillis matches JavaScript's Date.prototype.toISOString output.
const isoMillis = "2006-01-02T15:04:05.000Z"

type HealthResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time" example:"2026-10-19T12:00:00.000Z"`
}

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(api *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}

	api.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Liveness probe
// @Description  Always answers ok with the current UTC time, whether or not Telegram is configured.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())

	c.JSON(http.StatusOK, HealthResponse{
		OK:   status.OK,
		Time: status.Time.UTC().Format(isoMillis),
	})
}
