package v1

import (
	"net/http"

	"jobly-relay/internal/delivery/http/response"
	"jobly-relay/internal/domain"
	"jobly-relay/pkg/apperror"
	"jobly-relay/pkg/logger"

	"github.com/gin-gonic/gin"
)

type RelayHandler struct {
	relayUC domain.RelayUsecase
}

// NewRelayHandler registers the form relay route (public, no auth required)
func NewRelayHandler(api *gin.RouterGroup, relayUC domain.RelayUsecase) {
	handler := &RelayHandler{
		relayUC: relayUC,
	}

	api.POST("/telegram", handler.SubmitForm)
}

// SubmitForm godoc
// @Summary      Submit landing form
// @Description  Validates a job application and forwards it to the operators' Telegram chat. One attempt, no retries.
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        submission  body      domain.Submission  true  "Form data"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      500         {object}  response.Response
// @Failure      502         {object}  response.Response
// @Router       /telegram [post]
func (h *RelayHandler) SubmitForm(c *gin.Context) {
	var sub domain.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		// Anything that is not a JSON object of strings lacks name/tg as far as callers are concerned
		c.Error(apperror.Validation(domain.MsgRequiredFields, err))
		return
	}

	logger.Log.Debug("received submission",
		"request_id", c.GetString(string(domain.KeyRequestID)),
		"submission", sub)

	if err := h.relayUC.Relay(c.Request.Context(), &sub); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK)
}
