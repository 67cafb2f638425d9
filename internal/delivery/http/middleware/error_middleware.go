package middleware

import (
	"errors"
	"net/http"

	"jobly-relay/internal/delivery/http/response"
	"jobly-relay/internal/domain"
	"jobly-relay/pkg/apperror"
	"jobly-relay/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindUnexpected {
				logger.Log.Error("request failed",
					"request_id", c.GetString(string(domain.KeyRequestID)),
					"path", c.FullPath(),
					"error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("unhandled error",
			"request_id", c.GetString(string(domain.KeyRequestID)),
			"path", c.FullPath(),
			"error", err)
		response.Error(c, http.StatusInternalServerError, apperror.ServerErrorMessage)
	}
}

// Recovery converts panics into the same 500 body as any unexpected failure.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("panic recovered",
			"request_id", c.GetString(string(domain.KeyRequestID)),
			"path", c.FullPath(),
			"panic", recovered)
		response.Error(c, http.StatusInternalServerError, apperror.ServerErrorMessage)
		c.Abort()
	})
}
