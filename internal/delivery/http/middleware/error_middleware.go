package middleware

import (
	"errors"
	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/pkg/apperror"
	"go-talentmatch-backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				// The wrapped cause stays server-side; only the curated
				// message reaches the client.
				if appErr.Err != nil {
					logger.Log.Error("request failed",
						"status", appErr.Code,
						"message", appErr.Message,
						"error", appErr.Err,
						"path", c.Request.URL.Path,
					)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("unhandled error",
					"error", err,
					"path", c.Request.URL.Path,
				)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
