package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/taxi-data-service/internal/domain/dto"
	"github.com/guttosm/taxi-data-service/internal/logger"
)

// ErrorHandler returns a middleware that handles gin context errors.
// It provides centralized error handling and logging for errors attached to
// the context but not yet written as a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID := GetRequestID(c)

			log := logger.Logger()
			log.Error().
				Str("request_id", requestID).
				Str("error", err.Error()).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("Request error")

			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, dto.NewError(dto.DetailInternalError))
			}
		}
	}
}
