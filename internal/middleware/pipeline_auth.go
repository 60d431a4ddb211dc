package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "foodafford/internal/errors"
	"foodafford/internal/logger"
)

// APIKeyHeader carries the pipeline key.
const APIKeyHeader = "X-API-Key"

// PipelineAuthMiddleware guards the dataset reload. With no key configured
// the pipeline routes are disabled rather than open.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	log := logger.Named("pipeline")
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWithError(c, apperrors.ErrPipelineNotEnabled)
			return
		}
		key := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			log.Warnw("rejected pipeline request",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"key_present", key != "",
			)
			abortWithError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}
