package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/logger"
)

// ErrorHandler returns a Gin middleware that turns errors attached with
// c.Error into JSON error responses. Engine validation failures become 422
// responses; anything that is not an AppError is logged and reported as a
// generic internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := apperrors.FromFinance(c.Errors.Last().Err)

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			appErr = apperrors.ErrInternalServer
		}
		if appErr.Internal != nil {
			logger.Get().Errorw("request failed",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}

// Recovery returns a Gin middleware that logs panics and answers with the
// standard internal error body instead of an empty 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Errorw("panic recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    apperrors.ErrInternalServer.Code,
				"message": apperrors.ErrInternalServer.Message,
			},
		})
	})
}
