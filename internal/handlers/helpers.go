package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/finance"
	"finsight/internal/logger"
	"finsight/internal/middleware"
	"finsight/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID parses a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseFlexibleTime accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
func parseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

// parseAsOf reads the as_of query parameter, defaulting to the current time.
func parseAsOf(c *gin.Context) (time.Time, error) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := parseFlexibleTime(raw)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return t, nil
}

// parseMonth reads the month query parameter, defaulting to the current month.
func parseMonth(c *gin.Context) (finance.Month, error) {
	raw := c.Query("month")
	if raw == "" {
		return finance.MonthOf(time.Now().UTC()), nil
	}
	m, err := finance.ParseMonth(raw)
	if err != nil {
		return finance.Month{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return m, nil
}

// parseStrategy reads the strategy query parameter. An empty value is
// returned as is so the service applies its configured default.
func parseStrategy(c *gin.Context) (finance.Strategy, error) {
	raw := c.Query("strategy")
	if raw == "" {
		return "", nil
	}
	s, err := finance.ParseStrategy(raw)
	if err != nil {
		return "", apperrors.ErrInvalidStrategy
	}
	return s, nil
}

// parseAmount reads a non-negative integer amount in cents from the query.
func parseAmount(c *gin.Context, param string) (int64, error) {
	raw := c.Query(param)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, param+" must be a non-negative integer")
	}
	return v, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
