package middleware

import (
	"strings"
	"time"

	"navhub/internal/common"
	"navhub/internal/models"
	"navhub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuditMiddleware records rejected admin mutations. Successful mutations are
// audited by the services that perform them, so this layer only captures the
// denials and failures those services never see.
type AuditMiddleware struct {
	auditService services.AuditLogsService
}

func NewAuditMiddleware(auditService services.AuditLogsService) *AuditMiddleware {
	return &AuditMiddleware{
		auditService: auditService,
	}
}

// AuditFailures logs mutating requests that ended in an error.
func (m *AuditMiddleware) AuditFailures() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			method := c.Request().Method
			if method != "POST" && method != "PUT" && method != "PATCH" && method != "DELETE" {
				return err
			}

			ctx := c.Request().Context()
			var userPtr *uuid.UUID
			if userID, ok := common.GetUserIDFromContext(ctx); ok {
				userPtr = &userID
			}

			data := models.JSONB{
				"method":     method,
				"path":       c.Path(),
				"user_agent": c.Request().UserAgent(),
				"ip":         c.RealIP(),
				"timestamp":  time.Now().Format(time.RFC3339),
				"error":      err.Error(),
				"headers":    m.sanitizeHeaders(c.Request().Header),
			}

			if auditErr := m.auditService.Record(ctx, userPtr, models.AuditRequestFailed, "http_request", c.Path(), data); auditErr != nil {
				c.Logger().Errorf("Failed to log audit activity: %v", auditErr)
			}

			return err
		}
	}
}

// sanitizeHeaders removes sensitive headers before logging
func (m *AuditMiddleware) sanitizeHeaders(headers map[string][]string) map[string]interface{} {
	sanitized := make(map[string]interface{})

	for key, values := range headers {
		if m.isSensitiveHeader(key) {
			sanitized[key] = "[REDACTED]"
			continue
		}
		sanitized[key] = values
	}

	return sanitized
}

// isSensitiveHeader checks if a header contains sensitive information
func (m *AuditMiddleware) isSensitiveHeader(header string) bool {
	sensitiveHeaders := []string{
		"authorization",
		"cookie",
		"x-api-key",
		"x-auth-token",
		"proxy-authorization",
	}

	for _, sensitive := range sensitiveHeaders {
		if strings.ToLower(header) == sensitive {
			return true
		}
	}

	return false
}
