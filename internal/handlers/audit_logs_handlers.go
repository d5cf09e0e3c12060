package handlers

import (
	"net/http"
	"strconv"
	"time"

	"navhub/internal/common"
	"navhub/internal/models"
	"navhub/internal/services"

	"github.com/labstack/echo/v4"
)

// AuditLogsHandlers handles audit logs related HTTP requests
type AuditLogsHandlers struct {
	auditLogsService services.AuditLogsService
}

// NewAuditLogsHandlers creates a new audit logs handlers instance
func NewAuditLogsHandlers(auditLogsService services.AuditLogsService) *AuditLogsHandlers {
	return &AuditLogsHandlers{
		auditLogsService: auditLogsService,
	}
}

// ListAuditLogs retrieves audit logs with filtering and pagination
func (h *AuditLogsHandlers) ListAuditLogs(c echo.Context) error {
	ctx := c.Request().Context()

	// Parse query parameters
	filters := &models.AuditLogFilters{}
	if action := c.QueryParam("action"); action != "" {
		filters.Action = &action
	}
	if entityType := c.QueryParam("entity_type"); entityType != "" {
		filters.EntityType = &entityType
	}
	if entityID := c.QueryParam("entity_id"); entityID != "" {
		filters.EntityID = &entityID
	}
	if userIDStr := c.QueryParam("user_id"); userIDStr != "" {
		userID, err := common.ValidateUUID(userIDStr, "user_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		filters.UserID = &userID
	}
	if startDate := c.QueryParam("start_date"); startDate != "" {
		sd, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			return common.SendClientError(c, "start_date must be RFC3339 formatted")
		}
		filters.StartDate = &sd
	}
	if endDate := c.QueryParam("end_date"); endDate != "" {
		ed, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			return common.SendClientError(c, "end_date must be RFC3339 formatted")
		}
		filters.EndDate = &ed
	}

	// Parse pagination
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	filters.Limit = limit
	filters.Offset = offset

	// Validate filters (security and performance)
	if err := h.auditLogsService.ValidateAuditFilters(filters); err != nil {
		return common.SendClientError(c, err.Error())
	}

	// Get audit logs
	logs, err := h.auditLogsService.ListAuditLogs(ctx, filters)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve audit logs")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   logs,
		"total":  len(logs),
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}
