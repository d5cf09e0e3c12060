package handlers

import (
	"net/http"

	"navhub/internal/common"
	"navhub/internal/jobs/background"
	"navhub/internal/services"

	"github.com/labstack/echo/v4"
)

// JobHandlers exposes the background scheduler to operators
type JobHandlers struct {
	scheduler     *background.JobScheduler
	auditSvc      services.AuditLogsService
	retentionDays int
}

func NewJobHandlers(scheduler *background.JobScheduler, auditSvc services.AuditLogsService, retentionDays int) *JobHandlers {
	return &JobHandlers{
		scheduler:     scheduler,
		auditSvc:      auditSvc,
		retentionDays: retentionDays,
	}
}

// GetJobStatus lists the registered background jobs
func (h *JobHandlers) GetJobStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.GetJobStatus())
}

// TriggerAuditPurge runs the retention cleanup immediately instead of
// waiting for the daily schedule
func (h *JobHandlers) TriggerAuditPurge(c echo.Context) error {
	deleted, err := h.auditSvc.PurgeOlderThan(c.Request().Context(), h.retentionDays)
	if err != nil {
		return common.SendServerError(c, "Failed to purge audit logs")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Audit retention cleanup completed",
		"deleted": deleted,
	})
}
