package services

import (
	"context"
	"errors"
	"time"

	"navhub/internal/models"
	"navhub/internal/repositories"

	"github.com/google/uuid"
)

type AuditLogsService interface {
	// Record writes a single audit entry for an admin mutation.
	Record(ctx context.Context, userID *uuid.UUID, action, entityType, entityID string, details models.JSONB) error

	// Query audit logs
	ListAuditLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error)
	ValidateAuditFilters(filters *models.AuditLogFilters) error

	// Retention cleanup, invoked by the background scheduler
	PurgeOlderThan(ctx context.Context, retentionDays int) (int64, error)
}

type auditLogsService struct {
	auditLogsRepo repositories.AuditLogsRepository
}

func NewAuditLogsService(auditLogsRepo repositories.AuditLogsRepository) AuditLogsService {
	return &auditLogsService{
		auditLogsRepo: auditLogsRepo,
	}
}

// Record creates a new audit log entry with validation
func (s *auditLogsService) Record(ctx context.Context, userID *uuid.UUID, action, entityType, entityID string, details models.JSONB) error {
	if action == "" {
		return errors.New("action is required")
	}
	if entityType == "" {
		return errors.New("entity_type is required")
	}

	auditLog := &models.AuditLog{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now(),
	}

	return s.auditLogsRepo.Create(ctx, auditLog)
}

// ListAuditLogs retrieves audit log entries with filtering
func (s *auditLogsService) ListAuditLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error) {
	if filters == nil {
		filters = &models.AuditLogFilters{Limit: 50} // Default limit
	}
	if filters.Limit <= 0 || filters.Limit > 1000 {
		filters.Limit = 50 // Reasonable default for performance
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	return s.auditLogsRepo.List(ctx, filters)
}

// ValidateAuditFilters performs security and performance validation on audit filters
func (s *auditLogsService) ValidateAuditFilters(filters *models.AuditLogFilters) error {
	if filters == nil {
		return nil
	}

	// Limit date range to prevent excessive data extraction
	if filters.StartDate != nil && filters.EndDate != nil {
		if filters.StartDate.After(*filters.EndDate) {
			return errors.New("start_date cannot be after end_date")
		}
		if filters.EndDate.Sub(*filters.StartDate) > 365*24*time.Hour {
			return errors.New("date range cannot exceed 1 year")
		}
	}

	// Limit page size for performance
	if filters.Limit > 1000 {
		return errors.New("maximum limit is 1000 records")
	}

	return nil
}

// PurgeOlderThan deletes audit entries older than the retention window and
// reports how many rows were removed.
func (s *auditLogsService) PurgeOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, errors.New("retention_days must be positive")
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.auditLogsRepo.DeleteOlderThan(ctx, cutoff)
}
