package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"navhub/internal/caching"
	"navhub/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db            *pgxpool.Pool
	cacheSvc      caching.CacheService
	storageSvc    services.MinioService
	navigationSvc services.NavigationService
}

// NewHealthHandlers creates a new health handlers instance. storageSvc and
// navigationSvc may be nil when the corresponding subsystem is not configured.
func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService, storageSvc services.MinioService, navigationSvc services.NavigationService) *HealthHandlers {
	return &HealthHandlers{
		db:            db,
		cacheSvc:      cacheSvc,
		storageSvc:    storageSvc,
		navigationSvc: navigationSvc,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// HealthCheck performs comprehensive health checks
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   "1.0.0",
	}

	// Check database connectivity
	if err := h.checkDatabase(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	// Check Redis connectivity
	if err := h.checkRedis(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	// Check MinIO/S3 connectivity
	if h.storageSvc != nil {
		if err := h.checkStorage(ctx); err != nil {
			health.Services["storage"] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services["storage"] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}

	return c.JSON(statusCode, health)
}

// checkDatabase verifies database connectivity
func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	_, err := h.db.Exec(ctx, "SELECT 1")
	return err
}

// checkRedis verifies Redis connectivity
func (h *HealthHandlers) checkRedis(ctx context.Context) error {
	if h.cacheSvc == nil {
		return nil
	}
	return h.cacheSvc.Ping(ctx)
}

// checkStorage verifies object storage connectivity. A missing logo object
// is fine; only transport or auth failures count as unhealthy.
func (h *HealthHandlers) checkStorage(ctx context.Context) error {
	_, err := h.storageSvc.StatObject(ctx, "navhub-branding", "logo")
	return err
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Navigation cannot be served without the database or the permission
	// authority, so both gate readiness.
	dbErr := h.checkDatabase(ctx)
	redisErr := h.checkRedis(ctx)

	if dbErr != nil || redisErr != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Critical services unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running (basic liveness probe)
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// MetricsResponse represents application metrics
type MetricsResponse struct {
	Timestamp  time.Time              `json:"timestamp"`
	Metrics    map[string]interface{} `json:"metrics"`
	Version    string                 `json:"version"`
	Goroutines int                    `json:"goroutines"`
}

// GetMetrics provides application performance metrics
func (h *HealthHandlers) GetMetrics(c echo.Context) error {
	poolStat := h.db.Stat()

	metrics := &MetricsResponse{
		Timestamp:  time.Now().UTC(),
		Version:    "1.0.0",
		Goroutines: runtime.NumGoroutine(),
		Metrics: map[string]interface{}{
			"database_connections": map[string]interface{}{
				"max":      poolStat.MaxConns(),
				"acquired": poolStat.AcquiredConns(),
				"idle":     poolStat.IdleConns(),
				"total":    poolStat.TotalConns(),
			},
		},
	}

	if h.navigationSvc != nil {
		stats := h.navigationSvc.CacheStats()
		metrics.Metrics["projection_cache"] = map[string]interface{}{
			"hits":      stats.Hits,
			"misses":    stats.Misses,
			"evictions": stats.Evictions,
			"entries":   stats.Entries,
			"hit_rate":  stats.HitRate(),
		}
	}

	return c.JSON(http.StatusOK, metrics)
}
