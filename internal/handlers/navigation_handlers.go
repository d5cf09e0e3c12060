package handlers

import (
	"net/http"

	"navhub/internal/apperrors"
	"navhub/internal/common"
	"navhub/internal/services"

	"github.com/labstack/echo/v4"
)

// NavigationHandlers serves the personalized sidebar tree
type NavigationHandlers struct {
	navigationService services.NavigationService
}

// NewNavigationHandlers creates a new navigation handlers instance
func NewNavigationHandlers(navigationService services.NavigationService) *NavigationHandlers {
	return &NavigationHandlers{
		navigationService: navigationService,
	}
}

// GetNavigation returns the menu tree the authenticated user is allowed to
// see. When permission data cannot be resolved the request fails with 503
// instead of silently rendering an empty sidebar.
func (h *NavigationHandlers) GetNavigation(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	resp, err := h.navigationService.GetNavigation(ctx, userID)
	if err != nil {
		if apperrors.IsAuthorityUnavailable(err) {
			return common.SendAuthorityUnavailableError(c)
		}
		return common.SendServerError(c, "Failed to build navigation")
	}

	return c.JSON(http.StatusOK, resp)
}

// GetCacheStats exposes projection-cache counters for operators
func (h *NavigationHandlers) GetCacheStats(c echo.Context) error {
	stats := h.navigationService.CacheStats()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"hits":      stats.Hits,
		"misses":    stats.Misses,
		"evictions": stats.Evictions,
		"entries":   stats.Entries,
		"hit_rate":  stats.HitRate(),
	})
}
