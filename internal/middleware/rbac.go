package middleware

import (
	"net/http"

	"navhub/internal/apperrors"
	"navhub/internal/common"
	"navhub/internal/services"

	"github.com/labstack/echo/v4"
)

type RBACMiddleware struct {
	rbacService services.RBACService
}

func NewRBACMiddleware(rbacService services.RBACService) *RBACMiddleware {
	return &RBACMiddleware{
		rbacService: rbacService,
	}
}

// RequirePermission gates a route on a permission code. When the authority
// data cannot be resolved the request fails with 503 rather than being
// treated as a denial.
func (m *RBACMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			hasPermission, err := m.rbacService.UserHasPermission(ctx, userID, permission)
			if err != nil {
				if apperrors.IsAuthorityUnavailable(err) {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "Permission authority unavailable")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Error checking permission")
			}
			if !hasPermission {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}

			return next(c)
		}
	}
}
