package handlers

import (
	"errors"
	"net/http"

	"navhub/internal/apperrors"
	"navhub/internal/common"
	"navhub/internal/models"
	"navhub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RBACHandlers handles role, permission and grant administration
type RBACHandlers struct {
	rbacAdminService services.RBACAdminService
}

// NewRBACHandlers creates a new RBAC handlers instance
func NewRBACHandlers(rbacAdminService services.RBACAdminService) *RBACHandlers {
	return &RBACHandlers{
		rbacAdminService: rbacAdminService,
	}
}

func rbacError(c echo.Context, err error, resource string) error {
	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		return common.SendValidationError(c, valErr.Field, valErr.Message)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return common.SendNotFoundError(c, resource)
	}
	return common.SendServerError(c, "Failed to update access control data")
}

// CreateRoleRequest represents the role creation request payload
type CreateRoleRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// CreateRole handles creating a new role
func (h *RBACHandlers) CreateRole(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateRoleRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role, err := h.rbacAdminService.CreateRole(ctx, userID, req.Name, req.Description)
	if err != nil {
		return rbacError(c, err, "Role")
	}

	return c.JSON(http.StatusCreated, role)
}

// ListRoles returns all roles
func (h *RBACHandlers) ListRoles(c echo.Context) error {
	roles, err := h.rbacAdminService.ListRoles(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to list roles")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"roles": roles,
		"count": len(roles),
	})
}

// GetRole returns one role by id
func (h *RBACHandlers) GetRole(c echo.Context) error {
	roleID, err := common.ValidateUUID(c.Param("id"), "role id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	role, err := h.rbacAdminService.GetRole(c.Request().Context(), roleID)
	if err != nil {
		return rbacError(c, err, "Role")
	}

	return c.JSON(http.StatusOK, role)
}

// UpdateRoleRequest represents the role update request payload
type UpdateRoleRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// UpdateRole handles renaming a role or changing its description
func (h *RBACHandlers) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	roleID, err := common.ValidateUUID(c.Param("id"), "role id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role := &models.Role{
		ID:          roleID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.rbacAdminService.UpdateRole(ctx, userID, role); err != nil {
		return rbacError(c, err, "Role")
	}

	return c.JSON(http.StatusOK, role)
}

// DeleteRole handles removing a role and its grants
func (h *RBACHandlers) DeleteRole(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	roleID, err := common.ValidateUUID(c.Param("id"), "role id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.rbacAdminService.DeleteRole(ctx, userID, roleID); err != nil {
		return rbacError(c, err, "Role")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Role deleted successfully",
	})
}

// CreatePermissionRequest represents the permission creation request payload
type CreatePermissionRequest struct {
	Code        string  `json:"code" validate:"required"`
	Description *string `json:"description"`
}

// CreatePermission handles registering a new permission code
func (h *RBACHandlers) CreatePermission(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreatePermissionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	perm, err := h.rbacAdminService.CreatePermission(ctx, userID, req.Code, req.Description)
	if err != nil {
		return rbacError(c, err, "Permission")
	}

	return c.JSON(http.StatusCreated, perm)
}

// ListPermissions returns all registered permission codes
func (h *RBACHandlers) ListPermissions(c echo.Context) error {
	perms, err := h.rbacAdminService.ListPermissions(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to list permissions")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"permissions": perms,
		"count":       len(perms),
	})
}

// UpdatePermissionRequest updates the human description; the code itself is immutable
type UpdatePermissionRequest struct {
	Description *string `json:"description"`
}

// UpdatePermission handles updating a permission's description
func (h *RBACHandlers) UpdatePermission(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	permID, err := common.ValidateUUID(c.Param("id"), "permission id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpdatePermissionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.rbacAdminService.UpdatePermissionDescription(ctx, userID, permID, req.Description); err != nil {
		return rbacError(c, err, "Permission")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Permission updated successfully",
	})
}

// SetRolePermissionsRequest replaces a role's permission set atomically
type SetRolePermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" validate:"required"`
}

// SetRolePermissions handles replacing the full permission set of a role
func (h *RBACHandlers) SetRolePermissions(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	roleID, err := common.ValidateUUID(c.Param("id"), "role id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req SetRolePermissionsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	permIDs := make([]uuid.UUID, 0, len(req.PermissionIDs))
	for _, idStr := range req.PermissionIDs {
		permID, err := common.ValidateUUID(idStr, "permission id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		permIDs = append(permIDs, permID)
	}

	if err := h.rbacAdminService.SetRolePermissions(ctx, userID, roleID, permIDs); err != nil {
		return rbacError(c, err, "Role")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"role_id":          roleID,
		"permission_count": len(permIDs),
	})
}

// ListRolePermissions returns the permissions granted to a role
func (h *RBACHandlers) ListRolePermissions(c echo.Context) error {
	roleID, err := common.ValidateUUID(c.Param("id"), "role id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	perms, err := h.rbacAdminService.ListRolePermissions(c.Request().Context(), roleID)
	if err != nil {
		return rbacError(c, err, "Role")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"role_id":     roleID,
		"permissions": perms,
	})
}

// GrantUserRole assigns a role to a user
func (h *RBACHandlers) GrantUserRole(c echo.Context) error {
	ctx := c.Request().Context()

	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	targetID, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	roleID, err := common.ValidateUUID(c.Param("roleId"), "role id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.rbacAdminService.GrantRole(ctx, actorID, targetID, roleID); err != nil {
		return rbacError(c, err, "Role")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"user_id": targetID,
		"role_id": roleID,
	})
}

// RevokeUserRole removes a role from a user
func (h *RBACHandlers) RevokeUserRole(c echo.Context) error {
	ctx := c.Request().Context()

	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	targetID, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	roleID, err := common.ValidateUUID(c.Param("roleId"), "role id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.rbacAdminService.RevokeRole(ctx, actorID, targetID, roleID); err != nil {
		return rbacError(c, err, "Role")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Role revoked successfully",
	})
}

// ListUserRoles returns the roles assigned to a user
func (h *RBACHandlers) ListUserRoles(c echo.Context) error {
	targetID, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	roles, err := h.rbacAdminService.ListUserRoles(c.Request().Context(), targetID)
	if err != nil {
		return rbacError(c, err, "User")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id": targetID,
		"roles":   roles,
	})
}
