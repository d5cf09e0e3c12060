package handlers

import (
	"errors"
	"net/http"

	"navhub/internal/apperrors"
	"navhub/internal/common"
	"navhub/internal/models"
	"navhub/internal/services"

	"github.com/labstack/echo/v4"
)

// MenuHandlers handles the admin registry surface: menu and submenu upserts,
// activation toggles, reordering and the xlsx export.
type MenuHandlers struct {
	menuService   services.MenuService
	exportService services.ExportService
}

// NewMenuHandlers creates a new menu handlers instance
func NewMenuHandlers(menuService services.MenuService, exportService services.ExportService) *MenuHandlers {
	return &MenuHandlers{
		menuService:   menuService,
		exportService: exportService,
	}
}

// nodeError maps registry errors onto the shared response envelope.
func nodeError(c echo.Context, err error, resource string) error {
	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		return common.SendValidationError(c, valErr.Field, valErr.Message)
	}

	var refErr *apperrors.ReferentialIntegrityError
	if errors.As(err, &refErr) {
		return common.SendReferentialIntegrityError(c, refErr.Error())
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		return common.SendNotFoundError(c, resource)
	}

	return common.SendServerError(c, "Failed to update navigation registry")
}

// ListMenus returns every menu, inactive ones included
func (h *MenuHandlers) ListMenus(c echo.Context) error {
	menus, err := h.menuService.ListMenus(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to list menus")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"menus":   menus,
		"version": h.menuService.CurrentVersion(),
	})
}

// ListSubmenus returns all submenus of one menu, inactive ones included
func (h *MenuHandlers) ListSubmenus(c echo.Context) error {
	menuID, err := common.ValidateNodeID(c.Param("id"), "menu id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	submenus, err := h.menuService.ListSubmenus(c.Request().Context(), menuID)
	if err != nil {
		return nodeError(c, err, "Menu")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"menu_id":  menuID,
		"submenus": submenus,
	})
}

// UpsertMenuRequest carries a full menu record; on PUT the id comes from the path
type UpsertMenuRequest struct {
	Title     string  `json:"title" validate:"required"`
	Icon      *string `json:"icon"`
	SortOrder int     `json:"sort_order" validate:"gte=0"`
	IsActive  *bool   `json:"is_active"`
}

func (r *UpsertMenuRequest) toModel(id int64) *models.Menu {
	menu := &models.Menu{
		ID:        id,
		Title:     r.Title,
		Icon:      r.Icon,
		SortOrder: r.SortOrder,
		IsActive:  true,
	}
	if r.IsActive != nil {
		menu.IsActive = *r.IsActive
	}
	return menu
}

// CreateMenu handles creating a new menu node
func (h *MenuHandlers) CreateMenu(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req UpsertMenuRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	menu, err := h.menuService.UpsertMenu(ctx, userID, req.toModel(0))
	if err != nil {
		return nodeError(c, err, "Menu")
	}

	return c.JSON(http.StatusCreated, menu)
}

// UpdateMenu handles replacing an existing menu node
func (h *MenuHandlers) UpdateMenu(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	menuID, err := common.ValidateNodeID(c.Param("id"), "menu id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpsertMenuRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	menu, err := h.menuService.UpsertMenu(ctx, userID, req.toModel(menuID))
	if err != nil {
		return nodeError(c, err, "Menu")
	}

	return c.JSON(http.StatusOK, menu)
}

// UpsertSubmenuRequest carries a full submenu record
type UpsertSubmenuRequest struct {
	MenuID         int64   `json:"menu_id" validate:"required,gt=0"`
	Title          string  `json:"title" validate:"required"`
	Endpoint       *string `json:"endpoint"`
	URL            *string `json:"url"`
	Icon           *string `json:"icon"`
	SortOrder      int     `json:"sort_order" validate:"gte=0"`
	IsActive       *bool   `json:"is_active"`
	PermissionCode *string `json:"permission_code"`
}

func (r *UpsertSubmenuRequest) toModel(id int64) *models.Submenu {
	submenu := &models.Submenu{
		ID:             id,
		MenuID:         r.MenuID,
		Title:          r.Title,
		Endpoint:       r.Endpoint,
		URL:            r.URL,
		Icon:           r.Icon,
		SortOrder:      r.SortOrder,
		IsActive:       true,
		PermissionCode: r.PermissionCode,
	}
	if r.IsActive != nil {
		submenu.IsActive = *r.IsActive
	}
	return submenu
}

// CreateSubmenu handles creating a new submenu node
func (h *MenuHandlers) CreateSubmenu(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req UpsertSubmenuRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	submenu, err := h.menuService.UpsertSubmenu(ctx, userID, req.toModel(0))
	if err != nil {
		return nodeError(c, err, "Submenu")
	}

	return c.JSON(http.StatusCreated, submenu)
}

// UpdateSubmenu handles replacing an existing submenu node
func (h *MenuHandlers) UpdateSubmenu(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	submenuID, err := common.ValidateNodeID(c.Param("id"), "submenu id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpsertSubmenuRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	submenu, err := h.menuService.UpsertSubmenu(ctx, userID, req.toModel(submenuID))
	if err != nil {
		return nodeError(c, err, "Submenu")
	}

	return c.JSON(http.StatusOK, submenu)
}

// SetActiveRequest toggles a node's visibility
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// SetMenuActive toggles a menu on or off
func (h *MenuHandlers) SetMenuActive(c echo.Context) error {
	return h.setActive(c, models.KindMenu, "Menu")
}

// SetSubmenuActive toggles a submenu on or off
func (h *MenuHandlers) SetSubmenuActive(c echo.Context) error {
	return h.setActive(c, models.KindSubmenu, "Submenu")
}

func (h *MenuHandlers) setActive(c echo.Context, kind models.NodeKind, resource string) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	nodeID, err := common.ValidateNodeID(c.Param("id"), "node id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req SetActiveRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.IsActive == nil {
		return common.SendValidationError(c, "is_active", "is_active is required")
	}

	if err := h.menuService.SetActive(ctx, userID, kind, nodeID, *req.IsActive); err != nil {
		return nodeError(c, err, resource)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":        nodeID,
		"is_active": *req.IsActive,
	})
}

// ReorderRequest carries the complete new ordering for a sibling group
type ReorderRequest struct {
	OrderedIDs []int64 `json:"ordered_ids" validate:"required,min=1"`
}

// ReorderMenus replaces the ordering of all top-level menus
func (h *MenuHandlers) ReorderMenus(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.menuService.ReorderMenus(ctx, userID, req.OrderedIDs); err != nil {
		return nodeError(c, err, "Menu")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Menus reordered successfully",
		"version": h.menuService.CurrentVersion(),
	})
}

// ReorderSubmenus replaces the ordering of one menu's submenus
func (h *MenuHandlers) ReorderSubmenus(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	menuID, err := common.ValidateNodeID(c.Param("id"), "menu id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.menuService.ReorderSubmenus(ctx, userID, menuID, req.OrderedIDs); err != nil {
		return nodeError(c, err, "Submenu")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Submenus reordered successfully",
		"menu_id": menuID,
		"version": h.menuService.CurrentVersion(),
	})
}

// GetVersion reports the current registry revision
func (h *MenuHandlers) GetVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"version": h.menuService.CurrentVersion(),
	})
}

// ExportRegistry streams the full registry as an xlsx attachment
func (h *MenuHandlers) ExportRegistry(c echo.Context) error {
	f, err := h.exportService.ExportRegistry(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to export registry")
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="navigation_registry.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)

	return f.Write(c.Response())
}
