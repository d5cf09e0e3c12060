package services

import (
	"context"
	"log"
	"strconv"

	"navhub/internal/models"
	"navhub/internal/store"

	"github.com/google/uuid"
)

// MenuService exposes the admin surface of the navigation registry. Every
// successful mutation bumps the node-store version, which retires all cached
// projections on their next lookup; no explicit cache flush is needed here.
type MenuService interface {
	ListMenus(ctx context.Context) ([]models.Menu, error)
	ListSubmenus(ctx context.Context, menuID int64) ([]models.Submenu, error)

	UpsertMenu(ctx context.Context, actor uuid.UUID, menu *models.Menu) (*models.Menu, error)
	UpsertSubmenu(ctx context.Context, actor uuid.UUID, submenu *models.Submenu) (*models.Submenu, error)
	SetActive(ctx context.Context, actor uuid.UUID, kind models.NodeKind, id int64, active bool) error
	ReorderMenus(ctx context.Context, actor uuid.UUID, orderedIDs []int64) error
	ReorderSubmenus(ctx context.Context, actor uuid.UUID, menuID int64, orderedIDs []int64) error

	CurrentVersion() uint64
}

type menuService struct {
	nodeStore store.NodeStore
	audit     AuditLogsService
}

func NewMenuService(nodeStore store.NodeStore, audit AuditLogsService) MenuService {
	return &menuService{
		nodeStore: nodeStore,
		audit:     audit,
	}
}

func (s *menuService) ListMenus(ctx context.Context) ([]models.Menu, error) {
	return s.nodeStore.ListMenus(ctx)
}

func (s *menuService) ListSubmenus(ctx context.Context, menuID int64) ([]models.Submenu, error) {
	return s.nodeStore.ListSubmenus(ctx, menuID)
}

func (s *menuService) UpsertMenu(ctx context.Context, actor uuid.UUID, menu *models.Menu) (*models.Menu, error) {
	saved, err := s.nodeStore.UpsertMenu(ctx, menu)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, models.AuditMenuUpsert, "menu", saved.ID, models.JSONB{
		"title":      saved.Title,
		"sort_order": saved.SortOrder,
		"is_active":  saved.IsActive,
	})
	return saved, nil
}

func (s *menuService) UpsertSubmenu(ctx context.Context, actor uuid.UUID, submenu *models.Submenu) (*models.Submenu, error) {
	saved, err := s.nodeStore.UpsertSubmenu(ctx, submenu)
	if err != nil {
		return nil, err
	}

	details := models.JSONB{
		"menu_id":    saved.MenuID,
		"title":      saved.Title,
		"sort_order": saved.SortOrder,
		"is_active":  saved.IsActive,
	}
	if saved.PermissionCode != nil {
		details["permission_code"] = *saved.PermissionCode
	}
	s.recordAudit(ctx, actor, models.AuditSubmenuUpsert, "submenu", saved.ID, details)
	return saved, nil
}

func (s *menuService) SetActive(ctx context.Context, actor uuid.UUID, kind models.NodeKind, id int64, active bool) error {
	if err := s.nodeStore.SetActive(ctx, kind, id, active); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, models.AuditNodeSetActive, string(kind), id, models.JSONB{
		"is_active": active,
	})
	return nil
}

func (s *menuService) ReorderMenus(ctx context.Context, actor uuid.UUID, orderedIDs []int64) error {
	if err := s.nodeStore.ReorderMenus(ctx, orderedIDs); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, models.AuditNodesReorder, "menu", 0, models.JSONB{
		"ordered_ids": orderedIDs,
	})
	return nil
}

func (s *menuService) ReorderSubmenus(ctx context.Context, actor uuid.UUID, menuID int64, orderedIDs []int64) error {
	if err := s.nodeStore.ReorderSubmenus(ctx, menuID, orderedIDs); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, models.AuditNodesReorder, "submenu", menuID, models.JSONB{
		"menu_id":     menuID,
		"ordered_ids": orderedIDs,
	})
	return nil
}

func (s *menuService) CurrentVersion() uint64 {
	return s.nodeStore.CurrentVersion()
}

// recordAudit logs the entry but never fails the mutation it describes.
func (s *menuService) recordAudit(ctx context.Context, actor uuid.UUID, action, entityType string, entityID int64, details models.JSONB) {
	if s.audit == nil {
		return
	}
	entityRef := ""
	if entityID > 0 {
		entityRef = strconv.FormatInt(entityID, 10)
	}
	if err := s.audit.Record(ctx, &actor, action, entityType, entityRef, details); err != nil {
		log.Printf("WARN: failed to record audit entry for %s: %v", action, err)
	}
}
