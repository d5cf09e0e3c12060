package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"navhub/internal/apperrors"
	"navhub/internal/models"
	"navhub/internal/repositories"
)

// Snapshot is an immutable view of the node tree captured at a single
// version. Projections are computed from snapshots, never from live store
// state, so a half-applied mutation can never be observed.
type Snapshot struct {
	Menus          []models.Menu
	SubmenusByMenu map[int64][]models.Submenu
	Version        uint64
}

// NodeStore owns the navigation node records and the version counter that
// invalidates cached projections. Mutations are serialized; the counter
// increments only after the backing repository accepts a write, so a
// rejected mutation leaves the version unchanged. The counter is process
// state: it resets when the store is reconstructed.
type NodeStore interface {
	ListMenus(ctx context.Context) ([]models.Menu, error)
	ListSubmenus(ctx context.Context, menuID int64) ([]models.Submenu, error)
	UpsertMenu(ctx context.Context, menu *models.Menu) (*models.Menu, error)
	UpsertSubmenu(ctx context.Context, submenu *models.Submenu) (*models.Submenu, error)
	SetActive(ctx context.Context, kind models.NodeKind, id int64, active bool) error
	ReorderMenus(ctx context.Context, orderedIDs []int64) error
	ReorderSubmenus(ctx context.Context, menuID int64, orderedIDs []int64) error
	CurrentVersion() uint64
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type nodeStore struct {
	menus    repositories.MenuRepository
	submenus repositories.SubmenuRepository

	mu      sync.RWMutex
	version uint64
}

func NewNodeStore(menus repositories.MenuRepository, submenus repositories.SubmenuRepository) NodeStore {
	return &nodeStore{menus: menus, submenus: submenus}
}

func (s *nodeStore) ListMenus(ctx context.Context) ([]models.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menus.List(ctx)
}

func (s *nodeStore) ListSubmenus(ctx context.Context, menuID int64) ([]models.Submenu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submenus.ListByMenu(ctx, menuID)
}

// UpsertMenu inserts when ID is zero, updates otherwise. CreatedAt is
// assigned on insert and never touched on update.
func (s *nodeStore) UpsertMenu(ctx context.Context, menu *models.Menu) (*models.Menu, error) {
	if err := validateMenu(menu); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if menu.ID == 0 {
		err = s.menus.Insert(ctx, menu)
	} else {
		err = s.menus.Update(ctx, menu)
	}
	if err != nil {
		return nil, err
	}

	s.version++
	return menu, nil
}

// UpsertSubmenu validates fields and parent existence before any write.
// A missing parent fails with ReferentialIntegrityError and no version
// bump.
func (s *nodeStore) UpsertSubmenu(ctx context.Context, submenu *models.Submenu) (*models.Submenu, error) {
	if err := validateSubmenu(submenu); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.menus.Exists(ctx, submenu.MenuID)
	if err != nil {
		return nil, fmt.Errorf("failed to check parent menu %d: %w", submenu.MenuID, err)
	}
	if !exists {
		return nil, &apperrors.ReferentialIntegrityError{ParentMenuID: submenu.MenuID}
	}

	if submenu.ID == 0 {
		err = s.submenus.Insert(ctx, submenu)
	} else {
		err = s.submenus.Update(ctx, submenu)
	}
	if err != nil {
		return nil, err
	}

	s.version++
	return submenu, nil
}

func (s *nodeStore) SetActive(ctx context.Context, kind models.NodeKind, id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch kind {
	case models.KindMenu:
		err = s.menus.SetActive(ctx, id, active)
	case models.KindSubmenu:
		err = s.submenus.SetActive(ctx, id, active)
	default:
		return apperrors.NewValidationError("kind", fmt.Sprintf("unknown node kind %q", kind))
	}
	if err != nil {
		return err
	}

	s.version++
	return nil
}

// ReorderMenus assigns ascending sort positions following orderedIDs.
// Menus not listed keep their previous sort_order. Every id must name an
// existing menu; nothing is applied otherwise.
func (s *nodeStore) ReorderMenus(ctx context.Context, orderedIDs []int64) error {
	if err := validateIDList(orderedIDs); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	menus, err := s.menus.List(ctx)
	if err != nil {
		return err
	}
	known := make(map[int64]struct{}, len(menus))
	for _, m := range menus {
		known[m.ID] = struct{}{}
	}
	for _, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("menu %d: %w", id, apperrors.ErrNotFound)
		}
	}

	if err := s.menus.Reorder(ctx, orderedIDs); err != nil {
		return err
	}

	s.version++
	return nil
}

// ReorderSubmenus is ReorderMenus scoped to one parent: every id must be a
// submenu of menuID.
func (s *nodeStore) ReorderSubmenus(ctx context.Context, menuID int64, orderedIDs []int64) error {
	if err := validateIDList(orderedIDs); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.menus.Exists(ctx, menuID)
	if err != nil {
		return fmt.Errorf("failed to check menu %d: %w", menuID, err)
	}
	if !exists {
		return fmt.Errorf("menu %d: %w", menuID, apperrors.ErrNotFound)
	}

	submenus, err := s.submenus.ListByMenu(ctx, menuID)
	if err != nil {
		return err
	}
	known := make(map[int64]struct{}, len(submenus))
	for _, sm := range submenus {
		known[sm.ID] = struct{}{}
	}
	for _, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("submenu %d under menu %d: %w", id, menuID, apperrors.ErrNotFound)
		}
	}

	if err := s.submenus.Reorder(ctx, menuID, orderedIDs); err != nil {
		return err
	}

	s.version++
	return nil
}

func (s *nodeStore) CurrentVersion() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot captures menus, submenus and the version under one read lock.
// Both listings arrive in (sort_order, id) order; grouping preserves it.
func (s *nodeStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	menus, err := s.menus.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}

	submenus, err := s.submenus.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submenus: %w", err)
	}

	byMenu := make(map[int64][]models.Submenu, len(menus))
	for _, sm := range submenus {
		byMenu[sm.MenuID] = append(byMenu[sm.MenuID], sm)
	}

	return &Snapshot{
		Menus:          menus,
		SubmenusByMenu: byMenu,
		Version:        s.version,
	}, nil
}

func validateMenu(menu *models.Menu) error {
	if menu == nil {
		return apperrors.NewValidationError("menu", "menu is required")
	}
	if menu.ID < 0 {
		return apperrors.NewValidationError("id", "id cannot be negative")
	}
	menu.Title = strings.TrimSpace(menu.Title)
	if menu.Title == "" {
		return apperrors.NewValidationError("title", "title is required")
	}
	if menu.SortOrder < 0 {
		return apperrors.NewValidationError("sort_order", "sort_order cannot be negative")
	}
	menu.Icon = normalizeOptional(menu.Icon)
	return nil
}

func validateSubmenu(submenu *models.Submenu) error {
	if submenu == nil {
		return apperrors.NewValidationError("submenu", "submenu is required")
	}
	if submenu.ID < 0 {
		return apperrors.NewValidationError("id", "id cannot be negative")
	}
	if submenu.MenuID <= 0 {
		return apperrors.NewValidationError("menu_id", "menu_id is required")
	}
	submenu.Title = strings.TrimSpace(submenu.Title)
	if submenu.Title == "" {
		return apperrors.NewValidationError("title", "title is required")
	}
	if submenu.SortOrder < 0 {
		return apperrors.NewValidationError("sort_order", "sort_order cannot be negative")
	}
	submenu.Endpoint = normalizeOptional(submenu.Endpoint)
	submenu.URL = normalizeOptional(submenu.URL)
	if submenu.Endpoint != nil && submenu.URL != nil {
		return apperrors.NewValidationError("endpoint", "endpoint and url are mutually exclusive")
	}
	submenu.Icon = normalizeOptional(submenu.Icon)
	submenu.PermissionCode = normalizeOptional(submenu.PermissionCode)
	return nil
}

func validateIDList(ids []int64) error {
	if len(ids) == 0 {
		return apperrors.NewValidationError("ids", "at least one id is required")
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return apperrors.NewValidationError("ids", fmt.Sprintf("invalid id %d", id))
		}
		if _, ok := seen[id]; ok {
			return apperrors.NewValidationError("ids", fmt.Sprintf("duplicate id %d", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}

// normalizeOptional trims an optional string and collapses empty values to
// nil so "" and NULL cannot diverge in storage.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
