package services

import (
	"context"
	"fmt"

	"navhub/internal/store"

	"github.com/xuri/excelize/v2"
)

const (
	menusSheet    = "Menus"
	submenusSheet = "Submenus"
)

// ExportService renders the full navigation registry, inactive nodes
// included, as an xlsx workbook for admin review.
type ExportService interface {
	ExportRegistry(ctx context.Context) (*excelize.File, error)
}

type exportService struct {
	nodeStore store.NodeStore
}

func NewExportService(nodeStore store.NodeStore) ExportService {
	return &exportService{nodeStore: nodeStore}
}

func (s *exportService) ExportRegistry(ctx context.Context) (*excelize.File, error) {
	snap, err := s.nodeStore.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load navigation nodes: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", menusSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(submenusSheet); err != nil {
		return nil, err
	}

	menuTitles := make(map[int64]string, len(snap.Menus))

	f.SetCellValue(menusSheet, "A1", "ID")
	f.SetCellValue(menusSheet, "B1", "Title")
	f.SetCellValue(menusSheet, "C1", "Icon")
	f.SetCellValue(menusSheet, "D1", "Sort Order")
	f.SetCellValue(menusSheet, "E1", "Active")
	f.SetCellValue(menusSheet, "F1", "Created At")

	for i, menu := range snap.Menus {
		row := i + 2
		menuTitles[menu.ID] = menu.Title
		f.SetCellValue(menusSheet, fmt.Sprintf("A%d", row), menu.ID)
		f.SetCellValue(menusSheet, fmt.Sprintf("B%d", row), menu.Title)
		f.SetCellValue(menusSheet, fmt.Sprintf("C%d", row), deref(menu.Icon))
		f.SetCellValue(menusSheet, fmt.Sprintf("D%d", row), menu.SortOrder)
		f.SetCellValue(menusSheet, fmt.Sprintf("E%d", row), menu.IsActive)
		f.SetCellValue(menusSheet, fmt.Sprintf("F%d", row), menu.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	f.SetCellValue(submenusSheet, "A1", "ID")
	f.SetCellValue(submenusSheet, "B1", "Menu ID")
	f.SetCellValue(submenusSheet, "C1", "Menu Title")
	f.SetCellValue(submenusSheet, "D1", "Title")
	f.SetCellValue(submenusSheet, "E1", "Endpoint")
	f.SetCellValue(submenusSheet, "F1", "URL")
	f.SetCellValue(submenusSheet, "G1", "Icon")
	f.SetCellValue(submenusSheet, "H1", "Sort Order")
	f.SetCellValue(submenusSheet, "I1", "Active")
	f.SetCellValue(submenusSheet, "J1", "Permission Code")
	f.SetCellValue(submenusSheet, "K1", "Navigable")
	f.SetCellValue(submenusSheet, "L1", "Created At")

	row := 2
	for _, menu := range snap.Menus {
		for _, sub := range snap.SubmenusByMenu[menu.ID] {
			f.SetCellValue(submenusSheet, fmt.Sprintf("A%d", row), sub.ID)
			f.SetCellValue(submenusSheet, fmt.Sprintf("B%d", row), sub.MenuID)
			f.SetCellValue(submenusSheet, fmt.Sprintf("C%d", row), menuTitles[sub.MenuID])
			f.SetCellValue(submenusSheet, fmt.Sprintf("D%d", row), sub.Title)
			f.SetCellValue(submenusSheet, fmt.Sprintf("E%d", row), deref(sub.Endpoint))
			f.SetCellValue(submenusSheet, fmt.Sprintf("F%d", row), deref(sub.URL))
			f.SetCellValue(submenusSheet, fmt.Sprintf("G%d", row), deref(sub.Icon))
			f.SetCellValue(submenusSheet, fmt.Sprintf("H%d", row), sub.SortOrder)
			f.SetCellValue(submenusSheet, fmt.Sprintf("I%d", row), sub.IsActive)
			f.SetCellValue(submenusSheet, fmt.Sprintf("J%d", row), deref(sub.PermissionCode))
			f.SetCellValue(submenusSheet, fmt.Sprintf("K%d", row), sub.Navigable())
			f.SetCellValue(submenusSheet, fmt.Sprintf("L%d", row), sub.CreatedAt.Format("2006-01-02 15:04:05"))
			row++
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
