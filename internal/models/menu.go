package models

import (
	"time"
)

// NodeKind discriminates the two node tables for operations that act on
// either, like SetActive.
type NodeKind string

const (
	KindMenu    NodeKind = "menu"
	KindSubmenu NodeKind = "submenu"
)

// Menu is a top-level navigation branch. Inactive menus are excluded from
// projections together with their submenus.
type Menu struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title" validate:"required"`
	Icon      *string   `json:"icon,omitempty" db:"icon"`
	SortOrder int       `json:"sort_order" db:"sort_order" validate:"gte=0"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
