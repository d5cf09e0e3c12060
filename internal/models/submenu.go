package models

import (
	"time"
)

// Submenu is a leaf entry under a menu. The navigation target is either an
// endpoint (logical route identifier, resolved by the client router) or a
// url; a submenu with neither is a non-navigable grouping node. A nil
// PermissionCode means the entry is visible to every authenticated
// principal.
type Submenu struct {
	ID             int64     `json:"id" db:"id"`
	MenuID         int64     `json:"menu_id" db:"menu_id" validate:"required"`
	Title          string    `json:"title" db:"title" validate:"required"`
	Endpoint       *string   `json:"endpoint,omitempty" db:"endpoint"`
	URL            *string   `json:"url,omitempty" db:"url"`
	Icon           *string   `json:"icon,omitempty" db:"icon"`
	SortOrder      int       `json:"sort_order" db:"sort_order" validate:"gte=0"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	PermissionCode *string   `json:"permission_code,omitempty" db:"permission_code"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Navigable reports whether the submenu carries a navigation target.
func (s *Submenu) Navigable() bool {
	return s.Endpoint != nil || s.URL != nil
}
