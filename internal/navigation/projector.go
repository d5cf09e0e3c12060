// Package navigation computes authorized navigation trees. Project is a
// pure function over a node snapshot and a permission set: identical inputs
// always yield identical output, which is what makes projections cacheable
// by fingerprint.
package navigation

import (
	"navhub/internal/models"
)

// Policy is the single configuration point for menu pruning. By default a
// menu whose submenus all filtered out is dropped so clients never render
// empty parents; KeepEmptyMenus retains such menus as header-only entries.
type Policy struct {
	KeepEmptyMenus bool
}

// SubmenuEntry is a projected submenu. Endpoint and URL pass through
// verbatim: endpoint names a logical route for client-side routers, URL is
// a direct path. An entry with neither is a non-navigable grouping node;
// rendering it is the client's call.
type SubmenuEntry struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Icon     *string `json:"icon,omitempty"`
	Endpoint *string `json:"endpoint,omitempty"`
	URL      *string `json:"url,omitempty"`
}

// MenuEntry is a projected menu with its authorized submenus.
type MenuEntry struct {
	ID       int64          `json:"id"`
	Title    string         `json:"title"`
	Icon     *string        `json:"icon,omitempty"`
	Submenus []SubmenuEntry `json:"submenus"`
}

// Projection is the authorized, ordered subset of the navigation tree for
// one principal.
type Projection []MenuEntry

// Project filters a snapshot down to what a principal holding perms may
// see:
//
//  1. Inactive menus are dropped without descending into their submenus.
//  2. A submenu survives iff it is active and its permission code is nil
//     or a member of perms. Unknown codes simply never match.
//  3. A menu with zero surviving submenus is pruned unless
//     policy.KeepEmptyMenus.
//
// Input order is preserved; Project never re-sorts. Both inputs are
// expected in (sort_order, id) ascending order, which is the store's
// listing contract.
func Project(menus []models.Menu, submenusByMenu map[int64][]models.Submenu, perms models.PermissionSet, policy Policy) Projection {
	projection := make(Projection, 0, len(menus))

	for _, menu := range menus {
		if !menu.IsActive {
			continue
		}

		submenus := submenusByMenu[menu.ID]
		entries := make([]SubmenuEntry, 0, len(submenus))
		for _, submenu := range submenus {
			if !submenu.IsActive {
				continue
			}
			if submenu.PermissionCode != nil && !perms.Has(*submenu.PermissionCode) {
				continue
			}
			entries = append(entries, SubmenuEntry{
				ID:       submenu.ID,
				Title:    submenu.Title,
				Icon:     submenu.Icon,
				Endpoint: submenu.Endpoint,
				URL:      submenu.URL,
			})
		}

		if len(entries) == 0 && !policy.KeepEmptyMenus {
			continue
		}

		projection = append(projection, MenuEntry{
			ID:       menu.ID,
			Title:    menu.Title,
			Icon:     menu.Icon,
			Submenus: entries,
		})
	}

	return projection
}
