package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"navhub/internal/config"
	"navhub/internal/models"
	"navhub/internal/repositories"
	"navhub/pkg/database"
)

// Baseline permission codes. Descriptions mirror the codes; operators refine
// them through the admin API.
var permissionCodes = []string{
	"admin.dashboard.view",

	"leads.view",
	"pipeline.view",
	"clients.manage",
	"projects.view",

	"quotes.view",
	"quotes.proposals_sent.view",
	"quotes.approve",
	"approval_rules.manage",

	"proforma.requests.view",
	"proforma.view",
	"invoices.requests.view",
	"invoices.view",
	"payments.verify",

	"masters.manage",
	"industries.manage",
	"company.view",

	"users.manage",
	"designations.manage",
	"roles.manage",
	"permissions.manage",
	"menus.manage",

	"admin.audit.view",
	"admin.rbac.manage",
}

var managerCodes = []string{
	"admin.dashboard.view",
	"leads.view", "pipeline.view", "clients.manage", "projects.view",
	"quotes.view", "quotes.proposals_sent.view", "quotes.approve",
	"proforma.requests.view", "proforma.view",
	"invoices.requests.view", "invoices.view", "payments.verify",
}

var viewerCodes = []string{
	"admin.dashboard.view",
	"leads.view", "pipeline.view", "projects.view",
	"quotes.view", "proforma.view", "invoices.view",
}

type menuSeed struct {
	key       string
	title     string
	icon      string
	sortOrder int
}

var menuSeeds = []menuSeed{
	{"dashboard", "Dashboard", "speedometer2", 5},
	{"sales", "Sales", "bar-chart", 10},
	{"quotes", "Quotes", "receipt", 20},
	{"finance", "Finance", "cash-stack", 30},
	{"masters", "Masters", "sliders", 40},
	{"admin", "Admin", "gear", 90},
	{"system", "System", "shield-check", 100},
}

// One row per screen; permission_code grants access to that screen.
type screenSeed struct {
	menu     string
	title    string
	endpoint string
	perm     string
}

var screenSeeds = []screenSeed{
	{"dashboard", "Dashboard", "admin.dashboard", "admin.dashboard.view"},
	{"dashboard", "Projects", "projects.list_projects", "projects.view"},

	{"sales", "Leads", "leads.list_leads", "leads.view"},
	{"sales", "Pipeline", "pipeline.board", "pipeline.view"},
	{"sales", "Clients", "clients.list_clients", "clients.manage"},

	{"quotes", "Quotes", "quotes.list_quotes", "quotes.view"},
	{"quotes", "Proposals Sent", "quotes.sent_proposals", "quotes.proposals_sent.view"},
	{"quotes", "Approvals Inbox", "quotes.approvals_inbox", "quotes.approve"},
	{"quotes", "Approval Rules", "quotes.approval_rules_master", "approval_rules.manage"},

	{"finance", "PI Requests", "proforma.pi_requests", "proforma.requests.view"},
	{"finance", "Proforma Invoices", "proforma.list_pi", "proforma.view"},
	{"finance", "Invoice Requests", "invoices.invoice_requests", "invoices.requests.view"},
	{"finance", "Invoices", "invoices.list_invoices", "invoices.view"},
	{"finance", "Payments Queue", "payments.finance_payment_queue", "payments.verify"},

	{"masters", "Lead Status", "admin.lead_status_master", "masters.manage"},
	{"masters", "Lead Source", "admin.lead_source_master", "masters.manage"},
	{"masters", "Activity Types", "admin.activity_type_master", "masters.manage"},
	{"masters", "Industries", "industries.industries_master", "industries.manage"},
	{"masters", "Company", "company_master.company_master", "company.view"},

	{"admin", "User Master", "user_master.users_master", "users.manage"},
	{"admin", "Designations", "designations.designation_master", "designations.manage"},
	{"admin", "Roles", "rbac.roles_master", "roles.manage"},
	{"admin", "Permissions", "rbac.permissions_master", "permissions.manage"},
	{"admin", "Menu Management", "menu_master.menu_management", "menus.manage"},

	{"system", "Audit Logs", "admin.audit_logs", "admin.audit.view"},
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	config.InitConfig(env)

	databaseURL, err := config.LoadDatabaseURL()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	menuRepo := repositories.NewMenuRepo(pool)
	submenuRepo := repositories.NewSubmenuRepo(pool)
	roleRepo := repositories.NewRoleRepo(pool)
	permissionRepo := repositories.NewPermissionRepo(pool)
	rolePermissionRepo := repositories.NewRolePermissionRepo(pool)
	userRoleRepo := repositories.NewUserRoleRepo(pool)

	permsByCode, err := seedPermissions(ctx, permissionRepo)
	if err != nil {
		log.Fatalf("Failed to seed permissions: %v", err)
	}

	if err := seedRoles(ctx, roleRepo, rolePermissionRepo, permsByCode); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	if err := seedRegistry(ctx, menuRepo, submenuRepo); err != nil {
		log.Fatalf("Failed to seed navigation registry: %v", err)
	}

	if err := grantBootstrapAdmin(ctx, roleRepo, userRoleRepo); err != nil {
		log.Fatalf("Failed to grant bootstrap admin: %v", err)
	}

	log.Println("Seed completed")
}

// seedPermissions inserts missing codes and returns code -> id for grants.
func seedPermissions(ctx context.Context, repo repositories.PermissionRepository) (map[string]uuid.UUID, error) {
	byCode := make(map[string]uuid.UUID, len(permissionCodes))
	for _, code := range permissionCodes {
		description := code
		perm := &models.Permission{
			ID:          uuid.New(),
			Code:        code,
			Description: &description,
		}
		if err := repo.Create(ctx, perm); err != nil {
			return nil, fmt.Errorf("permission %s: %w", code, err)
		}

		// Create skips on conflict, so read back the persisted id.
		stored, err := repo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("permission %s: %w", code, err)
		}
		byCode[code] = stored.ID
	}
	log.Printf("Seeded %d permissions", len(byCode))
	return byCode, nil
}

func seedRoles(ctx context.Context, roleRepo repositories.RoleRepository, rolePermissionRepo repositories.RolePermissionRepository, permsByCode map[string]uuid.UUID) error {
	grants := map[string][]string{
		"admin":   permissionCodes,
		"manager": managerCodes,
		"viewer":  viewerCodes,
	}
	descriptions := map[string]string{
		"admin":   "Full access including administration",
		"manager": "Operational access to sales and finance screens",
		"viewer":  "Read-only access",
	}

	for _, name := range []string{"admin", "manager", "viewer"} {
		description := descriptions[name]
		role := &models.Role{
			ID:          uuid.New(),
			Name:        name,
			Description: &description,
		}
		if err := roleRepo.Create(ctx, role); err != nil {
			return fmt.Errorf("role %s: %w", name, err)
		}

		stored, err := roleRepo.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("role %s: %w", name, err)
		}

		for _, code := range grants[name] {
			permID, ok := permsByCode[code]
			if !ok {
				return fmt.Errorf("role %s references unknown permission %s", name, code)
			}
			if err := rolePermissionRepo.Grant(ctx, stored.ID, permID); err != nil {
				return fmt.Errorf("grant %s to %s: %w", code, name, err)
			}
		}
		log.Printf("Seeded role %s with %d permissions", name, len(grants[name]))
	}
	return nil
}

// seedRegistry loads the original menu/submenu layout. It refuses to touch a
// registry that already has menus, so reruns never duplicate rows.
func seedRegistry(ctx context.Context, menuRepo repositories.MenuRepository, submenuRepo repositories.SubmenuRepository) error {
	existing, err := menuRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Navigation registry already has %d menus, skipping", len(existing))
		return nil
	}

	menuIDs := make(map[string]int64, len(menuSeeds))
	for _, m := range menuSeeds {
		icon := m.icon
		menu := &models.Menu{
			Title:     m.title,
			Icon:      &icon,
			SortOrder: m.sortOrder,
			IsActive:  true,
		}
		if err := menuRepo.Insert(ctx, menu); err != nil {
			return fmt.Errorf("menu %s: %w", m.title, err)
		}
		menuIDs[m.key] = menu.ID
	}

	sortByMenu := make(map[string]int, len(menuSeeds))
	for _, s := range screenSeeds {
		menuID, ok := menuIDs[s.menu]
		if !ok {
			return fmt.Errorf("screen %s references unknown menu %s", s.title, s.menu)
		}
		sortByMenu[s.menu]++

		endpoint := s.endpoint
		perm := s.perm
		submenu := &models.Submenu{
			MenuID:         menuID,
			Title:          s.title,
			Endpoint:       &endpoint,
			SortOrder:      sortByMenu[s.menu],
			IsActive:       true,
			PermissionCode: &perm,
		}
		if err := submenuRepo.Insert(ctx, submenu); err != nil {
			return fmt.Errorf("submenu %s: %w", s.title, err)
		}
	}

	// Logout is visible to every authenticated principal and sorts last.
	logoutEndpoint := "auth.logout"
	logout := &models.Submenu{
		MenuID:    menuIDs["system"],
		Title:     "Logout",
		Endpoint:  &logoutEndpoint,
		SortOrder: 999,
		IsActive:  true,
	}
	if err := submenuRepo.Insert(ctx, logout); err != nil {
		return fmt.Errorf("submenu Logout: %w", err)
	}

	log.Printf("Seeded %d menus and %d submenus", len(menuSeeds), len(screenSeeds)+1)
	return nil
}

// grantBootstrapAdmin binds the admin role to the user named by
// SEED_ADMIN_USER_ID. Identities live in the external IdP, so this is the
// only way the first administrator gets in.
func grantBootstrapAdmin(ctx context.Context, roleRepo repositories.RoleRepository, userRoleRepo repositories.UserRoleRepository) error {
	raw := os.Getenv("SEED_ADMIN_USER_ID")
	if raw == "" {
		log.Println("SEED_ADMIN_USER_ID not set, skipping bootstrap admin grant")
		return nil
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid SEED_ADMIN_USER_ID: %w", err)
	}

	adminRole, err := roleRepo.GetByName(ctx, "admin")
	if err != nil {
		return err
	}

	if err := userRoleRepo.Grant(ctx, userID, adminRole.ID); err != nil {
		return err
	}
	log.Printf("Granted admin role to user %s", userID)
	return nil
}
