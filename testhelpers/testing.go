package testhelpers

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for integration tests
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for integration tests. Tests are
// skipped when TEST_DATABASE_URL is unset so the suite runs without local
// infrastructure.
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
	}
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database integration test")
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// TruncateAll wipes every table so each test starts from an empty tree
func TruncateAll(t *testing.T, db *TestDB) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(),
		"TRUNCATE submenus, menus, role_permissions, user_roles, permissions, roles, audit_logs RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// SeedMenu inserts a menu and returns its generated id
func SeedMenu(t *testing.T, db *TestDB, title string, sortOrder int, active bool) int64 {
	t.Helper()

	var id int64
	query := `
		INSERT INTO menus (title, sort_order, is_active)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := db.Pool.QueryRow(context.Background(), query, title, sortOrder, active).Scan(&id); err != nil {
		t.Fatalf("Failed to seed menu %q: %v", title, err)
	}

	return id
}

// SeedSubmenu inserts a submenu under menuID and returns its generated id.
// endpoint and permissionCode may be empty, which stores NULL.
func SeedSubmenu(t *testing.T, db *TestDB, menuID int64, title, endpoint, permissionCode string, sortOrder int, active bool) int64 {
	t.Helper()

	var id int64
	query := `
		INSERT INTO submenus (menu_id, title, endpoint, permission_code, sort_order, is_active)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
		RETURNING id
	`
	if err := db.Pool.QueryRow(context.Background(), query, menuID, title, endpoint, permissionCode, sortOrder, active).Scan(&id); err != nil {
		t.Fatalf("Failed to seed submenu %q: %v", title, err)
	}

	return id
}

// SeedRole inserts a role and returns its id
func SeedRole(t *testing.T, db *TestDB, name string) uuid.UUID {
	t.Helper()

	roleID := uuid.New()
	query := `INSERT INTO roles (id, name) VALUES ($1, $2)`
	if _, err := db.Pool.Exec(context.Background(), query, roleID, name); err != nil {
		t.Fatalf("Failed to seed role %q: %v", name, err)
	}

	return roleID
}

// SeedPermission inserts a permission and returns its id
func SeedPermission(t *testing.T, db *TestDB, code string) uuid.UUID {
	t.Helper()

	permissionID := uuid.New()
	query := `INSERT INTO permissions (id, code) VALUES ($1, $2)`
	if _, err := db.Pool.Exec(context.Background(), query, permissionID, code); err != nil {
		t.Fatalf("Failed to seed permission %q: %v", code, err)
	}

	return permissionID
}

// GrantPermission attaches a permission to a role
func GrantPermission(t *testing.T, db *TestDB, roleID, permissionID uuid.UUID) {
	t.Helper()

	query := `INSERT INTO role_permissions (id, role_id, permission_id) VALUES ($1, $2, $3)`
	if _, err := db.Pool.Exec(context.Background(), query, uuid.New(), roleID, permissionID); err != nil {
		t.Fatalf("Failed to grant permission: %v", err)
	}
}

// AssignRole attaches a role to a user
func AssignRole(t *testing.T, db *TestDB, userID, roleID uuid.UUID) {
	t.Helper()

	query := `INSERT INTO user_roles (id, user_id, role_id) VALUES ($1, $2, $3)`
	if _, err := db.Pool.Exec(context.Background(), query, uuid.New(), userID, roleID); err != nil {
		t.Fatalf("Failed to assign role: %v", err)
	}
}
