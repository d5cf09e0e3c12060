package repositories

import (
	"context"
	"fmt"

	"navhub/internal/models"

	"github.com/google/uuid"
)

type RolePermissionRepository interface {
	Grant(ctx context.Context, roleID, permissionID uuid.UUID) error
	Revoke(ctx context.Context, roleID, permissionID uuid.UUID) error
	// ReplaceForRole swaps the role's entire permission set atomically.
	ReplaceForRole(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error
	ListByRole(ctx context.Context, roleID uuid.UUID) ([]*models.RolePermission, error)
	// GetCodesByUser resolves the union of permission codes across every
	// role held by the user, deduplicated, in one query.
	GetCodesByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type rolePermissionRepo struct {
	db Database
}

func NewRolePermissionRepo(db Database) RolePermissionRepository {
	return &rolePermissionRepo{db: db}
}

func (r *rolePermissionRepo) Grant(ctx context.Context, roleID, permissionID uuid.UUID) error {
	query := `
		INSERT INTO role_permissions (id, role_id, permission_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (role_id, permission_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), roleID, permissionID)
	return err
}

func (r *rolePermissionRepo) Revoke(ctx context.Context, roleID, permissionID uuid.UUID) error {
	query := `
		DELETE FROM role_permissions
		WHERE role_id = $1 AND permission_id = $2
	`
	_, err := r.db.Exec(ctx, query, roleID, permissionID)
	return err
}

func (r *rolePermissionRepo) ReplaceForRole(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}

	if len(permissionIDs) > 0 {
		query := `
			INSERT INTO role_permissions (id, role_id, permission_id, created_at)
			SELECT gen_random_uuid(), $1, unnest($2::uuid[]), NOW()
		`
		if _, err := tx.Exec(ctx, query, roleID, permissionIDs); err != nil {
			return fmt.Errorf("failed to insert role permissions: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *rolePermissionRepo) ListByRole(ctx context.Context, roleID uuid.UUID) ([]*models.RolePermission, error) {
	query := `
		SELECT id, role_id, permission_id, created_at
		FROM role_permissions
		WHERE role_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rolePermissions []*models.RolePermission
	for rows.Next() {
		rolePermission := &models.RolePermission{}
		if err := rows.Scan(&rolePermission.ID, &rolePermission.RoleID, &rolePermission.PermissionID, &rolePermission.CreatedAt); err != nil {
			return nil, err
		}
		rolePermissions = append(rolePermissions, rolePermission)
	}
	return rolePermissions, rows.Err()
}

func (r *rolePermissionRepo) GetCodesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT DISTINCT p.code
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN user_roles ur ON ur.role_id = rp.role_id
		WHERE ur.user_id = $1
		ORDER BY p.code ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
