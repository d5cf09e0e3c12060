package repositories

import (
	"context"
	"errors"

	"navhub/internal/apperrors"
	"navhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PermissionRepository interface {
	Create(ctx context.Context, permission *models.Permission) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Permission, error)
	GetByCode(ctx context.Context, code string) (*models.Permission, error)
	// UpdateDescription is the only mutation: codes are immutable so stored
	// submenu references never dangle.
	UpdateDescription(ctx context.Context, id uuid.UUID, description *string) error
	List(ctx context.Context) ([]*models.Permission, error)
}

type permissionRepo struct {
	db Database
}

func NewPermissionRepo(db Database) PermissionRepository {
	return &permissionRepo{db: db}
}

func (r *permissionRepo) Create(ctx context.Context, permission *models.Permission) error {
	query := `
		INSERT INTO permissions (id, code, description, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (code) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, permission.ID, permission.Code, permission.Description)
	return err
}

func (r *permissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Permission, error) {
	permission := &models.Permission{}
	query := `
		SELECT id, code, description, created_at
		FROM permissions
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&permission.ID, &permission.Code, &permission.Description, &permission.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return permission, nil
}

func (r *permissionRepo) GetByCode(ctx context.Context, code string) (*models.Permission, error) {
	permission := &models.Permission{}
	query := `
		SELECT id, code, description, created_at
		FROM permissions
		WHERE code = $1
	`
	err := r.db.QueryRow(ctx, query, code).Scan(&permission.ID, &permission.Code, &permission.Description, &permission.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return permission, nil
}

func (r *permissionRepo) UpdateDescription(ctx context.Context, id uuid.UUID, description *string) error {
	query := `
		UPDATE permissions
		SET description = $1
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, description, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *permissionRepo) List(ctx context.Context) ([]*models.Permission, error) {
	query := `
		SELECT id, code, description, created_at
		FROM permissions
		ORDER BY code ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []*models.Permission
	for rows.Next() {
		permission := &models.Permission{}
		if err := rows.Scan(&permission.ID, &permission.Code, &permission.Description, &permission.CreatedAt); err != nil {
			return nil, err
		}
		permissions = append(permissions, permission)
	}
	return permissions, rows.Err()
}
