package repositories

import (
	"context"

	"navhub/internal/models"

	"github.com/google/uuid"
)

type UserRoleRepository interface {
	Grant(ctx context.Context, userID, roleID uuid.UUID) error
	Revoke(ctx context.Context, userID, roleID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserRole, error)
	// ListUserIDsByRole feeds cache invalidation when a role's permission
	// set changes.
	ListUserIDsByRole(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error)
}

type userRoleRepo struct {
	db Database
}

func NewUserRoleRepo(db Database) UserRoleRepository {
	return &userRoleRepo{db: db}
}

func (r *userRoleRepo) Grant(ctx context.Context, userID, roleID uuid.UUID) error {
	query := `
		INSERT INTO user_roles (id, user_id, role_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, role_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), userID, roleID)
	return err
}

func (r *userRoleRepo) Revoke(ctx context.Context, userID, roleID uuid.UUID) error {
	query := `
		DELETE FROM user_roles
		WHERE user_id = $1 AND role_id = $2
	`
	_, err := r.db.Exec(ctx, query, userID, roleID)
	return err
}

func (r *userRoleRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserRole, error) {
	query := `
		SELECT id, user_id, role_id, created_at
		FROM user_roles
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userRoles []*models.UserRole
	for rows.Next() {
		userRole := &models.UserRole{}
		if err := rows.Scan(&userRole.ID, &userRole.UserID, &userRole.RoleID, &userRole.CreatedAt); err != nil {
			return nil, err
		}
		userRoles = append(userRoles, userRole)
	}
	return userRoles, rows.Err()
}

func (r *userRoleRepo) ListUserIDsByRole(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT user_id
		FROM user_roles
		WHERE role_id = $1
	`
	rows, err := r.db.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}
