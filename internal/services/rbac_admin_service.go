package services

import (
	"context"
	"log"
	"strings"

	"navhub/internal/apperrors"
	"navhub/internal/models"
	"navhub/internal/repositories"

	"github.com/google/uuid"
)

// RBACAdminService manages roles, permission definitions and grants. Grant
// changes invalidate the affected users' memoized permission sets so the
// next navigation request resolves against current authority data.
type RBACAdminService interface {
	CreateRole(ctx context.Context, actor uuid.UUID, name string, description *string) (*models.Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (*models.Role, error)
	ListRoles(ctx context.Context) ([]*models.Role, error)
	UpdateRole(ctx context.Context, actor uuid.UUID, role *models.Role) error
	DeleteRole(ctx context.Context, actor uuid.UUID, id uuid.UUID) error

	CreatePermission(ctx context.Context, actor uuid.UUID, code string, description *string) (*models.Permission, error)
	ListPermissions(ctx context.Context) ([]*models.Permission, error)
	UpdatePermissionDescription(ctx context.Context, actor uuid.UUID, id uuid.UUID, description *string) error

	SetRolePermissions(ctx context.Context, actor uuid.UUID, roleID uuid.UUID, permissionIDs []uuid.UUID) error
	ListRolePermissions(ctx context.Context, roleID uuid.UUID) ([]*models.Permission, error)

	GrantRole(ctx context.Context, actor, userID, roleID uuid.UUID) error
	RevokeRole(ctx context.Context, actor, userID, roleID uuid.UUID) error
	ListUserRoles(ctx context.Context, userID uuid.UUID) ([]*models.Role, error)
}

type rbacAdminService struct {
	roleRepo           repositories.RoleRepository
	permissionRepo     repositories.PermissionRepository
	rolePermissionRepo repositories.RolePermissionRepository
	userRoleRepo       repositories.UserRoleRepository
	rbac               RBACService
	audit              AuditLogsService
}

func NewRBACAdminService(
	roleRepo repositories.RoleRepository,
	permissionRepo repositories.PermissionRepository,
	rolePermissionRepo repositories.RolePermissionRepository,
	userRoleRepo repositories.UserRoleRepository,
	rbac RBACService,
	audit AuditLogsService,
) RBACAdminService {
	return &rbacAdminService{
		roleRepo:           roleRepo,
		permissionRepo:     permissionRepo,
		rolePermissionRepo: rolePermissionRepo,
		userRoleRepo:       userRoleRepo,
		rbac:               rbac,
		audit:              audit,
	}
}

func (s *rbacAdminService) CreateRole(ctx context.Context, actor uuid.UUID, name string, description *string) (*models.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "role name is required")
	}

	role := &models.Role{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, models.AuditRoleCreate, "role", role.ID.String(), models.JSONB{"name": role.Name})
	return role, nil
}

func (s *rbacAdminService) GetRole(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	return s.roleRepo.GetByID(ctx, id)
}

func (s *rbacAdminService) ListRoles(ctx context.Context) ([]*models.Role, error) {
	return s.roleRepo.List(ctx)
}

func (s *rbacAdminService) UpdateRole(ctx context.Context, actor uuid.UUID, role *models.Role) error {
	role.Name = strings.TrimSpace(role.Name)
	if role.Name == "" {
		return apperrors.NewValidationError("name", "role name is required")
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, models.AuditRoleUpdate, "role", role.ID.String(), models.JSONB{"name": role.Name})
	return nil
}

func (s *rbacAdminService) DeleteRole(ctx context.Context, actor uuid.UUID, id uuid.UUID) error {
	// Capture affected users before the cascade removes their grants.
	userIDs, listErr := s.userRoleRepo.ListUserIDsByRole(ctx, id)

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}

	if listErr != nil {
		log.Printf("WARN: could not enumerate users of deleted role %s, flushing all memoized permissions: %v", id, listErr)
		s.rbac.InvalidateAll(ctx)
	} else {
		for _, userID := range userIDs {
			s.rbac.InvalidateUser(ctx, userID)
		}
	}

	s.recordAudit(ctx, actor, models.AuditRoleDelete, "role", id.String(), nil)
	return nil
}

func (s *rbacAdminService) CreatePermission(ctx context.Context, actor uuid.UUID, code string, description *string) (*models.Permission, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.NewValidationError("code", "permission code is required")
	}
	if strings.ContainsAny(code, " \t\n") {
		return nil, apperrors.NewValidationError("code", "permission code must not contain whitespace")
	}

	perm := &models.Permission{
		ID:          uuid.New(),
		Code:        code,
		Description: description,
	}
	if err := s.permissionRepo.Create(ctx, perm); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, models.AuditPermCreate, "permission", perm.ID.String(), models.JSONB{"code": perm.Code})
	return perm, nil
}

func (s *rbacAdminService) ListPermissions(ctx context.Context) ([]*models.Permission, error) {
	return s.permissionRepo.List(ctx)
}

// UpdatePermissionDescription is the only permission mutation: codes are
// referenced verbatim by submenu records, so they stay immutable.
func (s *rbacAdminService) UpdatePermissionDescription(ctx context.Context, actor uuid.UUID, id uuid.UUID, description *string) error {
	if err := s.permissionRepo.UpdateDescription(ctx, id, description); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, models.AuditPermUpdate, "permission", id.String(), nil)
	return nil
}

func (s *rbacAdminService) SetRolePermissions(ctx context.Context, actor uuid.UUID, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		return err
	}

	if err := s.rolePermissionRepo.ReplaceForRole(ctx, roleID, permissionIDs); err != nil {
		return err
	}

	userIDs, err := s.userRoleRepo.ListUserIDsByRole(ctx, roleID)
	if err != nil {
		log.Printf("WARN: could not enumerate users of role %s, flushing all memoized permissions: %v", roleID, err)
		s.rbac.InvalidateAll(ctx)
	} else {
		for _, userID := range userIDs {
			s.rbac.InvalidateUser(ctx, userID)
		}
	}

	ids := make([]string, 0, len(permissionIDs))
	for _, pid := range permissionIDs {
		ids = append(ids, pid.String())
	}
	s.recordAudit(ctx, actor, models.AuditRolePermsSet, "role", roleID.String(), models.JSONB{"permission_ids": ids})
	return nil
}

func (s *rbacAdminService) ListRolePermissions(ctx context.Context, roleID uuid.UUID) ([]*models.Permission, error) {
	grants, err := s.rolePermissionRepo.ListByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	perms := make([]*models.Permission, 0, len(grants))
	for _, grant := range grants {
		perm, err := s.permissionRepo.GetByID(ctx, grant.PermissionID)
		if err != nil {
			return nil, err
		}
		perms = append(perms, perm)
	}
	return perms, nil
}

func (s *rbacAdminService) GrantRole(ctx context.Context, actor, userID, roleID uuid.UUID) error {
	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		return err
	}

	if err := s.userRoleRepo.Grant(ctx, userID, roleID); err != nil {
		return err
	}

	s.rbac.InvalidateUser(ctx, userID)
	s.recordAudit(ctx, actor, models.AuditUserRoleGrant, "user_role", userID.String(), models.JSONB{"role_id": roleID.String()})
	return nil
}

func (s *rbacAdminService) RevokeRole(ctx context.Context, actor, userID, roleID uuid.UUID) error {
	if err := s.userRoleRepo.Revoke(ctx, userID, roleID); err != nil {
		return err
	}

	s.rbac.InvalidateUser(ctx, userID)
	s.recordAudit(ctx, actor, models.AuditUserRoleRevoke, "user_role", userID.String(), models.JSONB{"role_id": roleID.String()})
	return nil
}

func (s *rbacAdminService) ListUserRoles(ctx context.Context, userID uuid.UUID) ([]*models.Role, error) {
	grants, err := s.userRoleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	roles := make([]*models.Role, 0, len(grants))
	for _, grant := range grants {
		role, err := s.roleRepo.GetByID(ctx, grant.RoleID)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (s *rbacAdminService) recordAudit(ctx context.Context, actor uuid.UUID, action, entityType, entityID string, details models.JSONB) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, &actor, action, entityType, entityID, details); err != nil {
		log.Printf("WARN: failed to record audit entry for %s: %v", action, err)
	}
}
