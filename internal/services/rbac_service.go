package services

import (
	"context"
	"log"
	"time"

	"navhub/internal/apperrors"
	"navhub/internal/caching"
	"navhub/internal/models"
	"navhub/internal/repositories"

	"github.com/google/uuid"
)

// RBACService resolves the effective permission set of a principal across
// all of its roles. Resolution failures surface as AuthorityUnavailableError
// so callers can distinguish "no grants" from "could not determine grants";
// an error never degrades into an empty set.
type RBACService interface {
	ResolvePermissions(ctx context.Context, userID uuid.UUID) (models.PermissionSet, error)
	UserHasPermission(ctx context.Context, userID uuid.UUID, code string) (bool, error)

	InvalidateUser(ctx context.Context, userID uuid.UUID)
	InvalidateAll(ctx context.Context)
}

type rbacService struct {
	rolePermissionRepo repositories.RolePermissionRepository
	cache              caching.CacheService
	cacheTTL           time.Duration
}

func NewRBACService(rolePermissionRepo repositories.RolePermissionRepository, cache caching.CacheService, cacheTTL time.Duration) RBACService {
	return &rbacService{
		rolePermissionRepo: rolePermissionRepo,
		cache:              cache,
		cacheTTL:           cacheTTL,
	}
}

func (s *rbacService) ResolvePermissions(ctx context.Context, userID uuid.UUID) (models.PermissionSet, error) {
	if s.cache != nil {
		codes, found, err := s.cache.GetPermissions(ctx, userID)
		if err != nil {
			log.Printf("WARN: permission cache read failed for user %s: %v", userID, err)
		} else if found {
			// Cached empty sets count: a principal with no grants is a
			// resolved answer, not a miss.
			return models.NewPermissionSet(codes...), nil
		}
	}

	codes, err := s.rolePermissionRepo.GetCodesByUser(ctx, userID)
	if err != nil {
		return nil, &apperrors.AuthorityUnavailableError{Err: err}
	}

	if s.cache != nil {
		if err := s.cache.SetPermissions(ctx, userID, codes, s.cacheTTL); err != nil {
			log.Printf("WARN: permission cache write failed for user %s: %v", userID, err)
		}
	}

	return models.NewPermissionSet(codes...), nil
}

func (s *rbacService) UserHasPermission(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	perms, err := s.ResolvePermissions(ctx, userID)
	if err != nil {
		return false, err
	}
	return perms.Has(code), nil
}

func (s *rbacService) InvalidateUser(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePermissions(ctx, userID); err != nil {
		log.Printf("WARN: permission cache invalidation failed for user %s: %v", userID, err)
	}
}

func (s *rbacService) InvalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAllPermissions(ctx); err != nil {
		log.Printf("WARN: permission cache flush failed: %v", err)
	}
}
