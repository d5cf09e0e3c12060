package services

import (
	"context"
	"fmt"
	"log"

	"navhub/internal/caching"
	"navhub/internal/navigation"
	"navhub/internal/store"

	"github.com/google/uuid"
)

// NavigationResponse is the personalized sidebar payload. Version echoes the
// node-store revision the projection was computed against so clients can
// detect staleness across refreshes.
type NavigationResponse struct {
	Menus   navigation.Projection `json:"menus"`
	LogoURL string                `json:"logo_url,omitempty"`
	Version uint64                `json:"version"`
}

type NavigationService interface {
	GetNavigation(ctx context.Context, userID uuid.UUID) (*NavigationResponse, error)
	CacheStats() caching.ProjectionCacheStats
}

type navigationService struct {
	rbac      RBACService
	nodeStore store.NodeStore
	projCache *caching.ProjectionCache
	policy    navigation.Policy
	branding  BrandingService
}

// NewNavigationService wires the resolver, node store and projection cache
// together. branding may be nil when no object storage is configured.
func NewNavigationService(rbac RBACService, nodeStore store.NodeStore, projCache *caching.ProjectionCache, policy navigation.Policy, branding BrandingService) NavigationService {
	return &navigationService{
		rbac:      rbac,
		nodeStore: nodeStore,
		projCache: projCache,
		policy:    policy,
		branding:  branding,
	}
}

func (s *navigationService) GetNavigation(ctx context.Context, userID uuid.UUID) (*NavigationResponse, error) {
	perms, err := s.rbac.ResolvePermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap, err := s.nodeStore.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load navigation nodes: %w", err)
	}

	fingerprint := caching.Fingerprint(perms)
	projection, err := s.projCache.GetOrCompute(fingerprint, snap.Version, func() (navigation.Projection, error) {
		return navigation.Project(snap.Menus, snap.SubmenusByMenu, perms, s.policy), nil
	})
	if err != nil {
		return nil, err
	}

	resp := &NavigationResponse{
		Menus:   projection,
		Version: snap.Version,
	}

	// Branding is decorative; a storage hiccup must not take the sidebar down.
	if s.branding != nil {
		logoURL, err := s.branding.LogoURL(ctx)
		if err != nil {
			log.Printf("WARN: branding logo lookup failed: %v", err)
		} else {
			resp.LogoURL = logoURL
		}
	}

	return resp, nil
}

func (s *navigationService) CacheStats() caching.ProjectionCacheStats {
	return s.projCache.Stats()
}
