package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"navhub/internal/apperrors"
	"navhub/internal/caching"
	"navhub/internal/models"

	"github.com/google/uuid"
)

const (
	brandingBucket   = "navhub-branding"
	brandingLogoKey  = "logo"
	logoMaxSizeBytes = 2 << 20 // 2 MiB
	logoURLExpiry    = 15 * time.Minute
	logoURLCacheTTL  = 10 * time.Minute
	logoURLCacheKey  = "navhub:branding:logo_url"
)

var logoContentTypes = map[string]struct{}{
	"image/png":     {},
	"image/jpeg":    {},
	"image/svg+xml": {},
}

// BrandingService stores the sidebar logo in object storage and hands out
// short-lived presigned URLs for it. URLs are memoized in Redis for less
// than their validity window so the hot path stays off MinIO.
type BrandingService interface {
	UploadLogo(ctx context.Context, actor uuid.UUID, reader io.Reader, size int64, contentType string) error
	LogoURL(ctx context.Context) (string, error)
	EnsureBucket(ctx context.Context) error
}

type brandingService struct {
	storage MinioService
	cache   caching.CacheService
	audit   AuditLogsService
}

func NewBrandingService(storage MinioService, cache caching.CacheService, audit AuditLogsService) BrandingService {
	return &brandingService{
		storage: storage,
		cache:   cache,
		audit:   audit,
	}
}

func (s *brandingService) EnsureBucket(ctx context.Context) error {
	return s.storage.EnsureBucketExists(ctx, brandingBucket)
}

func (s *brandingService) UploadLogo(ctx context.Context, actor uuid.UUID, reader io.Reader, size int64, contentType string) error {
	if _, ok := logoContentTypes[contentType]; !ok {
		return apperrors.NewValidationError("logo", fmt.Sprintf("unsupported content type %q, expected image/png, image/jpeg or image/svg+xml", contentType))
	}
	if size <= 0 {
		return apperrors.NewValidationError("logo", "logo file is empty")
	}
	if size > logoMaxSizeBytes {
		return apperrors.NewValidationError("logo", fmt.Sprintf("logo exceeds maximum size of %d bytes", logoMaxSizeBytes))
	}

	if err := s.storage.UploadObject(ctx, brandingBucket, brandingLogoKey, reader, size, contentType); err != nil {
		return fmt.Errorf("failed to upload logo: %w", err)
	}

	// Drop the memoized URL so the next navigation call presigns the new object.
	if s.cache != nil {
		if err := s.cache.Delete(ctx, logoURLCacheKey); err != nil {
			log.Printf("WARN: failed to drop cached logo URL: %v", err)
		}
	}

	if s.audit != nil {
		details := models.JSONB{"content_type": contentType, "size_bytes": size}
		if err := s.audit.Record(ctx, &actor, models.AuditLogoUpload, "branding", brandingLogoKey, details); err != nil {
			log.Printf("WARN: failed to record audit entry for %s: %v", models.AuditLogoUpload, err)
		}
	}

	return nil
}

// LogoURL returns a presigned URL for the current logo, or "" when no logo
// has been uploaded yet.
func (s *brandingService) LogoURL(ctx context.Context) (string, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetString(ctx, logoURLCacheKey); err != nil {
			log.Printf("WARN: logo URL cache read failed: %v", err)
		} else if cached != "" {
			return cached, nil
		}
	}

	exists, err := s.storage.StatObject(ctx, brandingBucket, brandingLogoKey)
	if err != nil {
		return "", fmt.Errorf("failed to stat logo object: %w", err)
	}
	if !exists {
		return "", nil
	}

	url, err := s.storage.GetPresignedURL(ctx, brandingBucket, brandingLogoKey, logoURLExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign logo URL: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetString(ctx, logoURLCacheKey, url, logoURLCacheTTL); err != nil {
			log.Printf("WARN: logo URL cache write failed: %v", err)
		}
	}

	return url, nil
}
