package handlers

import (
	"errors"
	"net/http"

	"navhub/internal/apperrors"
	"navhub/internal/common"
	"navhub/internal/services"

	"github.com/labstack/echo/v4"
)

// BrandingHandlers handles sidebar logo upload and retrieval
type BrandingHandlers struct {
	brandingService services.BrandingService
}

// NewBrandingHandlers creates a new branding handlers instance
func NewBrandingHandlers(brandingService services.BrandingService) *BrandingHandlers {
	return &BrandingHandlers{
		brandingService: brandingService,
	}
}

// UploadLogo accepts a multipart "logo" file and stores it in object storage
func (h *BrandingHandlers) UploadLogo(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return common.SendValidationError(c, "logo", "multipart file field 'logo' is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.brandingService.UploadLogo(ctx, userID, src, fileHeader.Size, contentType); err != nil {
		var valErr *apperrors.ValidationError
		if errors.As(err, &valErr) {
			return common.SendValidationError(c, valErr.Field, valErr.Message)
		}
		return common.SendServerError(c, "Failed to store logo")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Logo uploaded successfully",
	})
}

// GetLogo returns a presigned URL for the current logo
func (h *BrandingHandlers) GetLogo(c echo.Context) error {
	url, err := h.brandingService.LogoURL(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to resolve logo URL")
	}
	if url == "" {
		return common.SendNotFoundError(c, "Logo")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"logo_url": url,
	})
}
