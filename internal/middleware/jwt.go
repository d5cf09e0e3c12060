package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"navhub/internal/common"

	"github.com/MicahParks/keyfunc/v2"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NewJWTConfig builds the echo-jwt configuration for externally issued
// tokens. A JWKS URL takes precedence so key rotation at the identity
// provider needs no redeploy; the shared HS256 secret remains the
// single-tenant fallback.
func NewJWTConfig(jwtSecret, jwksURL string) (echojwt.Config, error) {
	cfg := echojwt.Config{
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}

	if jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshRateLimit:  5 * time.Minute,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				log.Printf("WARN: JWKS refresh failed: %v", err)
			},
		})
		if err != nil {
			return echojwt.Config{}, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
		}
		cfg.KeyFunc = jwks.Keyfunc
		return cfg, nil
	}

	if jwtSecret == "" {
		return echojwt.Config{}, fmt.Errorf("either JWT_SECRET or JWKS_URL must be configured")
	}
	cfg.SigningKey = []byte(jwtSecret)
	return cfg, nil
}

// Principal extracts the authenticated user from the verified token and
// places it on the request context. Runs after echo-jwt.
func Principal() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing sub claim in token")
			}

			userID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid sub claim format")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
