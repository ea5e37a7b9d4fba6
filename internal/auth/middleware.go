package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"opsconsole-backend/internal/models"
)

// Context keys for storing identity data
const (
	ContextKeyUser   = "user"
	ContextKeyClaims = "claims"
)

// RequireAuth middleware checks for a valid bearer token. A store outage is
// reported as 503, never as an authentication failure.
func RequireAuth(authSvc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}

			user, claims, err := authSvc.CurrentUser(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, ErrStoreUnavailable) {
					c.Logger().Error("session store error: ", err)
					return c.JSON(http.StatusServiceUnavailable, map[string]string{
						"error": "authentication service unavailable",
					})
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "invalid or expired session",
				})
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyClaims, claims)

			return next(c)
		}
	}
}

// TokenFromRequest extracts the bearer token from the Authorization header.
func TokenFromRequest(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// UserFromContext retrieves the authenticated user from the context
func UserFromContext(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// ClaimsFromContext retrieves the validated token claims from the context
func ClaimsFromContext(c echo.Context) *Claims {
	claims, ok := c.Get(ContextKeyClaims).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
