package middleware

import (
	"net/http"

	"marketplace/internal/domain/entity"
	"marketplace/internal/infrastructure/memory"

	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "session_id"
	identityKey   = "identity"
)

type AuthMiddleware struct {
	backend *memory.Backend
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(backend *memory.Backend) *AuthMiddleware {
	return &AuthMiddleware{backend: backend}
}

// Authenticate resolves the session cookie into an identity and rejects the
// request when there is none.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		identity, ok := m.backend.SessionUser(cookie.Value)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Session expired")
		}

		c.Set(identityKey, identity)
		return next(c)
	}
}

// RequireRole must run after Authenticate.
func RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := Identity(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if identity.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient role")
			}
			return next(c)
		}
	}
}

// Identity returns the identity set by Authenticate.
func Identity(c echo.Context) (entity.Identity, bool) {
	identity, ok := c.Get(identityKey).(entity.Identity)
	return identity, ok
}
