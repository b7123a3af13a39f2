package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
)

// RequireRole enforces role-based access control. The stored role is looked
// up on every request, so a role change takes effect on the caller's very
// next call. Composes after Auth; a missing email claim means Auth never
// ran and is treated as 401.
func RequireRole(users ports.UserRepository, role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(ContextEmailKey).(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := users.FindByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, "forbidden")
				}
				return err
			}
			if user.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}

			return next(c)
		}
	}
}
