package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key holding the authenticated user id.
const UserIDKey = "userID"

// RequireAuth rejects requests whose session carries no user with 401 before
// the handler runs. It never modifies the session.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CurrentSession(c).UserID()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			c.Set(UserIDKey, id)
			return next(c)
		}
	}
}
