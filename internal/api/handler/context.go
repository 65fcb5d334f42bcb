package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/postboard/internal/api/middleware"
	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
)

// ctxUserID returns the user id injected by the RequireAuth middleware.
// A zero id means the route was registered without the gate.
func ctxUserID(c echo.Context) (int64, error) {
	id, _ := c.Get(middleware.UserIDKey).(int64)
	if id == 0 {
		return 0, domain.ErrUnauthenticated
	}
	return id, nil
}

func ctxSession(c echo.Context) ports.Session {
	return middleware.CurrentSession(c)
}
