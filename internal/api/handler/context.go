package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/core/ports"
)

// ctxPrincipal extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: username must be
// non-empty (presence proves the middleware ran).
func ctxPrincipal(c echo.Context) (ports.Principal, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return ports.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roles, _ := c.Get("roles").([]string)
	return ports.Principal{Username: username, Roles: roles}, nil
}
