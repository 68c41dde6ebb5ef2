package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/api/metrics"
	"github.com/mercatto/catalog-api/internal/core/domain"
)

// RequireRank gates a route on the caller's effective rank. The caller's
// roles come from the "roles" context key set by Auth; a caller whose
// roles do not rank at least minRank gets a 403.
func RequireRank(minRank int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]string)
			rank, err := domain.Rank(roles)
			if err != nil || rank < minRank {
				metrics.AuthzDenialsTotal.Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
