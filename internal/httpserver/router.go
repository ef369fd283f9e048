package httpserver

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/academic_records/internal/middleware"
	"github.com/Skotchmaster/academic_records/internal/models"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler  *AuthHTTP
	StaffHandler *StaffHTTP
	Guard        *middleware.Guard
	Ready        func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/profile", d.AuthHandler.Profile, d.Guard.RequireAuth)

	registrar := e.Group("/registrar", d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleRegistrar, models.RoleAdmin))
	registrar.GET("/overview", d.StaffHandler.RegistrarOverview)

	admin := e.Group("/admin", d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleAdmin))
	admin.GET("/roles", d.StaffHandler.ListRoles)
}
