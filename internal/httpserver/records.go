package httpserver

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/academic_records/internal/logging"
	"github.com/Skotchmaster/academic_records/internal/middleware"
	"github.com/Skotchmaster/academic_records/internal/models"
	"github.com/Skotchmaster/academic_records/internal/transport"
	"github.com/labstack/echo/v4"
)

type RoleLister interface {
	ListRoles(ctx context.Context) ([]models.Role, error)
}

// StaffHTTP serves the role-restricted endpoints.
type StaffHTTP struct {
	Roles RoleLister
}

func (h *StaffHTTP) RegistrarOverview(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	return c.JSON(http.StatusOK, transport.OverviewResponse{
		Success:  true,
		UserID:   claims.UserID,
		Email:    claims.Email,
		RoleName: middleware.CurrentRole(c),
	})
}

func (h *StaffHTTP) ListRoles(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_list_roles")

	roles, err := h.Roles.ListRoles(ctx)
	if err != nil {
		l.Error("list_roles_failed", "status", 503, "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable, retry later")
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.RoleName)
	}
	return c.JSON(http.StatusOK, transport.RoleListResponse{Success: true, Roles: names})
}
