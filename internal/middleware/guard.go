package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Skotchmaster/academic_records/internal/logging"
	"github.com/Skotchmaster/academic_records/internal/policy"
	"github.com/Skotchmaster/academic_records/internal/repo"
	"github.com/Skotchmaster/academic_records/internal/tokens"
	"github.com/labstack/echo/v4"
)

const (
	CtxClaims = "claims"
	CtxRole   = "current_role"
)

type claimsKey struct{}

type TokenVerifier interface {
	Verify(token string) (*tokens.Claims, error)
}

type RoleLookup interface {
	FindRoleNameForUserID(ctx context.Context, id uint) (string, error)
}

// Guard authenticates bearer tokens and authorizes by the caller's current
// role. It only reads; nothing is written on any path.
type Guard struct {
	Tokens TokenVerifier
	Roles  RoleLookup
}

func NewGuard(tv TokenVerifier, roles RoleLookup) *Guard {
	return &Guard{Tokens: tv, Roles: roles}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("mw", "require_auth")

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			l.Warn("auth_failed", "status", 401, "reason", "missing_token")
			return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
		}

		claims, err := g.Tokens.Verify(raw)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, tokens.ErrExpired) {
				reason = "expired_token"
			}
			l.Warn("auth_failed", "status", 401, "reason", reason)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token.")
		}

		c.Set(CtxClaims, claims)
		ctx = context.WithValue(ctx, claimsKey{}, claims)
		ctx = logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", claims.UserID))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole must be mounted after RequireAuth. The decision uses the role
// stored right now, never the one inside the token.
func (g *Guard) RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := policy.NewRoleSet(roles...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("mw", "require_role")

			claims, ok := ClaimsFrom(c)
			if !ok {
				l.Warn("authz_failed", "status", 401, "reason", "no_identity")
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}

			current, err := g.Roles.FindRoleNameForUserID(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					l.Warn("authz_failed", "status", 404, "reason", "user_not_found")
					return echo.NewHTTPError(http.StatusNotFound, "User not found.")
				}
				l.Error("authz_failed", "status", 503, "error", err)
				return echo.NewHTTPError(http.StatusServiceUnavailable, "Authorization error.").SetInternal(err)
			}

			if !policy.IsAllowed(current, allowed) {
				l.Warn("authz_failed", "status", 403, "reason", "role_not_allowed", "role_name", current)
				return echo.NewHTTPError(http.StatusForbidden,
					"Access denied. Requires one of these roles: "+allowed.String())
			}

			c.Set(CtxRole, current)
			return next(c)
		}
	}
}

func ClaimsFrom(c echo.Context) (*tokens.Claims, bool) {
	claims, ok := c.Get(CtxClaims).(*tokens.Claims)
	return claims, ok && claims != nil
}

func ClaimsFromContext(ctx context.Context) (*tokens.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*tokens.Claims)
	return claims, ok && claims != nil
}

// CurrentRole is the role RequireRole read from the store for this request.
func CurrentRole(c echo.Context) string {
	role, _ := c.Get(CtxRole).(string)
	return role
}
