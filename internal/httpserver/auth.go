package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/academic_records/internal/logging"
	"github.com/Skotchmaster/academic_records/internal/middleware"
	"github.com/Skotchmaster/academic_records/internal/service"
	"github.com/Skotchmaster/academic_records/internal/transport"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Register(ctx, service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		RoleName: req.RoleName,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, transport.RegisterResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   res.Token,
		User:    res.User,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   res.Token,
		User: transport.LoginUser{
			ID:       res.User.ID,
			FullName: res.User.FullName,
			Email:    res.User.Email,
			Role:     res.User.RoleName,
		},
	})
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
	}

	view, err := h.Svc.Profile(c.Request().Context(), claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, transport.ProfileResponse{
		Success:   true,
		User:      *view,
		TokenRole: claims.RoleName,
	})
}
