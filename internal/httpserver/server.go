package httpserver

import (
	"log/slog"
	"time"

	"github.com/Skotchmaster/academic_records/internal/middleware"
	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"
)

func New(d *Deps, logger *slog.Logger, requestTimeout time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Pre(ecM.RemoveTrailingSlash())
	e.Use(middleware.Common(requestTimeout)...)
	e.Use(middleware.RequestLogger(logger))

	Register(e, d)
	return e
}
