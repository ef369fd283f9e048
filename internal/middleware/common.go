package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"
)

// Common is the stack every route gets. The context timeout gives each request
// a deadline that store calls and hashing observe.
func Common(requestTimeout time.Duration) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
		ecM.Secure(),
		ecM.ContextTimeout(requestTimeout),
	}
}
