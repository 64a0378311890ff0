// Package httplog holds the request logging and client IP setup shared by
// the feed site and the articles API.
package httplog

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestLogger logs one line per request through the echo logger, in the
// form "GET /path -> 200 (1.2ms)".
func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	})
}

// ClientIP trusts X-Forwarded-For only from loopback and private-network
// proxies.
func ClientIP() echo.IPExtractor {
	return echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)
}

// Install applies the shared logging setup to e.
func Install(e *echo.Echo) {
	e.IPExtractor = ClientIP()
	e.Use(RequestLogger())
}
