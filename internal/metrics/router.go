package metrics

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

func ConfigureRouter(handler *echo.Echo) {
	handler.HideBanner = true
	handler.HidePort = true
	handler.GET("/metrics", echoprometheus.NewHandler())
}

// Middleware records request count, latency and size for every API route.
func Middleware(subsystem string) echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware(subsystem)
}
