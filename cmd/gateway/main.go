package main

import (
	"net/http"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskboard/internal/config"
	"taskboard/internal/gateway"
)

// The gateway serves the same origin the web client is deployed on: page
// routes behind the cookie guard, and /api/* proxied to the backend.
func main() {
	cfg := config.Load()
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "gateway"})

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	proxy := gateway.NewProxy(cfg.APIBaseURL, logger)
	e.Any("/api/*", proxy.Handle)

	pages := e.Group("", gateway.Guard())
	for _, route := range []string{"/", "/login", "/register", "/todo", "/admin", "/profile"} {
		route := route
		pages.GET(route, func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"view": route})
		})
	}

	logger.Info("gateway listening", "port", cfg.GatewayPort, "backend", cfg.APIBaseURL)
	if err := e.Start(":" + cfg.GatewayPort); err != nil && err != http.ErrServerClosed {
		logger.Fatal("gateway start", "err", err)
	}
}
