package gateway

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	"taskboard/internal/session"
)

var (
	publicPaths    = []string{"/login", "/register"}
	protectedPaths = []string{"/todo", "/admin", "/profile"}
)

// Guard is the route-guard middleware for page routes. It inspects the
// auth-token cookie and redirects: anonymous visitors away from protected
// views, logged-in visitors away from the auth forms, and everyone to the
// view matching their role. The role is read from the token without
// signature verification; it only picks a landing page, the backend still
// authorizes every API call.
func Guard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			token := ""
			if cookie, err := c.Cookie(session.CookieName); err == nil {
				token = cookie.Value
			}

			if path == "/" {
				if token == "" {
					return c.Redirect(http.StatusFound, "/login")
				}
				return c.Redirect(http.StatusFound, roleHome(token))
			}

			if token == "" && hasPrefixAny(path, protectedPaths) {
				target := "/login?redirect=" + url.QueryEscape(path)
				return c.Redirect(http.StatusFound, target)
			}

			if token != "" && hasPrefixAny(path, publicPaths) {
				return c.Redirect(http.StatusFound, roleHome(token))
			}

			// Role mismatch: admins land on /admin, everyone else on /todo.
			if token != "" {
				admin := isAdmin(token)
				if admin && strings.HasPrefix(path, "/todo") {
					return c.Redirect(http.StatusFound, "/admin")
				}
				if !admin && strings.HasPrefix(path, "/admin") {
					return c.Redirect(http.StatusFound, "/todo")
				}
			}

			return next(c)
		}
	}
}

func roleHome(token string) string {
	if isAdmin(token) {
		return "/admin"
	}
	return "/todo"
}

func isAdmin(token string) bool {
	return strings.EqualFold(auth.PeekRole(token), "admin")
}

func hasPrefixAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
