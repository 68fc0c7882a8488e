package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths are the routes reachable without a session.
var publicPaths = map[string]bool{
	"/health":       true,
	"/health/db":    true,
	"/api/v1/about": true,
	"/auth/signup":  true,
	"/auth/login":   true,
}

// AuthSkipper matches on the registered route path, so path parameters do
// not widen the public set.
func AuthSkipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}
