package auth

import (
	"crypto/subtle"
	"log/slog"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"retail.GO/config"
)

// Middleware returns the /api auth middleware selected by AUTH_TYPE:
// "basic" (API_USER/API_PASS), "key" (API_KEY) or "none" (default).
func Middleware() echo.MiddlewareFunc {
	skipper := buildSkipper()
	switch strings.ToLower(os.Getenv("AUTH_TYPE")) {
	case "basic":
		return basicAuth(skipper)
	case "key":
		return keyAuth(skipper)
	case "", "none":
		return noAuth
	default:
		slog.Warn("unknown AUTH_TYPE, API left open", "auth_type", os.Getenv("AUTH_TYPE"))
		return noAuth
	}
}

func noAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func basicAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	user, pass := os.Getenv("API_USER"), os.Getenv("API_PASS")
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			return equal(username, user) && equal(password, pass), nil
		},
		Skipper: skipper,
	})
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return apiKey != "" && equal(key, apiKey), nil
		},
		Skipper: skipper,
	})
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
