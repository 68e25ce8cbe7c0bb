package middleware

import (
	"github.com/labstack/echo/v4"
)

const (
	apiCSP = "default-src 'none'; frame-ancestors 'none'"
	// The Swagger UI page loads its bundle and stylesheet from unpkg.
	docsCSP = "default-src 'none'; script-src 'self' 'unsafe-inline' https://unpkg.com; " +
		"style-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data: https://unpkg.com; " +
		"connect-src 'self'; frame-ancestors 'none'"
)

// SecurityHeaders sets hardening headers on every response. Routes listed in
// htmlPaths get a CSP that lets the API docs page run.
func SecurityHeaders(htmlPaths ...string) echo.MiddlewareFunc {
	html := make(map[string]bool, len(htmlPaths))
	for _, p := range htmlPaths {
		html[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			if html[c.Request().URL.Path] {
				h.Set("Content-Security-Policy", docsCSP)
			} else {
				h.Set("Content-Security-Policy", apiCSP)
				// Patient records must not sit in shared caches.
				h.Set("Cache-Control", "no-store")
			}
			return next(c)
		}
	}
}
