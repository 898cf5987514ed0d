package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// NoCache instructs the browser not to cache authenticated pages, so a
// back-navigation after logout cannot show a stale conversation.
func NoCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header := c.Response().Header()
			header.Set("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "Fri, 01 Jan 1990 00:00:00 GMT")
		}
		return next(c)
	}
}
