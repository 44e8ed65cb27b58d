package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
)

func isHX(c *echo.Context) bool {
	if c == nil || c.Request() == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(c.Request().Header.Get("HX-Request")), "true")
}

// setHXRedirect asks htmx to perform a full page navigation to location.
func setHXRedirect(c *echo.Context, location string) {
	if c == nil {
		return
	}
	c.Response().Header().Set("HX-Redirect", location)
}

// addVary merges values into the Vary header, case-insensitively and
// without duplicates. A "*" anywhere collapses the header to "*".
func addVary(c *echo.Context, values ...string) {
	if c == nil || len(values) == 0 {
		return
	}

	header := c.Response().Header()
	tokens := make([]string, 0, len(values)+2)
	for _, line := range header.Values(echo.HeaderVary) {
		tokens = append(tokens, strings.Split(line, ",")...)
	}
	tokens = append(tokens, values...)

	seen := make(map[string]struct{}, len(tokens))
	combined := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if token == "*" {
			header.Set(echo.HeaderVary, "*")
			return
		}
		canonical := http.CanonicalHeaderKey(token)
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		combined = append(combined, canonical)
	}

	if len(combined) == 0 {
		return
	}
	header.Set(echo.HeaderVary, strings.Join(combined, ", "))
}
