package httpapp

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/chorus-tre/authui/internal/http/handlers"
	"github.com/chorus-tre/authui/internal/metrics"
	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const maxRequestIDLength = 128

// requestIDMiddleware keeps a sane inbound X-Request-ID or mints one.
func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			rid := strings.TrimSpace(c.Request().Header.Get(echo.HeaderXRequestID))
			if rid == "" || len(rid) > maxRequestIDLength {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			c.Set(handlers.ContextKeyRequestID, rid)
			return next(c)
		}
	}
}

// instrument wraps h with access logging and request counting.
func instrument(h http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(h, w, r)

		route := routeLabel(r.URL.Path)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(m.Code)).Inc()
		logger.Info("http request",
			"request_id", w.Header().Get(echo.HeaderXRequestID),
			"method", r.Method,
			"route", route,
			"status", m.Code,
			"bytes", m.Written,
			"duration_ms", m.Duration.Milliseconds(),
		)
	})
}

// routeLabel bounds metric cardinality to the known routes.
func routeLabel(path string) string {
	switch path {
	case "/healthz", loginPrefix, loginPrefix + "/", handlers.DevAuthPrefix, handlers.DevAuthPrefix + "/":
		return path
	default:
		return "other"
	}
}
