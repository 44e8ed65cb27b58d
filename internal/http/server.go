package httpapp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/chorus-tre/authui/internal/config"
	"github.com/chorus-tre/authui/internal/http/handlers"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
)

const loginPrefix = "/auth-ui"

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h      *handlers.Handlers
	e      *echo.Echo
	logger *slog.Logger
}

// NewEchoServer creates the login page server.
func NewEchoServer(cfg config.Config, submitter handlers.LoginSubmitter, logger *slog.Logger) (*EchoServer, error) {
	if submitter == nil {
		return nil, errors.New("login submitter is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	h := &handlers.Handlers{Submitter: submitter, HTMXScriptURL: cfg.HTMXScriptURL}
	es := &EchoServer{h: h, e: echo.New(), logger: logger}
	es.e.Logger = logger
	es.e.HTTPErrorHandler = es.httpErrorHandler
	es.e.Use(middleware.Recover())
	es.e.Use(requestIDMiddleware())
	es.registerRoutes(cfg.DevAuthEnabled)
	return es, nil
}

func (es *EchoServer) registerRoutes(devAuth bool) {
	es.e.GET("/healthz", es.h.HandleHealthz)

	es.mountLoginPage(loginPrefix)
	if devAuth {
		es.mountLoginPage(handlers.DevAuthPrefix)
	}
}

func (es *EchoServer) mountLoginPage(prefix string) {
	es.e.GET(prefix, es.h.HandleSlashRedirect)
	page := es.e.Group(prefix)
	page.GET("/", es.h.HandleLoginGet)
	page.POST("/", es.h.HandleLoginPost)
}

// Handler returns the instrumented root handler for an http.Server.
func (es *EchoServer) Handler() http.Handler {
	return instrument(es.e, es.logger)
}

func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	if err == nil {
		return
	}

	var writeErr error
	switch status := httpStatusFromError(err); status {
	case http.StatusInternalServerError:
		writeErr = es.h.RenderError(c, err)
	case http.StatusNotFound:
		writeErr = handlers.RenderNotFound(c)
	default:
		writeErr = c.String(status, http.StatusText(status))
	}
	if writeErr != nil {
		es.logger.Error("write error response", "error", writeErr)
	}
}

func httpStatusFromError(err error) int {
	var coder echo.HTTPStatusCoder
	if errors.As(err, &coder) {
		if code := coder.StatusCode(); code != 0 {
			return code
		}
	}
	return http.StatusInternalServerError
}
