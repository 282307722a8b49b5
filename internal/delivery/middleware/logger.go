package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"fullapp/config"
	deliverycontext "fullapp/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// quietPaths are polled by probes and scrapers; they are logged only when they fail.
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// LoggerMiddleware writes one access-log line per request.
// Failed requests are always logged; successful ones only in debug mode.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle resolves handler errors through the echo error handler first so the
// logged status is the one the client received.
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		if m.shouldLog(c.Request().URL.Path, status) {
			m.logRequest(c, start, err)
		}

		return nil
	}
}

func (m *LoggerMiddleware) shouldLog(path string, status int) bool {
	if status >= http.StatusBadRequest {
		return true
	}
	if !m.debug {
		return false
	}
	_, quiet := quietPaths[path]

	return !quiet
}

func accessLogLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	attrs := []slog.Attr{
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.String("route", c.Path()),
		slog.Int("status", res.Status),
		slog.Int64("bytes_out", res.Size),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}
	if req.URL.RawQuery != "" {
		attrs = append(attrs, slog.String("query", req.URL.RawQuery))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	m.logger.LogAttrs(req.Context(), accessLogLevel(res.Status), "HTTP Request", attrs...)
}
