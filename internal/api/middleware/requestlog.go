package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// probeGate lets the first successful hit on each probe path through and
// drops the rest. Failures always pass.
type probeGate struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newProbeGate() *probeGate {
	return &probeGate{seen: map[string]bool{"/healthz": false, "/readyz": false}}
}

func (g *probeGate) allow(path string, status int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	seen, probe := g.seen[path]
	if !probe || status >= http.StatusBadRequest {
		return true
	}
	if seen {
		return false
	}
	g.seen[path] = true
	return true
}

func levelFor(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError && path != "/readyz" && path != "/healthz":
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// RequestLog logs one structured line per request. It reuses the caller's
// X-Request-ID or generates one, echoes it on the response and stores it in
// the echo context. When tracing middleware runs first, the trace ID is
// logged too.
//
// Probe successes are logged once per middleware instance; probe failures
// are logged at WARN every time.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	gate := newProbeGate()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := req.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := req.URL.Path
			status := c.Response().Status
			if !gate.allow(path, status) {
				return err
			}

			attrs := []any{
				"method", req.Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			}
			if sc := trace.SpanContextFromContext(req.Context()); sc.HasTraceID() {
				attrs = append(attrs, "trace_id", sc.TraceID().String())
			}

			log.Log(req.Context(), levelFor(path, status), "request", attrs...)
			return err
		}
	}
}
