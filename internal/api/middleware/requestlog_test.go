package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func serveStatus(
	t *testing.T,
	h echo.HandlerFunc,
	method, path string,
	mutate func(*http.Request) *http.Request,
) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, http.NoBody)
	if mutate != nil {
		req = mutate(req)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(echo.New().NewContext(req, rec)))
	return rec
}

func TestRequestLog_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		method    string
		path      string
		status    int
		requestID string
		want      []string
	}{
		{
			name:   "search request with generated ID",
			method: http.MethodPost,
			path:   "/api/v1/flights/search",
			status: http.StatusOK,
			want: []string{
				"level=INFO", "msg=request", "method=POST",
				"path=/api/v1/flights/search", "status=200", "duration_ms=", "request_id=",
			},
		},
		{
			name:   "validation failure at warn",
			method: http.MethodPost,
			path:   "/api/v1/hotels/search",
			status: http.StatusUnprocessableEntity,
			want:   []string{"level=WARN", "status=422"},
		},
		{
			name:   "inbound throttle at warn",
			method: http.MethodPost,
			path:   "/api/v1/activities/search",
			status: http.StatusTooManyRequests,
			want:   []string{"level=WARN", "status=429"},
		},
		{
			name:   "server error at error",
			method: http.MethodGet,
			path:   "/api/v1/quota",
			status: http.StatusInternalServerError,
			want:   []string{"level=ERROR", "status=500"},
		},
		{
			name:   "failed readiness probe at warn",
			method: http.MethodGet,
			path:   "/readyz",
			status: http.StatusServiceUnavailable,
			want:   []string{"level=WARN", "status=503"},
		},
		{
			name:      "caller request ID reused",
			method:    http.MethodGet,
			path:      "/api/v1/quota",
			status:    http.StatusOK,
			requestID: "req-abc-123",
			want:      []string{"request_id=req-abc-123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			h := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
				assert.NotEmpty(t, c.Get(requestIDKey))
				return c.NoContent(tt.status)
			})

			rec := serveStatus(t, h, tt.method, tt.path, func(r *http.Request) *http.Request {
				if tt.requestID != "" {
					r.Header.Set(requestIDHeader, tt.requestID)
				}
				return r
			})

			for _, field := range tt.want {
				assert.Contains(t, buf.String(), field)
			}
			assert.NotContains(t, buf.String(), "trace_id=")

			respID := rec.Header().Get(requestIDHeader)
			require.NotEmpty(t, respID)
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, respID)
			}
		})
	}
}

func TestRequestLog_ProbeSuppression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		statuses   []int
		wantLogged []bool
	}{
		{
			name:       "healthz logs only first success",
			path:       "/healthz",
			statuses:   []int{200, 200, 200},
			wantLogged: []bool{true, false, false},
		},
		{
			name:       "readyz failures always logged",
			path:       "/readyz",
			statuses:   []int{503, 503},
			wantLogged: []bool{true, true},
		},
		{
			name:       "readyz failure after suppressed success",
			path:       "/readyz",
			statuses:   []int{200, 200, 503},
			wantLogged: []bool{true, false, true},
		},
		{
			name:       "api paths never suppressed",
			path:       "/api/v1/quota",
			statuses:   []int{200, 200},
			wantLogged: []bool{true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			call := 0
			h := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
				status := tt.statuses[call]
				call++
				return c.NoContent(status)
			})

			for i := range tt.statuses {
				before := buf.Len()
				serveStatus(t, h, http.MethodGet, tt.path, nil)
				assert.Equal(t, tt.wantLogged[i], buf.Len() > before, "request %d", i)
			}
		})
	}
}

func TestRequestLog_TraceID(t *testing.T) {
	t.Parallel()

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	var buf bytes.Buffer
	h := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	serveStatus(t, h, http.MethodPost, "/api/v1/flights/search", func(r *http.Request) *http.Request {
		return r.WithContext(trace.ContextWithSpanContext(context.Background(), sc))
	})

	assert.Contains(t, buf.String(), "trace_id=4bf92f3577b34da6a3ce929d0e0e4736")
}
