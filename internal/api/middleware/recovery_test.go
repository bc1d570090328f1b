package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		handler    echo.HandlerFunc
		wantStatus int
		wantBody   string
		wantLogged []string
	}{
		{
			name:   "no panic passes through",
			method: http.MethodGet,
			path:   "/api/v1/quota",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:   "string panic",
			method: http.MethodPost,
			path:   "/api/v1/flights/search",
			handler: func(_ echo.Context) error {
				panic("nil offer")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"data":null,"error":"internal server error","elapsed_ms":0}`,
			wantLogged: []string{"panic recovered", "nil offer", "method=POST", "path=/api/v1/flights/search", "stack="},
		},
		{
			name:   "non-string panic",
			method: http.MethodPost,
			path:   "/api/v1/hotels/search",
			handler: func(_ echo.Context) error {
				panic(42)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"data":null,"error":"internal server error","elapsed_ms":0}`,
			wantLogged: []string{"error=42", "path=/api/v1/hotels/search"},
		},
		{
			name:   "panic after write keeps the written response",
			method: http.MethodGet,
			path:   "/api/v1/quota",
			handler: func(c echo.Context) error {
				_ = c.String(http.StatusOK, "partial")
				panic("late")
			},
			wantStatus: http.StatusOK,
			wantBody:   "partial",
			wantLogged: []string{"late", "committed=true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := Recovery(logger)(tt.handler)(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusInternalServerError {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}

			if len(tt.wantLogged) == 0 {
				assert.Empty(t, buf.String())
			}
			for _, s := range tt.wantLogged {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestRecovery_AbortHandlerRepanics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", http.NoBody), httptest.NewRecorder())

	handler := Recovery(logger)(func(_ echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = handler(c) })
	assert.Empty(t, buf.String())
}
