package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// TokenSource obtains an access token. Readiness means a token can be had.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	tokens TokenSource
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(tokens TokenSource) *HealthHandler {
	return &HealthHandler{tokens: tokens}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 once an Amadeus access token can be obtained, 503
// otherwise. A cached token answers without a network call.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if h.tokens == nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	if _, err := h.tokens.Token(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
