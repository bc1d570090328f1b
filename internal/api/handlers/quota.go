package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/travel-search/internal/amadeus"
)

// QuotaHandler reports outbound Amadeus request accounting and token state.
type QuotaHandler struct {
	rl          *amadeus.RateLimiter
	tokens      *amadeus.TokenManager
	environment string
}

// NewQuotaHandler creates a new QuotaHandler. Either component may be nil.
func NewQuotaHandler(rl *amadeus.RateLimiter, tokens *amadeus.TokenManager, environment string) *QuotaHandler {
	return &QuotaHandler{rl: rl, tokens: tokens, environment: environment}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		Environment    string     `json:"environment"               example:"test"                 doc:"Amadeus environment"`
		MinDelayMS     int64      `json:"min_delay_ms"              example:"100"                  doc:"Minimum spacing between outbound requests"`
		WindowRequests int        `json:"window_requests"           example:"3"                    doc:"Requests issued in the current one-second window"`
		WindowStart    *time.Time `json:"window_start,omitempty"    example:"2025-06-16T14:30:00Z" doc:"Start of the current one-second window"`
		LastRequestAt  *time.Time `json:"last_request_at,omitempty" example:"2025-06-16T14:30:00Z" doc:"When the last outbound request was granted"`
		TotalRequests  int64      `json:"total_requests"            example:"142"                  doc:"Outbound requests granted since start"`
		TokenValid     bool       `json:"token_valid"               example:"true"                 doc:"Whether a usable access token is cached"`
		TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" example:"2025-06-16T15:00:00Z" doc:"When the cached access token expires"`
	}
}

// GetQuota returns the current outbound request and token status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	resp.Body.Environment = h.environment

	if h.rl != nil {
		w := h.rl.Window()
		resp.Body.MinDelayMS = h.rl.MinDelay().Milliseconds()
		resp.Body.WindowRequests = w.RequestCount
		resp.Body.WindowStart = timePtr(w.WindowStart)
		resp.Body.LastRequestAt = timePtr(w.LastRequestAt)
		resp.Body.TotalRequests = h.rl.Total()
	}

	if h.tokens != nil {
		snap := h.tokens.Snapshot()
		resp.Body.TokenValid = snap.Valid
		resp.Body.TokenExpiresAt = timePtr(snap.ExpiresAt)
	}

	return resp, nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get Amadeus request status",
		Description: "Returns outbound request spacing, the current one-second window, and access token validity.",
		Tags:        []string{"amadeus"},
	}, h.GetQuota)
}
