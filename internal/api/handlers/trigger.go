package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Warmer obtains an access token on demand.
type Warmer interface {
	Warmup(ctx context.Context) error
}

// WarmupHandler handles manual token warm-up requests.
type WarmupHandler struct {
	warmer Warmer
}

// NewWarmupHandler creates a new WarmupHandler.
func NewWarmupHandler(w Warmer) *WarmupHandler {
	return &WarmupHandler{warmer: w}
}

// WarmupOutput is the response body for the warm-up endpoint.
type WarmupOutput struct {
	Body struct {
		Status string `json:"status" example:"token warm-up completed" doc:"Warm-up status"`
	}
}

// Warmup fetches or reuses an access token so the next search does not pay
// for the token round trip.
func (h *WarmupHandler) Warmup(ctx context.Context, _ *struct{}) (*WarmupOutput, error) {
	if err := h.warmer.Warmup(ctx); err != nil {
		return nil, huma.Error502BadGateway("token warm-up failed: " + err.Error())
	}

	resp := &WarmupOutput{}
	resp.Body.Status = "token warm-up completed"
	return resp, nil
}

// RegisterTriggerRoutes registers trigger endpoints with the Huma API.
func RegisterTriggerRoutes(api huma.API, warmupH *WarmupHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-token-warmup",
		Method:      http.MethodPost,
		Path:        "/api/v1/token/warmup",
		Summary:     "Trigger token warm-up",
		Description: "Obtains an Amadeus access token now instead of waiting for the next scheduled warm-up.",
		Tags:        []string{"amadeus"},
		Errors:      []int{http.StatusBadGateway},
	}, warmupH.Warmup)
}
