package client

import (
	"context"
	"time"

	domain "github.com/donaldgifford/travel-search/pkg/types"
)

// SearchFlights runs a flight search on the server.
func (c *Client) SearchFlights(
	ctx context.Context,
	req *domain.FlightSearchRequest,
) (*domain.ServiceResponse[[]domain.FlightResult], error) {
	var resp domain.ServiceResponse[[]domain.FlightResult]
	if err := c.post(ctx, "/api/v1/flights/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchHotels runs a hotel search on the server.
func (c *Client) SearchHotels(
	ctx context.Context,
	req *domain.HotelSearchRequest,
) (*domain.ServiceResponse[[]domain.HotelResult], error) {
	var resp domain.ServiceResponse[[]domain.HotelResult]
	if err := c.post(ctx, "/api/v1/hotels/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchActivities runs an activity search on the server.
func (c *Client) SearchActivities(
	ctx context.Context,
	req *domain.ActivitySearchRequest,
) (*domain.ServiceResponse[[]domain.ActivityResult], error) {
	var resp domain.ServiceResponse[[]domain.ActivityResult]
	if err := c.post(ctx, "/api/v1/activities/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QuotaStatus mirrors the quota endpoint response.
type QuotaStatus struct {
	Environment    string     `json:"environment"`
	MinDelayMS     int64      `json:"min_delay_ms"`
	WindowRequests int        `json:"window_requests"`
	WindowStart    *time.Time `json:"window_start,omitempty"`
	LastRequestAt  *time.Time `json:"last_request_at,omitempty"`
	TotalRequests  int64      `json:"total_requests"`
	TokenValid     bool       `json:"token_valid"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
}

// GetQuota returns the server's outbound request and token status.
func (c *Client) GetQuota(ctx context.Context) (*QuotaStatus, error) {
	var q QuotaStatus
	if err := c.get(ctx, "/api/v1/quota", &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// WarmupToken asks the server to obtain an access token now and returns
// the server's status message.
func (c *Client) WarmupToken(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.post(ctx, "/api/v1/token/warmup", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}
