// Package handlers implements the HTTP handlers for the travel-search API.
// Search endpoints are registered with huma; probes are plain echo handlers.
package handlers

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
