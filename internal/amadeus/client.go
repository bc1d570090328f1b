// Package amadeus provides an Amadeus self-service API client: OAuth2
// token management, outbound request spacing, a retrying executor and
// typed endpoint methods, abstracted behind interfaces for testability.
package amadeus

import (
	"context"
	"log/slog"
	"strings"

	"github.com/donaldgifford/travel-search/internal/metrics"
	"github.com/donaldgifford/travel-search/pkg/logger"
)

// Environment names and their base URLs.
const (
	EnvironmentTest       = "test"
	EnvironmentProduction = "production"

	TestBaseURL       = "https://test.api.amadeus.com"
	ProductionBaseURL = "https://api.amadeus.com"
)

// BaseURLForEnvironment returns the API host for an environment name.
// Anything other than "production" maps to the test host.
func BaseURLForEnvironment(env string) string {
	if strings.EqualFold(env, EnvironmentProduction) {
		return ProductionBaseURL
	}
	return TestBaseURL
}

// TokenURLFor returns the OAuth2 token endpoint on a base URL.
func TokenURLFor(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + tokenPath
}

// TokenProvider obtains bearer tokens and can be told a token was rejected.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Reset()
}

// Limiter gates each outbound attempt.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Doer executes one logical provider request, decoding the success body
// into out.
type Doer interface {
	Do(ctx context.Context, req Request, out any) error
}

// Client exposes the Amadeus endpoints used by the search services. All
// calls go through a single Doer, normally an *Executor.
type Client struct {
	doer   Doer
	logger *slog.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithClientLogger sets the logger used for rejected-record warnings.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates an endpoint client over doer.
func NewClient(doer Doer, opts ...ClientOption) *Client {
	c := &Client{
		doer:   doer,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) logRejected(kind string, errs []error) {
	if len(errs) == 0 {
		return
	}
	metrics.RecordsRejectedTotal.WithLabelValues(kind).Add(float64(len(errs)))
	for _, err := range errs {
		c.logger.Warn("dropping provider record", "kind", kind, "error", err)
	}
}
