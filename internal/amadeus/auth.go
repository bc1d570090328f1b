package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/travel-search/internal/metrics"
	"github.com/donaldgifford/travel-search/pkg/logger"
)

const (
	tokenPath            = "/v1/security/oauth2/token" //nolint:gosec // not a credential
	defaultRefreshBuffer = 60 * time.Second
	defaultTokenTTL      = 30 * time.Minute
	tokenExchangeTimeout = 10 * time.Second
)

// AuthToken is a bearer token and the instant it stops being accepted.
type AuthToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenSnapshot is the externally visible token state. The token value
// itself is never exposed.
type TokenSnapshot struct {
	Valid     bool
	ExpiresAt time.Time
}

// TokenManager implements TokenProvider using the Amadeus OAuth2 client
// credentials flow. Tokens are cached and refreshed once they come within
// the refresh buffer of expiry. Concurrent refreshes collapse into one
// exchange.
type TokenManager struct {
	clientID      string
	clientSecret  string
	tokenURL      string
	client        *http.Client
	refreshBuffer time.Duration
	logger        *slog.Logger

	mu      sync.Mutex
	token   *AuthToken
	group   singleflight.Group
	nowFunc func() time.Time // for testing
}

// TokenOption configures the TokenManager.
type TokenOption func(*TokenManager)

// WithTokenURL overrides the token endpoint derived from the base URL.
func WithTokenURL(u string) TokenOption {
	return func(m *TokenManager) {
		m.tokenURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) TokenOption {
	return func(m *TokenManager) {
		m.client = c
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) TokenOption {
	return func(m *TokenManager) {
		m.nowFunc = f
	}
}

// WithRefreshBuffer sets how long before expiry a token is treated as stale.
func WithRefreshBuffer(d time.Duration) TokenOption {
	return func(m *TokenManager) {
		m.refreshBuffer = d
	}
}

// WithTokenLogger sets the logger for token exchanges.
func WithTokenLogger(l *slog.Logger) TokenOption {
	return func(m *TokenManager) {
		m.logger = l
	}
}

// NewTokenManager creates a token manager for the given credentials
// against the test environment unless WithTokenURL says otherwise.
func NewTokenManager(clientID, clientSecret string, opts ...TokenOption) *TokenManager {
	m := &TokenManager{
		clientID:      clientID,
		clientSecret:  clientSecret,
		tokenURL:      TestBaseURL + tokenPath,
		client:        &http.Client{Timeout: tokenExchangeTimeout},
		refreshBuffer: defaultRefreshBuffer,
		logger:        logger.Discard(),
		nowFunc:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	State       string `json:"state"`
}

type tokenErrorResponse struct {
	Error            string     `json:"error"`
	ErrorDescription string     `json:"error_description"`
	Code             flexString `json:"code"`
	Title            string     `json:"title"`
}

// Token returns a valid access token, exchanging credentials when the
// cached one is missing or inside the refresh buffer. A caller whose
// context ends stops waiting without cancelling the shared exchange.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	if tok, ok := m.cached(); ok {
		return tok, nil
	}

	ch := m.group.DoChan("token", func() (any, error) {
		if tok, ok := m.cached(); ok {
			return tok, nil
		}
		exCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tokenExchangeTimeout)
		defer cancel()
		return m.exchange(exCtx)
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for token: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		tok, _ := res.Val.(string)
		return tok, nil
	}
}

// Reset drops the cached token so the next Token call exchanges again.
func (m *TokenManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
}

// Snapshot reports whether a usable token is cached and when it expires.
func (m *TokenManager) Snapshot() TokenSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil {
		return TokenSnapshot{}
	}
	return TokenSnapshot{
		Valid:     m.usableLocked(),
		ExpiresAt: m.token.ExpiresAt,
	}
}

func (m *TokenManager) cached() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.usableLocked() {
		return m.token.Value, true
	}
	return "", false
}

func (m *TokenManager) usableLocked() bool {
	return m.token != nil && m.nowFunc().Before(m.token.ExpiresAt.Add(-m.refreshBuffer))
}

func (m *TokenManager) exchange(ctx context.Context) (string, error) {
	tok, err := m.doExchange(ctx)
	if err != nil {
		metrics.AmadeusTokenRefreshesTotal.WithLabelValues("error").Inc()
		m.logger.Warn("token exchange failed", "error", err)
		return "", err
	}

	metrics.AmadeusTokenRefreshesTotal.WithLabelValues("success").Inc()
	m.logger.Debug("token exchanged", "expires_at", tok.ExpiresAt)

	m.mu.Lock()
	m.token = tok
	m.mu.Unlock()

	return tok.Value, nil
}

func (m *TokenManager) doExchange(ctx context.Context) (*AuthToken, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("creating token request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("executing token request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("reading token response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		var errResp tokenErrorResponse
		_ = json.Unmarshal(body, &errResp) //nolint:errcheck // best-effort error parsing
		code := errResp.Error
		if code == "" {
			code = string(errResp.Code)
		}
		desc := errResp.ErrorDescription
		if desc == "" {
			desc = errResp.Title
		}
		return nil, &AuthenticationError{
			Status:      resp.StatusCode,
			Code:        code,
			Description: desc,
		}
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("parsing token response: %w", err)}
	}
	if tokenResp.AccessToken == "" {
		return nil, &AuthenticationError{
			Status:      resp.StatusCode,
			Description: "token response missing access_token",
		}
	}

	ttl := time.Duration(tokenResp.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &AuthToken{
		Value:     tokenResp.AccessToken,
		ExpiresAt: m.nowFunc().Add(ttl),
	}, nil
}
