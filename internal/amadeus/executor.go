package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/travel-search/internal/metrics"
	"github.com/donaldgifford/travel-search/pkg/logger"
)

var tracer = otel.Tracer("github.com/donaldgifford/travel-search/internal/amadeus")

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
	defaultMaxDelay    = 30 * time.Second
	maxJitterFraction  = 0.2
)

// State names one step of a logical request's lifecycle.
type State string

// Executor states.
const (
	StateIdle           State = "idle"
	StateRateLimiting   State = "rate_limiting"
	StateAuthenticating State = "authenticating"
	StateSending        State = "sending"
	StateSuccess        State = "success"
	StateRetryable      State = "retryable"
	StateReauth         State = "reauth"
	StateTerminal       State = "terminal"
)

// Request is one logical provider call. Endpoint labels metrics and logs
// and defaults to Path.
type Request struct {
	Endpoint string
	Method   string
	Path     string
	Query    url.Values
}

// Executor runs provider requests through the rate limiter and token
// provider, retrying rate-limit and transient failures with backoff and
// re-authenticating once on 401.
type Executor struct {
	baseURL     string
	tokens      TokenProvider
	limiter     Limiter
	client      *http.Client
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	logger      *slog.Logger

	nowFunc   func() time.Time
	sleepFunc func(context.Context, time.Duration) error
	jitter    func(time.Duration) time.Duration
}

// ExecutorOption configures the Executor.
type ExecutorOption func(*Executor)

// WithBaseURL overrides the API host.
func WithBaseURL(u string) ExecutorOption {
	return func(e *Executor) {
		e.baseURL = strings.TrimRight(u, "/")
	}
}

// WithExecutorHTTPClient overrides the default HTTP client.
func WithExecutorHTTPClient(c *http.Client) ExecutorOption {
	return func(e *Executor) {
		e.client = c
	}
}

// WithMaxAttempts sets how many attempts a logical request may make,
// excluding the single re-authentication retry.
func WithMaxAttempts(n int) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithBackoff sets the exponential backoff base and ceiling.
func WithBackoff(base, maxDelay time.Duration) ExecutorOption {
	return func(e *Executor) {
		if base > 0 {
			e.baseDelay = base
		}
		if maxDelay > 0 {
			e.maxDelay = maxDelay
		}
	}
}

// WithExecutorLogger sets the logger for state transitions.
func WithExecutorLogger(l *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithExecutorNowFunc overrides the time function for testing.
func WithExecutorNowFunc(f func() time.Time) ExecutorOption {
	return func(e *Executor) {
		e.nowFunc = f
	}
}

// WithExecutorSleepFunc overrides how retries wait for testing.
func WithExecutorSleepFunc(f func(context.Context, time.Duration) error) ExecutorOption {
	return func(e *Executor) {
		e.sleepFunc = f
	}
}

// WithJitterFunc overrides the random jitter added to computed backoff.
func WithJitterFunc(f func(time.Duration) time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.jitter = f
	}
}

// NewExecutor creates an executor against the test environment unless
// WithBaseURL says otherwise.
func NewExecutor(tokens TokenProvider, limiter Limiter, opts ...ExecutorOption) *Executor {
	e := &Executor{
		baseURL:     TestBaseURL,
		tokens:      tokens,
		limiter:     limiter,
		client:      &http.Client{Timeout: 30 * time.Second},
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		maxDelay:    defaultMaxDelay,
		logger:      logger.Discard(),
		nowFunc:     time.Now,
		sleepFunc:   sleepContext,
		jitter:      randomJitter,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do executes req and decodes a 2xx body into out. Errors are one of the
// package's error types, or a wrapped context error when ctx ends.
func (e *Executor) Do(ctx context.Context, req Request, out any) (err error) {
	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.Path
	}

	ctx, span := tracer.Start(ctx, "amadeus."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("amadeus.endpoint", endpoint),
			attribute.String("url.path", req.Path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	return e.do(ctx, endpoint, req, out)
}

func (e *Executor) do(ctx context.Context, endpoint string, req Request, out any) error {
	start := time.Now()
	defer func() {
		metrics.AmadeusRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	e.transition(ctx, endpoint, 0, StateIdle)

	var last error
	reauthed := false
	attempt := 0

	for attempt < e.maxAttempts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", endpoint, err)
		}

		e.transition(ctx, endpoint, attempt, StateRateLimiting)
		if err := e.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: %w", endpoint, err)
		}

		e.transition(ctx, endpoint, attempt, StateAuthenticating)
		token, err := e.tokens.Token(ctx)
		if err != nil {
			e.transition(ctx, endpoint, attempt, StateTerminal)
			return fmt.Errorf("%s: getting auth token: %w", endpoint, err)
		}

		e.transition(ctx, endpoint, attempt, StateSending)
		resp, err := e.send(ctx, req, token)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("%s: %w", endpoint, ctxErr)
			}
			metrics.AmadeusRequestsTotal.WithLabelValues(endpoint, "error").Inc()
			last = &TransientNetworkError{Err: err}
			attempt++
			if err := e.backoff(ctx, endpoint, attempt, "network", e.computeBackoff(attempt-1)); err != nil {
				return err
			}
			continue
		}

		metrics.AmadeusRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.status)).Inc()

		switch {
		case resp.status >= 200 && resp.status < 300:
			if out != nil && len(resp.body) > 0 {
				if err := json.Unmarshal(resp.body, out); err != nil {
					e.transition(ctx, endpoint, attempt, StateTerminal)
					return &ProviderError{
						Status: resp.status,
						Title:  "invalid response body",
						Detail: err.Error(),
					}
				}
			}
			e.transition(ctx, endpoint, attempt, StateSuccess)
			return nil

		case resp.status == http.StatusUnauthorized:
			pe := parseProviderError(resp.status, resp.body)
			if reauthed {
				e.transition(ctx, endpoint, attempt, StateTerminal)
				return &AuthenticationError{
					Status:      resp.status,
					Code:        pe.Code,
					Description: pe.Detail,
				}
			}
			reauthed = true
			e.tokens.Reset()
			metrics.AmadeusRetriesTotal.WithLabelValues("unauthorized").Inc()
			e.transition(ctx, endpoint, attempt, StateReauth)

		case resp.status == http.StatusTooManyRequests:
			rl := &RateLimitError{RetryAfter: parseRetryAfter(resp.header.Get("Retry-After"), e.nowFunc())}
			last = rl
			delay := rl.RetryAfter
			if delay <= 0 {
				delay = e.computeBackoff(attempt)
			} else if delay > e.maxDelay {
				delay = e.maxDelay
			}
			attempt++
			if err := e.backoff(ctx, endpoint, attempt, "rate_limited", delay); err != nil {
				return err
			}

		case resp.status >= 500:
			last = &TransientNetworkError{
				Status: resp.status,
				Err:    parseProviderError(resp.status, resp.body),
			}
			attempt++
			if err := e.backoff(ctx, endpoint, attempt, "server_error", e.computeBackoff(attempt-1)); err != nil {
				return err
			}

		default:
			e.transition(ctx, endpoint, attempt, StateTerminal)
			return parseProviderError(resp.status, resp.body)
		}
	}

	e.transition(ctx, endpoint, attempt, StateTerminal)
	return &ExhaustedRetriesError{Attempts: attempt, Last: last}
}

// backoff records a retryable outcome and sleeps before the next attempt.
// Nothing is slept once the attempt budget is spent.
func (e *Executor) backoff(ctx context.Context, endpoint string, attempt int, reason string, delay time.Duration) error {
	e.transition(ctx, endpoint, attempt, StateRetryable)
	if attempt >= e.maxAttempts {
		return nil
	}

	metrics.AmadeusRetriesTotal.WithLabelValues(reason).Inc()
	e.logger.Debug("retrying amadeus request",
		"endpoint", endpoint,
		"attempt", attempt,
		"reason", reason,
		"delay", delay,
	)

	if err := e.sleepFunc(ctx, delay); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", endpoint, err)
		}
		return fmt.Errorf("%s: backoff: %w", endpoint, err)
	}
	return nil
}

// computeBackoff returns baseDelay * 2^attempt plus jitter, capped at
// maxDelay.
func (e *Executor) computeBackoff(attempt int) time.Duration {
	d := e.baseDelay << attempt
	if d <= 0 || d > e.maxDelay {
		d = e.maxDelay
	}
	d += e.jitter(d)
	if d > e.maxDelay {
		d = e.maxDelay
	}
	return d
}

func (e *Executor) transition(ctx context.Context, endpoint string, attempt int, s State) {
	trace.SpanFromContext(ctx).AddEvent(string(s), trace.WithAttributes(attribute.Int("amadeus.attempt", attempt)))
	e.logger.Debug("amadeus request state",
		"endpoint", endpoint,
		"attempt", attempt,
		"state", string(s),
	)
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (e *Executor) send(ctx context.Context, req Request, token string) (*response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u := e.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/vnd.amadeus+json, application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &response{
		status: resp.StatusCode,
		header: resp.Header,
		body:   body,
	}, nil
}

// parseRetryAfter reads a Retry-After header in delta-seconds or HTTP-date
// form. Unparseable or past values yield zero.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func randomJitter(d time.Duration) time.Duration {
	limit := int64(float64(d) * maxJitterFraction)
	if limit <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(limit + 1)) //nolint:gosec // jitter does not need crypto randomness
}
