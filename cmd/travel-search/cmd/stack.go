package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/viper"

	"github.com/donaldgifford/travel-search/internal/amadeus"
	"github.com/donaldgifford/travel-search/internal/config"
	"github.com/donaldgifford/travel-search/internal/search"
	"github.com/donaldgifford/travel-search/internal/telemetry"
	domain "github.com/donaldgifford/travel-search/pkg/types"
)

// stack is one wired provider pipeline and the services on top of it.
type stack struct {
	tokens     *amadeus.TokenManager
	limiter    *amadeus.RateLimiter
	flights    *search.FlightService
	hotels     *search.HotelService
	activities *search.ActivityService
}

// loadServerConfig reads --server-config when given, otherwise builds the
// configuration from the environment alone.
func loadServerConfig() (*config.Config, error) {
	path := viper.GetString("server-config")
	if path == "" {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return nil, fmt.Errorf("loading config from environment: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func buildStack(cfg *config.Config, log *slog.Logger) *stack {
	a := cfg.Amadeus
	httpClient := &http.Client{
		Timeout:   a.Timeout,
		Transport: telemetry.Transport(nil),
	}

	tokens := amadeus.NewTokenManager(a.ClientID, a.ClientSecret,
		amadeus.WithTokenURL(a.TokenURL),
		amadeus.WithRefreshBuffer(a.RefreshBuffer),
		amadeus.WithHTTPClient(httpClient),
		amadeus.WithTokenLogger(log),
	)
	limiter := amadeus.NewRateLimiter(a.MinDelay)
	exec := amadeus.NewExecutor(tokens, limiter,
		amadeus.WithBaseURL(a.BaseURL),
		amadeus.WithExecutorHTTPClient(httpClient),
		amadeus.WithMaxAttempts(a.MaxAttempts),
		amadeus.WithBackoff(a.BaseDelay, a.MaxDelay),
		amadeus.WithExecutorLogger(log),
	)
	client := amadeus.NewClient(exec, amadeus.WithClientLogger(log))

	opts := []search.Option{
		search.WithLogger(log),
		search.WithDefaultCurrency(cfg.Search.DefaultCurrency),
		search.WithMaxHotelIDs(cfg.Search.MaxHotelIDs),
	}

	return &stack{
		tokens:     tokens,
		limiter:    limiter,
		flights:    search.NewFlightService(client, opts...),
		hotels:     search.NewHotelService(client, opts...),
		activities: search.NewActivityService(client, opts...),
	}
}

// backend runs searches either against the API server or in-process.
type backend interface {
	flights(ctx context.Context, req *domain.FlightSearchRequest) (*domain.ServiceResponse[[]domain.FlightResult], error)
	hotels(ctx context.Context, req *domain.HotelSearchRequest) (*domain.ServiceResponse[[]domain.HotelResult], error)
	activities(
		ctx context.Context,
		req *domain.ActivitySearchRequest,
	) (*domain.ServiceResponse[[]domain.ActivityResult], error)
}

func newBackend() (backend, error) {
	if !viper.GetBool("direct") {
		return remoteBackend{}, nil
	}

	cfg, err := loadServerConfig()
	if err != nil {
		return nil, err
	}
	return localBackend{s: buildStack(cfg, newLogger(cfg))}, nil
}

type remoteBackend struct{}

func (remoteBackend) flights(
	ctx context.Context,
	req *domain.FlightSearchRequest,
) (*domain.ServiceResponse[[]domain.FlightResult], error) {
	return newClient().SearchFlights(ctx, req)
}

func (remoteBackend) hotels(
	ctx context.Context,
	req *domain.HotelSearchRequest,
) (*domain.ServiceResponse[[]domain.HotelResult], error) {
	return newClient().SearchHotels(ctx, req)
}

func (remoteBackend) activities(
	ctx context.Context,
	req *domain.ActivitySearchRequest,
) (*domain.ServiceResponse[[]domain.ActivityResult], error) {
	return newClient().SearchActivities(ctx, req)
}

type localBackend struct {
	s *stack
}

func (b localBackend) flights(
	ctx context.Context,
	req *domain.FlightSearchRequest,
) (*domain.ServiceResponse[[]domain.FlightResult], error) {
	resp := b.s.flights.Search(ctx, *req)
	return &resp, nil
}

func (b localBackend) hotels(
	ctx context.Context,
	req *domain.HotelSearchRequest,
) (*domain.ServiceResponse[[]domain.HotelResult], error) {
	resp := b.s.hotels.Search(ctx, *req)
	return &resp, nil
}

func (b localBackend) activities(
	ctx context.Context,
	req *domain.ActivitySearchRequest,
) (*domain.ServiceResponse[[]domain.ActivityResult], error) {
	resp := b.s.activities.Search(ctx, *req)
	return &resp, nil
}
