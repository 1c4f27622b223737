package cities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cityair/pollution-proxy/pkg/auth"
	"github.com/cityair/pollution-proxy/pkg/cache"
	"github.com/cityair/pollution-proxy/pkg/client"
	"github.com/cityair/pollution-proxy/pkg/logging"
	"github.com/rs/zerolog"
)

// ErrInvalidCountry is returned when the country parameter is empty or
// all-whitespace. No network calls are issued in that case.
var ErrInvalidCountry = errors.New("country is required")

// CacheTTL bounds how long a cleaned page result is served from cache.
const CacheTTL = 60 * time.Second

// Service composes cache lookup, authenticated fetch, and cleaning into
// the single city query operation.
type Service struct {
	api      *client.Client
	auth     *auth.Orchestrator
	cache    *cache.Store
	pipeline *Pipeline
	logger   zerolog.Logger
}

// Config holds the service dependencies.
type Config struct {
	API      *client.Client
	Auth     *auth.Orchestrator
	Cache    *cache.Store
	Pipeline *Pipeline
}

// NewService creates a city query service.
func NewService(cfg Config) (*Service, error) {
	if cfg.API == nil {
		return nil, fmt.Errorf("upstream client is required")
	}
	if cfg.Auth == nil {
		return nil, fmt.Errorf("auth orchestrator is required")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if cfg.Pipeline == nil {
		return nil, fmt.Errorf("cleaning pipeline is required")
	}

	return &Service{
		api:      cfg.API,
		auth:     cfg.Auth,
		cache:    cfg.Cache,
		pipeline: cfg.Pipeline,
		logger:   logging.NewLogger("city-service"),
	}, nil
}

// GetCities returns one cleaned page of pollution-by-city data. Cached
// results are served as-is with no upstream traffic; on a miss the page
// is fetched with authentication, cleaned, cached, and returned. Failed
// fetches are never cached.
func (s *Service) GetCities(ctx context.Context, country string, page, limit int) (*PageResult, error) {
	if strings.TrimSpace(country) == "" {
		return nil, fmt.Errorf("get cities: %w", ErrInvalidCountry)
	}

	key := cache.Key{Country: country, Page: page, Limit: limit}
	startTime := time.Now()

	if result, ok := s.fromCache(ctx, key); ok {
		s.logger.Debug().
			Str("fingerprint", key.String()).
			Bool("cache_hit", true).
			Msg("Serving cached page")
		return result, nil
	}

	var raw *client.PollutionPage
	err := s.auth.Do(ctx, func(ctx context.Context, accessToken string) error {
		var fetchErr error
		raw, fetchErr = s.api.FetchPollution(ctx, accessToken, country, page, limit)
		return fetchErr
	})
	if err != nil {
		return nil, fmt.Errorf("get cities country=%q page=%d: %w", country, page, err)
	}

	result := s.pipeline.Clean(ctx, raw, limit)

	s.store(ctx, key, result)

	s.logger.Info().
		Str("country", country).
		Int("page", page).
		Int("limit", limit).
		Int("count", result.Count).
		Dur("duration", time.Since(startTime)).
		Msg("City query complete")

	return result, nil
}

// fromCache returns the cached page result for key, if fresh. Cache
// errors degrade to a miss; an undecodable entry is dropped.
func (s *Service) fromCache(ctx context.Context, key cache.Key) (*PageResult, bool) {
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != cache.ErrCacheMiss {
			s.logger.Warn().Err(err).Str("fingerprint", key.String()).Msg("Cache get error")
		}
		return nil, false
	}

	var result PageResult
	if err := json.Unmarshal(entry.Data, &result); err != nil {
		s.logger.Warn().Err(err).Str("fingerprint", key.String()).Msg("Dropping undecodable cache entry")
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}

	return &result, true
}

// store writes a processed result through to the cache. Write failures
// are logged, not surfaced: the caller already holds the result.
func (s *Service) store(ctx context.Context, key cache.Key, result *PageResult) {
	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to marshal page result for cache")
		return
	}

	if err := s.cache.Set(ctx, key, data, CacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("fingerprint", key.String()).Msg("Failed to cache page result")
	}
}
