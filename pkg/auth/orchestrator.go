package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/cityair/pollution-proxy/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Prometheus metrics for credential exchanges.
var (
	authLoginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pollution_auth_logins_total",
		Help: "Total successful login exchanges",
	})

	authRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pollution_auth_refreshes_total",
		Help: "Total successful refresh exchanges",
	})

	authRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pollution_auth_rejections_total",
		Help: "Total requests rejected again after a refresh",
	})
)

// Common errors returned by the orchestrator.
var (
	// ErrNoRefreshToken is returned when a refresh is required but no
	// refresh token is held.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrAuthRejected is returned when the upstream rejects the access
	// token again after a completed refresh. It is never retried.
	ErrAuthRejected = errors.New("authentication rejected after refresh")
)

// TokenSource performs the credential exchanges against the upstream auth
// endpoints. Exchange transport errors are surfaced, not retried.
type TokenSource interface {
	Login(ctx context.Context) (Credentials, error)
	Refresh(ctx context.Context, refreshToken string) (Credentials, error)
}

// Orchestrator drives the login/refresh state machine around authenticated
// requests. It owns the token store; credentials never leave this package.
type Orchestrator struct {
	source TokenSource
	store  *TokenStore
	flight singleflight.Group
	logger zerolog.Logger
}

// NewOrchestrator creates an orchestrator with an empty token store.
func NewOrchestrator(source TokenSource) *Orchestrator {
	return &Orchestrator{
		source: source,
		store:  &TokenStore{},
		logger: logging.NewLogger("auth"),
	}
}

// EnsureAuthenticated performs a login exchange when no access token is
// held. A held token is trusted as-is; staleness is only discovered
// reactively through an unauthorized response.
func (o *Orchestrator) EnsureAuthenticated(ctx context.Context) error {
	if o.store.Current().AccessToken != "" {
		return nil
	}
	return o.login(ctx)
}

// Do runs fn with a valid access token. When the upstream rejects the
// token, it performs exactly one refresh exchange and retries fn exactly
// once with the new token. A second rejection is fatal for this call; the
// orchestrator stays retry-eligible for the next call since it re-reads
// stored token state, not attempt history.
func (o *Orchestrator) Do(ctx context.Context, fn func(ctx context.Context, accessToken string) error) error {
	if err := o.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	err := fn(ctx, o.store.Current().AccessToken)
	if err == nil || !isUnauthorized(err) {
		return err
	}

	o.logger.Warn().Msg("Access token rejected, refreshing")
	if err := o.refresh(ctx); err != nil {
		return err
	}

	if err := fn(ctx, o.store.Current().AccessToken); err != nil {
		if isUnauthorized(err) {
			authRejectionsTotal.Inc()
			o.logger.Error().Msg("Access token rejected again after refresh")
			return fmt.Errorf("%w: %v", ErrAuthRejected, err)
		}
		return err
	}

	return nil
}

// login performs the username/password exchange. Concurrent callers share
// a single flight so the upstream sees at most one login at a time.
func (o *Orchestrator) login(ctx context.Context) error {
	_, err, _ := o.flight.Do("login", func() (any, error) {
		creds, err := o.source.Login(ctx)
		if err != nil {
			return nil, err
		}
		o.store.Replace(creds)
		authLoginsTotal.Inc()
		o.logger.Debug().Msg("Login exchange succeeded")
		return nil, nil
	})
	return err
}

// refresh exchanges the held refresh token for a new credential pair.
// Shared-flight for the same reason as login: refresh tokens rotate, so a
// duplicate concurrent refresh would present an already-spent token.
func (o *Orchestrator) refresh(ctx context.Context) error {
	_, err, _ := o.flight.Do("refresh", func() (any, error) {
		refreshToken := o.store.Current().RefreshToken
		if refreshToken == "" {
			return nil, ErrNoRefreshToken
		}

		creds, err := o.source.Refresh(ctx, refreshToken)
		if err != nil {
			return nil, err
		}
		o.store.Replace(creds)
		authRefreshesTotal.Inc()
		o.logger.Debug().Msg("Refresh exchange succeeded")
		return nil, nil
	})
	return err
}

// unauthorized matches errors carrying an upstream authentication
// rejection without coupling to the transport package.
type unauthorized interface {
	Unauthorized() bool
}

func isUnauthorized(err error) bool {
	var u unauthorized
	return errors.As(err, &u) && u.Unauthorized()
}
