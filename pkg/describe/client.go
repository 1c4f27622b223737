// Package describe fetches best-effort textual city descriptions from a
// Wikipedia-style page summary endpoint.
package describe

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cityair/pollution-proxy/pkg/client"
	"github.com/cityair/pollution-proxy/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var lookupFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pollution_description_failures_total",
	Help: "Total failed description lookups",
})

// DefaultBaseURL is the REST page summary endpoint of English Wikipedia.
const DefaultBaseURL = "https://en.wikipedia.org/api/rest_v1/page/summary"

// summary is the subset of the summary payload consumed here.
type summary struct {
	Extract string `json:"extract"`
}

// Client looks up city descriptions. Lookups are unauthenticated and go
// through the same JSON GET primitive as the pollution API.
type Client struct {
	api     *client.Client
	baseURL string
	logger  zerolog.Logger
}

// NewClient creates a description lookup client. An empty baseURL selects
// DefaultBaseURL.
func NewClient(api *client.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		api:     api,
		baseURL: baseURL,
		logger:  logging.NewLogger("describe"),
	}
}

// Summary returns the description text for the given city name. An empty
// string means no description is available. Callers treat errors as "no
// description"; a failed lookup never carries further than the entry it
// was for.
func (c *Client) Summary(ctx context.Context, name string) (string, error) {
	var s summary
	if err := c.api.GetJSON(ctx, c.baseURL+"/"+url.PathEscape(name), "", &s); err != nil {
		lookupFailuresTotal.Inc()
		return "", fmt.Errorf("description lookup %q: %w", name, err)
	}

	c.logger.Debug().Str("city", name).Bool("found", s.Extract != "").Msg("Description lookup")
	return s.Extract, nil
}
