package cities

import (
	"context"

	"github.com/cityair/pollution-proxy/pkg/client"
	"github.com/cityair/pollution-proxy/pkg/logging"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultEnrichConcurrency bounds the description lookup fan-out.
const DefaultEnrichConcurrency = 8

// Describer provides best-effort city descriptions.
type Describer interface {
	Summary(ctx context.Context, name string) (string, error)
}

// Pipeline cleans one raw upstream page into a PageResult: it drops
// corrupted entries, normalizes the survivors, and enriches them with
// descriptions. The transformation is order-preserving; entries are
// dropped whole, never merged or split.
type Pipeline struct {
	describer   Describer
	concurrency int
	logger      zerolog.Logger
}

// NewPipeline creates a cleaning pipeline. A nil describer disables
// enrichment; every description stays nil.
func NewPipeline(describer Describer) *Pipeline {
	return &Pipeline{
		describer:   describer,
		concurrency: DefaultEnrichConcurrency,
		logger:      logging.NewLogger("cleaning"),
	}
}

// Clean filters, normalizes, and enriches one raw page. Limit echoes the
// originally requested page size; Count reflects the survivors.
func (p *Pipeline) Clean(ctx context.Context, page *client.PollutionPage, limit int) *PageResult {
	cleaned := make([]City, 0, len(page.Results))
	for _, raw := range page.Results {
		if rejectName(raw.Name) {
			p.logger.Debug().Str("name", raw.Name).Msg("Dropping corrupted entry")
			continue
		}
		cleaned = append(cleaned, City{
			Name:      NormalizeName(raw.Name),
			Pollution: raw.Pollution,
		})
	}

	p.enrich(ctx, cleaned)

	return &PageResult{
		Page:   page.Meta.Page,
		Count:  len(cleaned),
		Limit:  limit,
		Cities: cleaned,
	}
}

// enrich fills in descriptions with a bounded concurrent fan-out, joining
// on completion of all lookups. A failed lookup leaves that entry's
// description nil and never cancels its siblings: workers absorb lookup
// errors instead of returning them.
func (p *Pipeline) enrich(ctx context.Context, cities []City) {
	if p.describer == nil || len(cities) == 0 {
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)

	for i := range cities {
		city := &cities[i]
		g.Go(func() error {
			extract, err := p.describer.Summary(ctx, city.Name)
			if err != nil {
				p.logger.Warn().Err(err).Str("city", city.Name).Msg("Description lookup failed")
				return nil
			}
			if extract != "" {
				city.Description = &extract
			}
			return nil
		})
	}

	// Workers never return errors, so Wait only joins.
	_ = g.Wait()
}
