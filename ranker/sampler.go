package ranker

import (
	"context"
	"math/rand"
	"time"

	"github.com/Maslor/pagerank/graph"
	"golang.org/x/xerrors"
)

// ctxCheckInterval controls how often a running walk polls its context
// for cancellation.
const ctxCheckInterval = 1024

// Sampler estimates PageRank scores by performing a long pseudo-random
// walk over a graph and tallying how often each page gets visited.
//
// Each Sampler owns a private pseudo-random source, so two instances
// created with the same non-zero Seed produce identical walks. A single
// instance must not be shared across concurrent Ranks invocations.
type Sampler struct {
	cfg SamplerConfig
	rng *rand.Rand
}

// NewSampler returns a new Sampler instance using the provided config
// options.
func NewSampler(cfg SamplerConfig) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("sampler config validation failed: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Sampler{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// Ranks walks the graph for the configured number of steps and returns
// the visitation frequency of each page. The walk starts on a page
// chosen uniformly at random; every subsequent page is drawn from the
// transition distribution of the current one.
//
// Each of the n visits attributes exactly 1/n of score mass to one
// page, so the returned vector sums to exactly n/n = 1. The estimate is
// intentionally stochastic: accuracy improves with the sample count but
// repeated calls differ unless the Sampler was created with a fixed
// seed.
func (s *Sampler) Ranks(ctx context.Context, g *graph.Graph) (RankVector, error) {
	if g.NumPages() == 0 {
		return nil, xerrors.Errorf("graph must contain at least one page: %w", ErrInvalidInput)
	}

	var (
		pages   = g.Pages()
		visits  = make(map[graph.Page]int64, len(pages))
		current = pages[s.rng.Intn(len(pages))]

		// The graph is immutable, so the transition distribution of a
		// page never changes within a walk; memoize it instead of
		// rebuilding it on every step.
		distCache = make(map[graph.Page]RankVector, len(pages))
	)

	for step := 0; step < s.cfg.SampleCount; step++ {
		if step%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		visits[current]++

		dist, exists := distCache[current]
		if !exists {
			var err error
			if dist, err = Distribution(g, current, s.cfg.DampingFactor); err != nil {
				return nil, err
			}
			distCache[current] = dist
		}
		current = drawPage(pages, dist, s.rng.Float64())
	}

	estimates := make(RankVector, len(pages))
	for _, page := range pages {
		estimates[page] = float64(visits[page]) / float64(s.cfg.SampleCount)
	}
	return estimates, nil
}

// drawPage maps a uniform random value in [0, 1) onto the discrete
// distribution dist, evaluated over pages in their stable sorted order
// so that a fixed seed yields a fully reproducible walk.
func drawPage(pages []graph.Page, dist RankVector, roll float64) graph.Page {
	var cum float64
	for _, page := range pages {
		cum += dist[page]
		if roll < cum {
			return page
		}
	}
	// Guard against cumulative rounding leaving roll just above the
	// final boundary.
	return pages[len(pages)-1]
}
