package ranker

import (
	"context"
	"math"
	"sync"

	"github.com/Maslor/pagerank/graph"
	"github.com/Maslor/pagerank/ranker/aggregators"
	"golang.org/x/xerrors"
)

// Iterative estimates PageRank scores by applying the fixed-point
// recurrence
//
//	rank(p) = (1-d)/N + d * Σ rank(i)/L(i)
//
// over the full graph until the desired level of convergence is
// reached, where the sum ranges over the pages linking to p and L(i) is
// the effective out-degree of page i. Unlike Sampler, the computation
// involves no randomness and always yields the same output for the same
// graph and configuration.
//
// Iterative instances are stateless and safe for concurrent use.
type Iterative struct {
	cfg IterativeConfig
}

// NewIterative returns a new Iterative solver instance using the
// provided config options.
func NewIterative(cfg IterativeConfig) (*Iterative, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("iterative solver config validation failed: %w", err)
	}
	return &Iterative{cfg: cfg}, nil
}

// Ranks runs the solver over g and returns the converged rank vector.
//
// Every page starts with rank 1/N. Each pass recomputes every page's
// rank from a frozen snapshot of the previous pass's values so that the
// result does not depend on page processing order, then checks the full
// set of deltas: the loop terminates only once no page moved by more
// than the configured threshold within a single pass. The rank mass of
// dangling nodes is folded into every page's score on the next pass.
func (it *Iterative) Ranks(ctx context.Context, g *graph.Graph) (RankVector, error) {
	if g.NumPages() == 0 {
		return nil, xerrors.Errorf("graph must contain at least one page: %w", ErrInvalidInput)
	}

	pages := g.Pages()
	if len(pages) == 1 {
		// A single page trivially accumulates the entire score mass.
		return RankVector{pages[0]: 1.0}, nil
	}

	var (
		d        = it.cfg.DampingFactor
		numPages = float64(len(pages))
		jumpProb = (1.0 - d) / numPages
	)

	// Index the graph once up front: the recurrence consumes incoming
	// links, so each pass reads the precomputed reverse adjacency
	// instead of rescanning the whole graph.
	index := make(map[graph.Page]int, len(pages))
	for i, page := range pages {
		index[page] = i
	}
	var (
		inLinks  = make([][]int, len(pages))
		outDeg   = make([]float64, len(pages))
		dangling = make([]bool, len(pages))
	)
	for i, page := range pages {
		outDeg[i] = float64(g.EffectiveOutDegree(page))
		dangling[i] = g.IsDangling(page)
		in := g.InLinks(page)
		sources := make([]int, len(in))
		for j, src := range in {
			sources[j] = index[src]
		}
		inLinks[i] = sources
	}

	prev := make([]float64, len(pages))
	next := make([]float64, len(pages))
	for i := range prev {
		prev[i] = 1.0 / numPages
	}

	// Dangling nodes cannot enumerate their (implicit) links to every
	// page; instead their residual score mass is accumulated while a
	// pass runs and folded into all scores computed by the following
	// pass. Two accumulators alternate between the residual being read
	// and the one being written.
	var residual [2]aggregators.Float64Aggregator
	for _, page := range g.DanglingPages() {
		residual[0].Aggregate(prev[index[page]] / numPages)
	}

	unstable := new(aggregators.IntAggregator)

	for pass := 0; ; pass++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resIn := residual[pass%2].Get().(float64)
		resOut := &residual[(pass+1)%2]
		resOut.Set(0.0)
		unstable.Set(0)

		pageCh := make(chan int)
		var wg sync.WaitGroup
		wg.Add(it.cfg.ComputeWorkers)
		for w := 0; w < it.cfg.ComputeWorkers; w++ {
			go func() {
				defer wg.Done()
				for i := range pageCh {
					score := jumpProb + d*resIn
					for _, src := range inLinks[i] {
						score += d * prev[src] / outDeg[src]
					}
					next[i] = score

					if math.Abs(score-prev[i]) > it.cfg.ConvergenceThreshold {
						unstable.Aggregate(1)
					}
					if dangling[i] {
						resOut.Aggregate(score / numPages)
					}
				}
			}()
		}
		for i := range pages {
			pageCh <- i
		}
		close(pageCh)
		wg.Wait()

		prev, next = next, prev

		// A pass where even a single page moved past the threshold
		// keeps the whole computation running; only a pass with zero
		// unstable pages terminates it.
		if unstable.Get().(int) == 0 {
			break
		}
	}

	ranks := make(RankVector, len(pages))
	for i, page := range pages {
		ranks[page] = prev[i]
	}
	return ranks, nil
}
