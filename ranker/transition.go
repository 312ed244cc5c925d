package ranker

import (
	"github.com/Maslor/pagerank/graph"
	"golang.org/x/xerrors"
)

// Distribution returns the one-step transition distribution of the
// damped random surfer standing on page: with probability dampingFactor
// the surfer follows one of the page's effective outgoing links
// (selected uniformly) and with probability 1-dampingFactor teleports
// to a page chosen uniformly from the whole graph.
//
// The returned vector is a complete probability distribution: it
// contains every page of the graph exactly once and its values sum to
// 1.0 within floating-point tolerance. Dangling nodes follow the
// convention applied by graph.EffectiveOutLinks, so their distribution
// is uniform across all pages.
func Distribution(g *graph.Graph, page graph.Page, dampingFactor float64) (RankVector, error) {
	if g.NumPages() == 0 {
		return nil, xerrors.Errorf("graph must contain at least one page: %w", ErrInvalidInput)
	}
	if dampingFactor <= 0 || dampingFactor >= 1 {
		return nil, xerrors.Errorf("damping factor %v must be in the range (0, 1): %w", dampingFactor, ErrInvalidInput)
	}
	if !g.HasPage(page) {
		return nil, xerrors.Errorf("page %q is not part of the graph: %w", page, ErrInvalidInput)
	}

	var (
		numPages = float64(g.NumPages())
		jumpProb = (1.0 - dampingFactor) / numPages
		dist     = make(RankVector, g.NumPages())
	)
	for _, p := range g.Pages() {
		dist[p] = jumpProb
	}

	links := g.EffectiveOutLinks(page)
	followProb := dampingFactor / float64(len(links))
	for _, dst := range links {
		dist[dst] += followProb
	}

	return dist, nil
}
