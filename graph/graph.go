// Package graph models an immutable directed graph of hyperlinked
// pages. It is the leaf dependency for every rank estimator: graphs are
// constructed once from an already-materialized corpus and never
// mutated afterwards.
package graph

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/xerrors"
)

// ErrInconsistentGraph is returned by New when a link target does not
// exist as a page of the corpus. Out-of-corpus links must be filtered
// by the caller before construction; surfacing them as an error instead
// of silently dropping them avoids masking upstream bugs.
var ErrInconsistentGraph = xerrors.New("link target is not part of the corpus")

// Page is an opaque, unique page identifier. It carries no structure
// beyond its identity.
type Page string

// Graph is an immutable directed graph: the node set is the set of page
// identifiers and the edge set the intra-corpus hyperlinks between
// them. A page with no outgoing links is a dangling node and is treated
// as if it linked to every page in the graph (itself included); that
// convention is centralized in the Effective* accessors so that every
// consumer shares the same dangling-node semantics.
//
// All accessor methods return copies; a Graph is safe for concurrent
// use without synchronization.
type Graph struct {
	pages    []Page
	out      map[Page][]Page
	in       map[Page][]Page
	dangling []Page
}

// New constructs a Graph from the provided adjacency mapping. Duplicate
// out-links are collapsed and page iteration order is fixed by sorting
// the page names. Every link target must appear as a key of adjacency;
// otherwise New fails with an error wrapping ErrInconsistentGraph.
func New(adjacency map[Page][]Page) (*Graph, error) {
	g := &Graph{
		pages: make([]Page, 0, len(adjacency)),
		out:   make(map[Page][]Page, len(adjacency)),
		in:    make(map[Page][]Page, len(adjacency)),
	}

	corpus := mapset.NewThreadUnsafeSet[Page]()
	for page := range adjacency {
		g.pages = append(g.pages, page)
		corpus.Add(page)
	}
	sort.Slice(g.pages, func(i, j int) bool { return g.pages[i] < g.pages[j] })

	for _, src := range g.pages {
		links := mapset.NewThreadUnsafeSet[Page]()
		for _, dst := range adjacency[src] {
			if !corpus.Contains(dst) {
				return nil, xerrors.Errorf("add link from %q to %q: %w", src, dst, ErrInconsistentGraph)
			}
			links.Add(dst)
		}

		out := links.ToSlice()
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		g.out[src] = out
		for _, dst := range out {
			g.in[dst] = append(g.in[dst], src)
		}

		if len(out) == 0 {
			g.dangling = append(g.dangling, src)
		}
	}

	return g, nil
}

// NumPages returns the number of pages in the graph.
func (g *Graph) NumPages() int { return len(g.pages) }

// Pages returns the full page set in sorted order.
func (g *Graph) Pages() []Page {
	return append([]Page(nil), g.pages...)
}

// HasPage returns true if page is part of the graph.
func (g *Graph) HasPage(page Page) bool {
	_, exists := g.out[page]
	return exists
}

// OutLinks returns the raw outgoing links of page in sorted order. For
// dangling nodes the returned list is empty; see EffectiveOutLinks.
func (g *Graph) OutLinks(page Page) []Page {
	return append([]Page(nil), g.out[page]...)
}

// OutDegree returns the raw number of outgoing links of page.
func (g *Graph) OutDegree(page Page) int { return len(g.out[page]) }

// IsDangling returns true if page is part of the graph and has no
// outgoing links.
func (g *Graph) IsDangling(page Page) bool {
	links, exists := g.out[page]
	return exists && len(links) == 0
}

// EffectiveOutLinks returns the outgoing links of page after applying
// the dangling-node convention: a page with no raw out-links is treated
// as linking to every page in the graph, itself included.
func (g *Graph) EffectiveOutLinks(page Page) []Page {
	if g.IsDangling(page) {
		return g.Pages()
	}
	return g.OutLinks(page)
}

// EffectiveOutDegree returns the number of effective outgoing links of
// page; it equals NumPages for dangling nodes.
func (g *Graph) EffectiveOutDegree(page Page) int {
	if g.IsDangling(page) {
		return len(g.pages)
	}
	return len(g.out[page])
}

// InLinks returns the pages whose raw out-links include page, in sorted
// order. Dangling nodes are not part of the returned list even though
// they contribute rank mass to every page; callers fold that mass in
// separately via DanglingPages.
func (g *Graph) InLinks(page Page) []Page {
	return append([]Page(nil), g.in[page]...)
}

// DanglingPages returns the pages with no outgoing links in sorted
// order.
func (g *Graph) DanglingPages() []Page {
	return append([]Page(nil), g.dangling...)
}
