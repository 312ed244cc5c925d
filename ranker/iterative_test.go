package ranker_test

import (
	"context"
	"math"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	gc "gopkg.in/check.v1"

	"github.com/Maslor/pagerank/graph"
	"github.com/Maslor/pagerank/ranker"
)

var _ = gc.Suite(new(IterativeTestSuite))

type IterativeTestSuite struct{}

type topologySpec struct {
	descr     string
	adjacency map[graph.Page][]graph.Page
	expScores map[graph.Page]float64
}

func (s *IterativeTestSuite) TestSymmetricPair(c *gc.C) {
	s.assertScores(c, topologySpec{
		descr: `
 (A) <-> (B)

Expect the score to split evenly between the two pages.
`,
		adjacency: map[graph.Page][]graph.Page{
			"a.html": {"b.html"},
			"b.html": {"a.html"},
		},
		expScores: map[graph.Page]float64{
			"a.html": 0.5,
			"b.html": 0.5,
		},
	})
}

func (s *IterativeTestSuite) TestSymmetricCycle(c *gc.C) {
	s.assertScores(c, topologySpec{
		descr: `
 (A) -> (B) -> (C)
  ^             |
  +-------------+

Expect the score to be distributed evenly across the three pages.
`,
		adjacency: map[graph.Page][]graph.Page{
			"a.html": {"b.html"},
			"b.html": {"c.html"},
			"c.html": {"a.html"},
		},
		expScores: map[graph.Page]float64{
			"a.html": 1.0 / 3.0,
			"b.html": 1.0 / 3.0,
			"c.html": 1.0 / 3.0,
		},
	})
}

func (s *IterativeTestSuite) TestChainWithDanglingSink(c *gc.C) {
	s.assertScores(c, topologySpec{
		descr: `
 (A) -> (B) -> (C)

C has no outgoing links, so its score mass redistributes uniformly
across all pages on every pass. The expected values solve the rank
recurrence analytically for dampingFactor=0.85.
`,
		adjacency: map[graph.Page][]graph.Page{
			"a.html": {"b.html"},
			"b.html": {"c.html"},
			"c.html": nil,
		},
		expScores: map[graph.Page]float64{
			"a.html": 0.1844,
			"b.html": 0.3412,
			"c.html": 0.4744,
		},
	})
}

func (s *IterativeTestSuite) TestSingleIsolatedPage(c *gc.C) {
	solver, err := ranker.NewIterative(ranker.IterativeConfig{})
	c.Assert(err, gc.IsNil)

	ranks, err := solver.Ranks(context.Background(), mustGraph(c, map[graph.Page][]graph.Page{"only.html": nil}))
	c.Assert(err, gc.IsNil)
	c.Assert(ranks["only.html"], gc.Equals, 1.0)
}

func (s *IterativeTestSuite) TestNormalization(c *gc.C) {
	g := mustGraph(c, map[graph.Page][]graph.Page{
		"1.html": {"2.html", "3.html"},
		"2.html": {"4.html"},
		"3.html": nil,
		"4.html": {"1.html", "3.html"},
		"5.html": {"1.html"},
	})

	solver, err := ranker.NewIterative(ranker.IterativeConfig{})
	c.Assert(err, gc.IsNil)

	ranks, err := solver.Ranks(context.Background(), g)
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.HasLen, g.NumPages())
	c.Assert(math.Abs(ranks.Sum()-1.0) < 1e-6, gc.Equals, true,
		gc.Commentf("ranks sum to %v", ranks.Sum()))
}

func (s *IterativeTestSuite) TestDeterminism(c *gc.C) {
	g := mustGraph(c, map[graph.Page][]graph.Page{
		"1.html": {"2.html"},
		"2.html": {"1.html", "3.html"},
		"3.html": nil,
	})

	solver, err := ranker.NewIterative(ranker.IterativeConfig{})
	c.Assert(err, gc.IsNil)

	first, err := solver.Ranks(context.Background(), g)
	c.Assert(err, gc.IsNil)
	second, err := solver.Ranks(context.Background(), g)
	c.Assert(err, gc.IsNil)

	// No randomness is involved: a sequential solver is bit-identical
	// across runs.
	c.Assert(first, gc.DeepEquals, second)
}

func (s *IterativeTestSuite) TestWorkerCountInvariance(c *gc.C) {
	g := mustGraph(c, map[graph.Page][]graph.Page{
		"1.html": {"2.html", "5.html"},
		"2.html": {"1.html", "3.html"},
		"3.html": nil,
		"4.html": {"2.html"},
		"5.html": {"4.html", "3.html"},
	})

	ranksWithWorkers := func(workers int) ranker.RankVector {
		solver, err := ranker.NewIterative(ranker.IterativeConfig{ComputeWorkers: workers})
		c.Assert(err, gc.IsNil)
		ranks, err := solver.Ranks(context.Background(), g)
		c.Assert(err, gc.IsNil)
		return ranks
	}

	sequential := ranksWithWorkers(1)
	parallel := ranksWithWorkers(4)
	for _, page := range g.Pages() {
		assertScore(c, parallel, page, sequential[page], 1e-9)
	}
}

func (s *IterativeTestSuite) TestAgainstReferenceImplementation(c *gc.C) {
	// Cross-check the solver against gonum's PageRank on a graph where
	// every node has at least one outgoing link, so no dangling-node
	// convention is involved.
	adjacency := map[graph.Page][]graph.Page{
		"p0": {"p1", "p2"},
		"p1": {"p2", "p3"},
		"p2": {"p3", "p4"},
		"p3": {"p1", "p4"},
		"p4": {"p0"},
	}
	g := mustGraph(c, adjacency)

	ref := simple.NewDirectedGraph()
	ids := map[graph.Page]int64{"p0": 0, "p1": 1, "p2": 2, "p3": 3, "p4": 4}
	for src, dsts := range adjacency {
		for _, dst := range dsts {
			ref.SetEdge(simple.Edge{F: simple.Node(ids[src]), T: simple.Node(ids[dst])})
		}
	}
	expScores := network.PageRank(ref, 0.85, 1e-9)

	solver, err := ranker.NewIterative(ranker.IterativeConfig{ConvergenceThreshold: 1e-9})
	c.Assert(err, gc.IsNil)
	ranks, err := solver.Ranks(context.Background(), g)
	c.Assert(err, gc.IsNil)

	for page, id := range ids {
		assertScore(c, ranks, page, expScores[id], 1e-4)
	}
}

func (s *IterativeTestSuite) TestInvalidInput(c *gc.C) {
	_, err := ranker.NewIterative(ranker.IterativeConfig{DampingFactor: -1})
	c.Assert(err, gc.NotNil)
	c.Assert(xerrors.Is(err, ranker.ErrInvalidInput), gc.Equals, true)

	_, err = ranker.NewIterative(ranker.IterativeConfig{ConvergenceThreshold: 2})
	c.Assert(err, gc.NotNil)
	c.Assert(xerrors.Is(err, ranker.ErrInvalidInput), gc.Equals, true)

	solver, err := ranker.NewIterative(ranker.IterativeConfig{})
	c.Assert(err, gc.IsNil)
	_, err = solver.Ranks(context.Background(), mustGraph(c, nil))
	c.Assert(xerrors.Is(err, ranker.ErrInvalidInput), gc.Equals, true)
}

func (s *IterativeTestSuite) TestCancellation(c *gc.C) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver, err := ranker.NewIterative(ranker.IterativeConfig{})
	c.Assert(err, gc.IsNil)

	_, err = solver.Ranks(ctx, mustGraph(c, map[graph.Page][]graph.Page{
		"a.html": {"b.html"},
		"b.html": {"a.html"},
	}))
	c.Assert(err, gc.Equals, context.Canceled)
}

func (s *IterativeTestSuite) assertScores(c *gc.C, spec topologySpec) {
	c.Log(spec.descr)

	solver, err := ranker.NewIterative(ranker.IterativeConfig{ConvergenceThreshold: 1e-6})
	c.Assert(err, gc.IsNil)

	ranks, err := solver.Ranks(context.Background(), mustGraph(c, spec.adjacency))
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.HasLen, len(spec.expScores))

	for page, exp := range spec.expScores {
		assertScore(c, ranks, page, exp, 1e-3)
	}
	c.Assert(math.Abs(ranks.Sum()-1.0) < 1e-6, gc.Equals, true,
		gc.Commentf("ranks sum to %v", ranks.Sum()))
}
