/*
   Implements Google famous and first
   PageRank algorithm https://en.wikipedia.org/wiki/PageRank
*/
package ranker

import (
	"github.com/Maslor/pagerank/graph"
	"golang.org/x/xerrors"
)

/*
   PageRank works by counting the number and quality of links to
   a page to determine a rough estimate of how important the page is.
   The underlying assumption is that more important pages are likely
   to receive more links from other pages.

   To calculate the score for each page in the graph, the algorithms in
   this package utilize the model of the random surfer. Under this
   model, a surfer performs an initial search and lands on a page from
   the graph. From that point on, surfers randomly select one of the
   following two options:

       They can follow any outgoing link from the current page and
       navigate to a new page. Surfers choose this option with a
       predefined probability that we will be referring to with the
       term damping factor.

       Alternatively, they can decide to run a new search query. This
       decision has the effect of teleporting the surfer to a random
       page in the graph.

   The model assumes the preceding steps are repeated in perpetuity, so
   it is equivalent to performing a random walk of the page graph.
   PageRank score values reflect the probability that a surfer lands on
   a particular page. By this definition, we expect the following:

       Each PageRank score should be a value in the [0, 1] range
       The sum of all assigned PageRank scores should be equal to 1

   The package provides two independent estimators for the same
   stationary distribution: Sampler performs a long pseudo-random walk
   and tallies visitation frequencies, while Iterative applies the
   PageRank fixed-point recurrence to convergence. Both operate on an
   immutable graph.Graph and share no mutable state, so they may run
   concurrently.
*/

// ErrInvalidInput is returned when an estimator precondition is
// violated: an empty graph, a damping factor outside (0, 1), a
// non-positive sample count or convergence threshold, or a page that is
// not part of the graph. Estimators fail fast; nothing partial is ever
// returned.
var ErrInvalidInput = xerrors.New("invalid input")

// RankVector maps each page of a graph to its estimated PageRank score.
// A well-formed vector assigns a non-negative score to every page and
// its scores sum to 1.0 within floating-point tolerance.
type RankVector map[graph.Page]float64

// Sum returns the total score mass of the vector.
func (rv RankVector) Sum() float64 {
	var sum float64
	for _, score := range rv {
		sum += score
	}
	return sum
}
