package ranker

import (
	multierror "github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// SamplerConfig encapsulates the parameters for creating a new Sampler
// instance.
type SamplerConfig struct {
	// DampingFactor is the probability that the random surfer will
	// follow one of the outgoing links on the page they are currently
	// visiting instead of teleporting to a random page in the graph.
	//
	// If not specified, a default value of 0.85 will be used instead.
	DampingFactor float64

	// SampleCount is the total number of pages the surfer visits during
	// the walk. Each visit contributes 1/SampleCount to the score of
	// the visited page, so larger values yield more accurate estimates.
	//
	// If not specified, a default value of 10000 will be used instead.
	SampleCount int

	// Seed for the sampler's private pseudo-random source. A non-zero
	// seed makes repeated runs reproducible; when zero, the source is
	// seeded from the wall clock.
	Seed int64
}

// validate checks whether the sampler configuration is valid and sets
// the default values where required.
func (c *SamplerConfig) validate() error {
	var err error
	if c.DampingFactor < 0 || c.DampingFactor >= 1.0 {
		err = multierror.Append(err, xerrors.Errorf("DampingFactor must be in the range (0, 1): %w", ErrInvalidInput))
	} else if c.DampingFactor == 0 {
		c.DampingFactor = 0.85
	}

	if c.SampleCount < 0 {
		err = multierror.Append(err, xerrors.Errorf("SampleCount must be at least 1: %w", ErrInvalidInput))
	} else if c.SampleCount == 0 {
		c.SampleCount = 10000
	}

	return err
}

// IterativeConfig encapsulates the parameters for creating a new
// Iterative solver instance.
type IterativeConfig struct {
	// DampingFactor is the probability that the random surfer will
	// follow one of the outgoing links on the page they are currently
	// visiting instead of teleporting to a random page in the graph.
	//
	// If not specified, a default value of 0.85 will be used instead.
	DampingFactor float64

	// ConvergenceThreshold is the maximum amount any single page's
	// score may change between two consecutive passes for the solver to
	// consider the computation converged. A pass where even one page
	// moves by more than the threshold keeps the solver running.
	//
	// If not specified, a default value of 0.001 will be used instead.
	ConvergenceThreshold float64

	// ComputeWorkers is the number of workers each pass fans page
	// computations out to. The output is independent of the worker
	// count. If not specified, a default value of 1 will be used
	// instead.
	ComputeWorkers int
}

// validate checks whether the solver configuration is valid and sets
// the default values where required.
func (c *IterativeConfig) validate() error {
	var err error
	if c.DampingFactor < 0 || c.DampingFactor >= 1.0 {
		err = multierror.Append(err, xerrors.Errorf("DampingFactor must be in the range (0, 1): %w", ErrInvalidInput))
	} else if c.DampingFactor == 0 {
		c.DampingFactor = 0.85
	}

	if c.ConvergenceThreshold < 0 || c.ConvergenceThreshold >= 1.0 {
		err = multierror.Append(err, xerrors.Errorf("ConvergenceThreshold must be in the range (0, 1): %w", ErrInvalidInput))
	} else if c.ConvergenceThreshold == 0 {
		c.ConvergenceThreshold = 0.001
	}

	if c.ComputeWorkers <= 0 {
		c.ComputeWorkers = 1
	}

	return err
}
