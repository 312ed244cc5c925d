package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/Maslor/pagerank/corpus"
	"github.com/Maslor/pagerank/graph"
	"github.com/Maslor/pagerank/ranker"
	"github.com/Maslor/pagerank/service"
)

var appName = "pagerank"

func main() {
	logger := logrus.New().WithField("app", appName)
	if err := run(logger); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		os.Exit(1)
	}
}

func run(logger *logrus.Entry) error {
	var (
		samplerCfg   ranker.SamplerConfig
		iterativeCfg ranker.IterativeConfig
		verbose      bool
	)

	flag.Float64Var(&samplerCfg.DampingFactor, "damping-factor", 0.85, "The probability that the random surfer follows a link instead of jumping to a random page")
	flag.IntVar(&samplerCfg.SampleCount, "sample-count", 10000, "The number of pages the sampling estimator visits during its random walk")
	flag.Int64Var(&samplerCfg.Seed, "sampler-seed", 0, "The seed for the sampling estimator's random source; 0 seeds it from the wall clock")
	flag.Float64Var(&iterativeCfg.ConvergenceThreshold, "convergence-threshold", 0.001, "The maximum per-page rank change for the iterative solver to consider a pass converged")
	flag.IntVar(&iterativeCfg.ComputeWorkers, "ranker-num-workers", runtime.NumCPU(), "The number of workers to use for iterative rank passes (defaults to number of CPUs)")
	flag.BoolVar(&verbose, "verbose", false, "Log corpus crawl progress")
	flag.Parse()
	iterativeCfg.DampingFactor = samplerCfg.DampingFactor

	if flag.NArg() != 1 {
		return xerrors.Errorf("usage: %s [flags] CORPUS_DIR", appName)
	}
	if verbose {
		logger.Logger.SetLevel(logrus.DebugLevel)
	}

	pageGraph, err := corpus.Crawl(corpus.Config{
		Dir:    flag.Arg(0),
		Logger: logger.WithField("component", "corpus"),
	})
	if err != nil {
		return err
	}

	sampler, err := ranker.NewSampler(samplerCfg)
	if err != nil {
		return err
	}
	iterative, err := ranker.NewIterative(iterativeCfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGHUP)
	defer cancel()

	// The two estimators share no mutable state; run them concurrently.
	var sampled, iterated ranker.RankVector
	svcGroup := service.Group{
		rankerService{name: "sampler", fn: func(ctx context.Context) error {
			var rankErr error
			sampled, rankErr = sampler.Ranks(ctx, pageGraph)
			return rankErr
		}},
		rankerService{name: "iterative", fn: func(ctx context.Context) error {
			var rankErr error
			iterated, rankErr = iterative.Ranks(ctx, pageGraph)
			return rankErr
		}},
	}
	if err := svcGroup.Run(ctx); err != nil {
		return err
	}

	printRanks(fmt.Sprintf("PageRank Results from Sampling (n = %d)", samplerCfg.SampleCount), sampled)
	printRanks("PageRank Results from Iteration", iterated)
	return nil
}

// rankerService adapts a rank computation closure to the service.Service
// interface.
type rankerService struct {
	name string
	fn   func(context.Context) error
}

func (s rankerService) Name() string                  { return s.name }
func (s rankerService) Run(ctx context.Context) error { return s.fn(ctx) }

func printRanks(header string, ranks ranker.RankVector) {
	pages := make([]string, 0, len(ranks))
	for page := range ranks {
		pages = append(pages, string(page))
	}
	sort.Strings(pages)

	fmt.Println(header)
	for _, page := range pages {
		fmt.Printf("  %s: %.4f\n", page, ranks[graph.Page(page)])
	}
}
