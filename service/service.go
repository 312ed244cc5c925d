package service

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// Service is implemented by batch computations that run to completion.
type Service interface {
	Name() string

	// Run executes the service and blocks until it completes, the
	// context gets cancelled or an error occurs.
	Run(context.Context) error
}

// Group runs a set of independent Service instances concurrently.
type Group []Service

// Run executes all Service instances in the group using the provided
// context. Calls to Run block until every service has completed. The
// first service error cancels the shared context so the remaining
// services can abort early; all reported errors are collected and
// returned together.
func (g Group) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, len(g))
	wg.Add(len(g))
	for _, s := range g {
		go func(s Service) {
			defer wg.Done()
			if err := s.Run(runCtx); err != nil {
				errCh <- xerrors.Errorf("%s: %w", s.Name(), err)
				cancel()
			}
		}(s)
	}

	wg.Wait()

	var err error
	close(errCh)
	for svcErr := range errCh {
		err = multierror.Append(err, svcErr)
	}
	return err
}
