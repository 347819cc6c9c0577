package cli

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/yakstack/internal/engine"
	"github.com/roach88/yakstack/internal/store"
)

// thresholdTimeout bounds how long commands wait for historical replay.
const thresholdTimeout = 30 * time.Second

// withEngine opens the store, ensures a default yak, runs a materialization
// engine until the replay threshold, executes fn against it, and shuts the
// loop down.
//
// Commands that only need raw log access (e.g. log) open the store directly
// instead.
func withEngine(ctx context.Context, opts *RootOptions, fn func(ctx context.Context, e *engine.Engine) error) error {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer s.Close()

	if _, err := s.EnsureDefaultYak(ctx); err != nil {
		return WrapExitError(ExitCommandError, "initialize store", err)
	}

	e := engine.New(s)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error { return e.Run(gCtx) })

	ferr := waitThreshold(gCtx, e)
	if ferr == nil {
		ferr = fn(gCtx, e)
	}

	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && ferr == nil {
		ferr = err
	}
	e.Wait()
	return ferr
}

// waitThreshold polls until historical replay has completed.
func waitThreshold(ctx context.Context, e *engine.Engine) error {
	tick := time.NewTicker(5 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(thresholdTimeout)

	for !e.ThresholdReached() {
		select {
		case <-ctx.Done():
			return WrapExitError(ExitCommandError, "engine stopped during replay", ctx.Err())
		case <-deadline:
			return NewExitError(ExitCommandError, "timed out waiting for replay threshold")
		case <-tick.C:
		}
	}
	return nil
}
