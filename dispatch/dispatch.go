// Package dispatch maps one lifecycle command plus a resolved VM name set to
// hypervisor invocations. Failures are collected per VM instead of aborting
// the run: every target is processed, and the caller decides the exit status
// from the summary.
package dispatch

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"
	"golang.org/x/sync/errgroup"

	"github.com/projecteru2/corral/hypervisor"
	"github.com/projecteru2/corral/types"
)

// CommandStart is the only lifecycle command that is not a controlvm action.
const CommandStart = "start"

// Supported reports whether command maps to a hypervisor invocation.
func Supported(command string) bool {
	return command == CommandStart || hypervisor.IsControlAction(command)
}

// Run dispatches command to every name, in order, and returns one Result per
// name. An unsupported command is reported and skipped without error — it
// must not abort targets handled earlier in the same run. parallel caps
// concurrent invocations; values below 2 keep the strict sequential order.
func Run(ctx context.Context, hyper hypervisor.Hypervisor, command string, names []string, parallel int) []types.Result {
	logger := log.WithFunc("dispatch.Run")
	if !Supported(command) {
		logger.Warnf(ctx, "command %q not supported, skipping %d target(s)", command, len(names))
		return nil
	}

	invoke := func(ctx context.Context, name string) error {
		if command == CommandStart {
			return hyper.Start(ctx, name)
		}
		return hyper.Control(ctx, name, hypervisor.Action(command))
	}

	results := make([]types.Result, len(names))
	if parallel < 2 { //nolint:mnd
		for i, name := range names {
			results[i] = types.Result{Name: name, Err: invoke(ctx, name)}
		}
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, name := range names {
		g.Go(func() error {
			results[i] = types.Result{Name: name, Err: invoke(gctx, name)}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results
	return results
}

// Summarize reduces per-VM results to the run outcome: nil when everything
// succeeded (or nothing matched), an error naming the failures otherwise.
func Summarize(command string, results []types.Result) error {
	failed := types.Failed(results)
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%s failed for %d of %d target(s): %v", command, len(failed), len(results), failed)
}
