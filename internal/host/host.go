// Package host runs several independent compilations concurrently, each
// owning its own interner, resolver, and checker instance (spec.md §5:
// "a host … may run multiple compilations in parallel, each owning a
// private interner, binder, checker"), and aggregates their diagnostics
// into one combined report. Grounded on the teacher's runGoimports
// (internal/o2o/rewrite/rewrite.go): an errgroup bounded by a semaphore
// channel, one goroutine per unit of work, results collected by index
// rather than over a channel so each result lands at a stable position.
package host

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gotsc/gotsc/internal/checker"
	"github.com/gotsc/gotsc/internal/config"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// DefaultMaxParallel bounds concurrent compilations when a Host is built
// with MaxParallel <= 0.
const DefaultMaxParallel = 8

// Job is one independent compilation: its own file name (for the
// resulting diagnostics), the resolver backing its binder, the posture
// to check it under, and the work to run once a private Builder and
// Checker exist for it.
type Job struct {
	File     string
	Resolver checker.Resolver
	Opts     config.CheckerOptions

	// Run receives a Checker bound to a fresh, job-private Builder and
	// reports diagnostics against c.Run. Any error it returns is recorded
	// on the corresponding Outcome rather than aborting sibling jobs —
	// one file failing to parse or bind does not stop the rest of the
	// batch from being checked.
	Run func(c *checker.Checker) error
}

// Outcome is one Job's result: the RunID its CheckRun was stamped with
// (so a caller correlating diagnostics across a batch can tell which
// compilation produced which), the deduplicated, sorted diagnostics, and
// any error Run itself returned.
type Outcome struct {
	File        string
	RunID       uuid.UUID
	Diagnostics []*diagnostics.DiagnosticError
	Err         error
}

// Host dispatches Jobs across at most MaxParallel goroutines.
type Host struct {
	MaxParallel int
}

// New creates a Host bounded to maxParallel concurrent compilations;
// maxParallel <= 0 falls back to DefaultMaxParallel.
func New(maxParallel int) *Host {
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}
	return &Host{MaxParallel: maxParallel}
}

// Run executes every job, each against its own private interner and
// Checker, bounded to h.MaxParallel concurrent compilations. Results are
// returned in the same order as jobs regardless of completion order. A
// job's own Run error never aborts its siblings; Run itself only
// returns a non-nil error for something outside any single job (ctx
// cancellation).
func (h *Host) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	maxParallel := h.MaxParallel
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}

	outcomes := make([]Outcome, len(jobs))
	sem := make(chan struct{}, maxParallel)
	eg, egCtx := errgroup.WithContext(ctx)

	for i, job := range jobs {
		i, job := i, job
		eg.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-egCtx.Done():
				return egCtx.Err()
			}
			defer func() { <-sem }()

			b := types.New(interner.New())
			run := diagnostics.NewCheckRun()
			c := checker.New(b, job.Resolver, job.Opts, run)

			runErr := job.Run(c)
			outcomes[i] = Outcome{
				File:        job.File,
				RunID:       run.RunID,
				Diagnostics: run.Errors(),
				Err:         runErr,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
