package host

import (
	"context"
	"errors"
	"testing"

	"github.com/gotsc/gotsc/internal/checker"
	"github.com/gotsc/gotsc/internal/config"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

type stubResolver struct{}

func (stubResolver) Resolve(uint32) (types.TypeId, bool)                     { return 0, false }
func (stubResolver) TypeParams(uint32) ([]interner.TypeParamInfo, bool) { return nil, false }

func TestRunReturnsOneOutcomePerJobInOrder(t *testing.T) {
	h := New(2)
	jobs := []Job{
		{File: "a.ts", Resolver: stubResolver{}, Opts: config.Default(), Run: func(c *checker.Checker) error {
			c.Run.Report(diagnostics.New(diagnostics.CannotFindName, "a.ts", diagnostics.Position{Line: 1, Column: 1}, "Cannot find name '%s'.", "a"))
			return nil
		}},
		{File: "b.ts", Resolver: stubResolver{}, Opts: config.Default(), Run: func(c *checker.Checker) error {
			return nil
		}},
	}
	outcomes, err := h.Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].File != "a.ts" || len(outcomes[0].Diagnostics) != 1 {
		t.Fatalf("expected a.ts with 1 diagnostic, got %+v", outcomes[0])
	}
	if outcomes[1].File != "b.ts" || len(outcomes[1].Diagnostics) != 0 {
		t.Fatalf("expected b.ts with no diagnostics, got %+v", outcomes[1])
	}
}

func TestRunGivesEachJobADistinctRunID(t *testing.T) {
	h := New(4)
	jobs := []Job{
		{File: "a.ts", Resolver: stubResolver{}, Opts: config.Default(), Run: func(c *checker.Checker) error { return nil }},
		{File: "b.ts", Resolver: stubResolver{}, Opts: config.Default(), Run: func(c *checker.Checker) error { return nil }},
	}
	outcomes, err := h.Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcomes[0].RunID == outcomes[1].RunID {
		t.Fatalf("expected distinct RunIDs across jobs")
	}
}

func TestRunCapturesPerJobErrorWithoutAbortingSiblings(t *testing.T) {
	h := New(2)
	boom := errors.New("boom")
	jobs := []Job{
		{File: "a.ts", Resolver: stubResolver{}, Opts: config.Default(), Run: func(c *checker.Checker) error { return boom }},
		{File: "b.ts", Resolver: stubResolver{}, Opts: config.Default(), Run: func(c *checker.Checker) error { return nil }},
	}
	outcomes, err := h.Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("unexpected top-level error: %v", err)
	}
	if outcomes[0].Err != boom {
		t.Fatalf("expected job a's error to be captured, got %v", outcomes[0].Err)
	}
	if outcomes[1].Err != nil {
		t.Fatalf("expected job b to succeed despite job a's error, got %v", outcomes[1].Err)
	}
}

func TestNewFallsBackToDefaultMaxParallel(t *testing.T) {
	h := New(0)
	if h.MaxParallel != DefaultMaxParallel {
		t.Fatalf("expected MaxParallel to default to %d, got %d", DefaultMaxParallel, h.MaxParallel)
	}
}
