package diagnostics

import "testing"

func TestErrorSubstitutesInserts(t *testing.T) {
	err := New(CannotFindName, "a.ts", Position{Line: 3, Column: 5}, "Cannot find name '%s'.", "foo")
	want := "a.ts:3:5 - TS2304 Cannot find name 'foo'."
	if got := err.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCheckRunDeduplicatesByPositionAndCode(t *testing.T) {
	run := NewCheckRun()
	run.Report(New(NotAssignable, "a.ts", Position{Line: 1, Column: 1}, "first"))
	run.Report(New(NotAssignable, "a.ts", Position{Line: 1, Column: 1}, "second"))
	errs := run.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected dedup to collapse to 1 error, got %d", len(errs))
	}
	if errs[0].Message != "second" {
		t.Fatalf("expected the later report to win, got %q", errs[0].Message)
	}
}

func TestCheckRunSortsByFileThenPosition(t *testing.T) {
	run := NewCheckRun()
	run.Report(New(CannotFindName, "b.ts", Position{Line: 1, Column: 1}, "b"))
	run.Report(New(CannotFindName, "a.ts", Position{Line: 5, Column: 1}, "a-later"))
	run.Report(New(CannotFindName, "a.ts", Position{Line: 2, Column: 1}, "a-earlier"))
	errs := run.Errors()
	if len(errs) != 3 {
		t.Fatalf("expected 3 distinct errors, got %d", len(errs))
	}
	if errs[0].File != "a.ts" || errs[0].Message != "a-earlier" {
		t.Fatalf("expected a.ts line 2 first, got %+v", errs[0])
	}
	if errs[1].File != "a.ts" || errs[1].Message != "a-later" {
		t.Fatalf("expected a.ts line 5 second, got %+v", errs[1])
	}
	if errs[2].File != "b.ts" {
		t.Fatalf("expected b.ts last, got %+v", errs[2])
	}
}

func TestCheckRunStampsDistinctRunIDs(t *testing.T) {
	a := NewCheckRun()
	b := NewCheckRun()
	if a.RunID == b.RunID {
		t.Fatalf("expected distinct RunIDs across CheckRuns")
	}
}
