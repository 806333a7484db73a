package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultsEveryFlagOff(t *testing.T) {
	opts, err := Parse([]byte(``), "gotsc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Sound || opts.StrictFunctionTypes || opts.NoUncheckedIndexedAccess || opts.ForceBivariantCallbacks {
		t.Fatalf("expected every posture flag to default off, got %+v", opts)
	}
	if opts.MaxSubtypeMemoEntries == 0 {
		t.Fatalf("expected the subtype memo cap to carry a nonzero default")
	}
}

func TestParseLoadsDeclaredFlags(t *testing.T) {
	yaml := []byte(`
strict_function_types: true
sound: true
max_call_depth: 10
`)
	opts, err := Parse(yaml, "gotsc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.StrictFunctionTypes || !opts.Sound {
		t.Fatalf("expected strict_function_types and sound to be true, got %+v", opts)
	}
	if opts.MaxCallDepth != 10 {
		t.Fatalf("expected max_call_depth 10, got %d", opts.MaxCallDepth)
	}
}

func TestParseRejectsNegativeCaps(t *testing.T) {
	if _, err := Parse([]byte("max_call_depth: -1\n"), "gotsc.yaml"); err == nil {
		t.Fatalf("expected a negative max_call_depth to be rejected")
	}
}

func TestModeProjectsOntoSubtypeMode(t *testing.T) {
	opts, err := Parse([]byte("sound: true\nforce_bivariant_callbacks: true\n"), "gotsc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mode := opts.Mode()
	if !mode.Sound || !mode.ForceBivariantCallbacks {
		t.Fatalf("expected Mode to carry sound/force_bivariant_callbacks through, got %+v", mode)
	}
}

func TestFindWalksUpToParentDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "gotsc.yaml"), []byte("sound: true\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("creating nested dir: %v", err)
	}
	found, err := Find(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(root, "gotsc.yaml")
	if found != want {
		t.Fatalf("got %q, want %q", found, want)
	}
}

func TestFindReturnsEmptyWhenNoConfigExists(t *testing.T) {
	dir := t.TempDir()
	found, err := Find(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != "" {
		t.Fatalf("expected no config to be found, got %q", found)
	}
}
