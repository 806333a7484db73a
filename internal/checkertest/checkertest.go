// Package checkertest loads txtar-format fixture files for end-to-end
// evaluator scenarios: a `<program>` section (source the fixture
// describes, kept as plain text since this core has no lexer/parser of
// its own to feed it through) and an `<expect>` section (one expected
// diagnostic line per line, in `file:line:col - CODE message` form,
// matching diagnostics.DiagnosticError.Error()'s own format). Grounded
// on the teacher's tests/fuzz/targets/fuzz_utils.go, which likewise
// loads fixture files from disk directly into *testing.T/*testing.F
// rather than going through go/packages or a build-tagged corpus.
package checkertest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// Fixture is one parsed end-to-end scenario.
type Fixture struct {
	Name    string
	Program string
	Expect  []string
}

// Parse reads and parses one txtar fixture file. A fixture with no
// `<program>` section is a malformed fixture, not an empty program —
// Parse rejects it rather than silently returning an empty Program.
func Parse(path string) (*Fixture, error) {
	archive, err := txtar.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}

	f := &Fixture{Name: path}
	var sawProgram bool
	for _, file := range archive.Files {
		switch file.Name {
		case "program":
			f.Program = string(file.Data)
			sawProgram = true
		case "expect":
			f.Expect = nonEmptyLines(string(file.Data))
		}
	}
	if !sawProgram {
		return nil, fmt.Errorf("fixture %s: missing <program> section", path)
	}
	return f, nil
}

// LoadDir parses every *.txt fixture file directly under dir, sorted by
// file name for deterministic test ordering.
func LoadDir(dir string) ([]*Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading fixture dir %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".txt") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	fixtures := make([]*Fixture, 0, len(names))
	for _, name := range names {
		f, err := Parse(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// AssertDiagnostics compares got (each already formatted via
// DiagnosticError.Error()) against the fixture's Expect lines, failing t
// with a readable diff-style message on any mismatch.
func AssertDiagnostics(t *testing.T, f *Fixture, got []string) {
	t.Helper()
	if len(got) != len(f.Expect) {
		t.Fatalf("%s: expected %d diagnostics, got %d\nwant: %v\ngot:  %v", f.Name, len(f.Expect), len(got), f.Expect, got)
	}
	for i, want := range f.Expect {
		if got[i] != want {
			t.Fatalf("%s: diagnostic %d mismatch\nwant: %s\ngot:  %s", f.Name, i, want, got[i])
		}
	}
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
