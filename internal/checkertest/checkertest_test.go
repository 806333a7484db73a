package checkertest

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleFixture = `-- program --
const x: number = "s";
-- expect --
a.ts:1:7 - TS2322 Type 'string' is not assignable to type 'number'.
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestParseReadsProgramAndExpectSections(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "assignability.txt", sampleFixture)

	f, err := Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Program != "const x: number = \"s\";\n" {
		t.Fatalf("unexpected program: %q", f.Program)
	}
	if len(f.Expect) != 1 || f.Expect[0] != "a.ts:1:7 - TS2322 Type 'string' is not assignable to type 'number'." {
		t.Fatalf("unexpected expect lines: %v", f.Expect)
	}
}

func TestParseRejectsFixtureWithoutProgramSection(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "bad.txt", "-- expect --\nsomething\n")
	if _, err := Parse(path); err == nil {
		t.Fatalf("expected an error for a fixture missing <program>")
	}
}

func TestLoadDirParsesEveryTxtFileSorted(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "b.txt", "-- program --\nb\n")
	writeFixture(t, dir, "a.txt", "-- program --\na\n")
	writeFixture(t, dir, "ignore.md", "not a fixture")

	fixtures, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(fixtures))
	}
	if filepath.Base(fixtures[0].Name) != "a.txt" || filepath.Base(fixtures[1].Name) != "b.txt" {
		t.Fatalf("expected fixtures sorted a.txt before b.txt, got %s then %s", fixtures[0].Name, fixtures[1].Name)
	}
}

func TestAssertDiagnosticsPassesOnExactMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "ok.txt", sampleFixture)
	f, err := Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	AssertDiagnostics(t, f, []string{"a.ts:1:7 - TS2322 Type 'string' is not assignable to type 'number'."})
}
