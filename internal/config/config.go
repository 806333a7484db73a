// Package config loads the checker's YAML configuration (gotsc.yaml):
// the CheckerOptions bundle spec.md §6 names (strict_function_types,
// no_unchecked_indexed_access, sound, force_bivariant_callbacks) plus the
// resource caps spec.md §5 calls for. Grounded on the teacher's
// internal/ext/config.go — a yaml.v3-tagged struct with a Load/validate/
// setDefaults pipeline and a FindConfig upward directory search.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gotsc/gotsc/internal/application"
	"github.com/gotsc/gotsc/internal/calleval"
	"github.com/gotsc/gotsc/internal/subtype"
)

// CheckerOptions is the YAML-loaded posture for one compilation, mirroring
// spec.md §4.G's Mode plus the sound-mode bundle spec.md §6 describes,
// centralized under the one `sound` flag.
type CheckerOptions struct {
	StrictFunctionTypes      bool `yaml:"strict_function_types"`
	NoUncheckedIndexedAccess bool `yaml:"no_unchecked_indexed_access"`
	Sound                    bool `yaml:"sound"`
	ForceBivariantCallbacks  bool `yaml:"force_bivariant_callbacks"`

	// Resource caps (spec.md §5): loaded, validated and defaulted here, but
	// checker.New does not pass them on; the evaluators bound themselves by
	// their own package constants (subtype.MaxMemoEntries,
	// calleval.MaxCallDepth, application.MaxDepth) whatever these say.
	MaxSubtypeMemoEntries int `yaml:"max_subtype_memo_entries,omitempty"`
	MaxCallDepth          int `yaml:"max_call_depth,omitempty"`
	MaxApplicationDepth   int `yaml:"max_application_depth,omitempty"`
}

// Mode projects the loaded options onto internal/subtype's Mode, the form
// the subtype checker and the evaluators that embed its posture actually
// consume.
func (o CheckerOptions) Mode() subtype.Mode {
	return subtype.Mode{
		StrictFunctionTypes:      o.StrictFunctionTypes,
		ForceBivariantCallbacks:  o.ForceBivariantCallbacks,
		NoUncheckedIndexedAccess: o.NoUncheckedIndexedAccess,
		Sound:                    o.Sound,
	}
}

// Default returns TypeScript's default posture: every flag off, resource
// caps at the values each evaluator package already hard-codes as its own
// default (spec.md §5).
func Default() CheckerOptions {
	return CheckerOptions{
		MaxSubtypeMemoEntries: subtype.MaxMemoEntries,
		MaxCallDepth:          calleval.MaxCallDepth,
		MaxApplicationDepth:   application.MaxDepth,
	}
}

// Load reads and parses a gotsc.yaml file at path.
func Load(path string) (CheckerOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CheckerOptions{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses gotsc.yaml content from bytes. path is used only in error
// messages.
func Parse(data []byte, path string) (CheckerOptions, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return CheckerOptions{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := opts.validate(path); err != nil {
		return CheckerOptions{}, err
	}
	return opts, nil
}

// Find searches for gotsc.yaml starting from dir and walking up to parent
// directories, the same upward search the teacher's FindConfig does for
// funxy.yaml. Returns "" with a nil error if no config file is found —
// the caller should fall back to Default().
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "gotsc.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (o CheckerOptions) validate(path string) error {
	if o.MaxSubtypeMemoEntries < 0 {
		return fmt.Errorf("%s: max_subtype_memo_entries must not be negative", path)
	}
	if o.MaxCallDepth < 0 {
		return fmt.Errorf("%s: max_call_depth must not be negative", path)
	}
	if o.MaxApplicationDepth < 0 {
		return fmt.Errorf("%s: max_application_depth must not be negative", path)
	}
	return nil
}
