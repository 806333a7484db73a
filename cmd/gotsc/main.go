// Command gotsc drives the checker core from the command line: check
// (batch assignability scenarios across one or more files via
// internal/host), explain (print which §4.G rule decided one
// assignability verdict), and infer (run the unifier over one formal/arg
// pair and print the resolved type-parameter bindings). Dispatch is
// manual os.Args inspection, matching the teacher's cmd/funxy/main.go
// style — no flag-parsing library is introduced.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/gotsc/gotsc/internal/checker"
	"github.com/gotsc/gotsc/internal/config"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/host"
	"github.com/gotsc/gotsc/internal/inference"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
	"github.com/gotsc/gotsc/internal/typespec"
)

// nullResolver is the resolver handed to scenarios that never reference a
// symbol, Ref, or Application — every JSON-described scenario this CLI
// reads builds its types directly from typespec.Spec, so there is no
// binder behind it to resolve anything against.
type nullResolver struct{}

func (nullResolver) Resolve(uint32) (types.TypeId, bool)                { return 0, false }
func (nullResolver) TypeParams(uint32) ([]interner.TypeParamInfo, bool) { return nil, false }

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if handleCheck() {
		return
	}
	if handleExplain() {
		return
	}
	if handleInfer() {
		return
	}

	fmt.Fprintf(os.Stderr, "Usage: %s <check|explain|infer> <file.json> [file2.json ...]\n", os.Args[0])
	os.Exit(1)
}

func loadOptions() config.CheckerOptions {
	dir, err := os.Getwd()
	if err != nil {
		return config.Default()
	}
	path, err := config.Find(dir)
	if err != nil || path == "" {
		return config.Default()
	}
	opts, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return config.Default()
	}
	return opts
}

func colorize(code string, text string) string {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return text
	}
	return "\x1b[31m" + text + "\x1b[0m"
}

// checkScenario is one `gotsc check` input file's contents: a batch of
// independent assignability checks run against one fresh compilation.
type checkScenario struct {
	Checks []struct {
		Name   string        `json:"name"`
		Source typespec.Spec `json:"source"`
		Target typespec.Spec `json:"target"`
	} `json:"checks"`
}

func handleCheck() bool {
	if len(os.Args) < 3 || os.Args[1] != "check" {
		return false
	}
	opts := loadOptions()
	jobs := make([]host.Job, 0, len(os.Args)-2)
	for _, path := range os.Args[2:] {
		path := path
		jobs = append(jobs, host.Job{
			File:     path,
			Resolver: nullResolver{},
			Opts:     opts,
			Run: func(c *checker.Checker) error {
				return runCheckScenario(c, path)
			},
		})
	}

	h := host.New(0)
	outcomes, err := h.Run(context.Background(), jobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gotsc check: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", outcome.File, outcome.Err)
			failed = true
			continue
		}
		for _, d := range outcome.Diagnostics {
			fmt.Fprintln(os.Stderr, colorize(string(d.Code), d.Error()))
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	fmt.Printf("gotsc check: all scenarios passed (run %s)\n", uuid.New())
	return true
}

func runCheckScenario(c *checker.Checker, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var scenario checkScenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	b := c.Builder()
	for i, check := range scenario.Checks {
		source, err := typespec.Build(b, check.Source)
		if err != nil {
			return fmt.Errorf("%s: check %d (%s): source: %w", path, i, check.Name, err)
		}
		target, err := typespec.Build(b, check.Target)
		if err != nil {
			return fmt.Errorf("%s: check %d (%s): target: %w", path, i, check.Name, err)
		}
		if !c.IsAssignable(source, target) {
			name := check.Name
			if name == "" {
				name = fmt.Sprintf("check %d", i)
			}
			c.Run.Report(diagnostics.New(diagnostics.NotAssignable, path, diagnostics.Position{Line: i + 1, Column: 1},
				"Type is not assignable to type (%s).", name))
		}
	}
	return nil
}

// explainScenario is `gotsc explain`'s input: one assignability pair.
type explainScenario struct {
	Source typespec.Spec `json:"source"`
	Target typespec.Spec `json:"target"`
}

func handleExplain() bool {
	if len(os.Args) != 3 || os.Args[1] != "explain" {
		return false
	}
	data, err := os.ReadFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "gotsc explain: %v\n", err)
		os.Exit(1)
	}
	var scenario explainScenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		fmt.Fprintf(os.Stderr, "gotsc explain: %v\n", err)
		os.Exit(1)
	}

	run := diagnostics.NewCheckRun()
	c := checker.New(types.New(interner.New()), nullResolver{}, loadOptions(), run)
	b := c.Builder()
	source, err := typespec.Build(b, scenario.Source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gotsc explain: source: %v\n", err)
		os.Exit(1)
	}
	target, err := typespec.Build(b, scenario.Target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gotsc explain: target: %v\n", err)
		os.Exit(1)
	}

	var verdict checker.Verdict
	c.SetExplainHook(func(v checker.Verdict) { verdict = v })
	result := c.IsAssignable(source, target)

	verb := "is not assignable to"
	if result {
		verb = "is assignable to"
	}
	fmt.Printf("source %s target (rule: %s, run: %s)\n", verb, ruleName(verdict.Rule), run.RunID)
	return true
}

func ruleName(r checker.RuleName) string {
	names := map[checker.RuleName]string{
		checker.RuleUnclassified:                "unclassified",
		checker.RuleIdentity:                    "identity",
		checker.RuleAnyOrErrorPermissive:        "any-or-error",
		checker.RuleNeverBottom:                 "never-bottom",
		checker.RuleUnknownTop:                  "unknown-top",
		checker.RuleUnionSource:                 "union-source",
		checker.RuleUnionTarget:                 "union-target",
		checker.RuleIntersectionTarget:          "intersection-target",
		checker.RuleIntersectionSource:          "intersection-source",
		checker.RuleTupleTuple:                  "tuple-vs-tuple",
		checker.RuleArrayTuple:                  "array-vs-tuple",
		checker.RuleTupleArray:                  "tuple-vs-array",
		checker.RuleObjectObject:                "object-vs-object",
		checker.RuleSignatureCompat:             "signature-compatibility",
		checker.RuleApparentPrimitive:           "apparent-primitive",
		checker.RuleGenericApplication:          "generic-application",
		checker.RuleConditionalMappedIndexKeyof: "conditional-mapped-indexaccess-keyof",
		checker.RuleEnum:                        "enum",
		checker.RuleReadonly:                    "readonly",
	}
	if name, ok := names[r]; ok {
		return name
	}
	return "unclassified"
}

// inferScenario is `gotsc infer`'s input: the type parameters a formal
// type declares (each a typespec typeParameter node, by name), the
// formal type itself, and the argument type to unify it against.
type inferScenario struct {
	TypeParams []typespec.Spec `json:"typeParams"`
	Formal     typespec.Spec   `json:"formal"`
	Arg        typespec.Spec   `json:"arg"`
}

func handleInfer() bool {
	if len(os.Args) != 3 || os.Args[1] != "infer" {
		return false
	}
	data, err := os.ReadFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "gotsc infer: %v\n", err)
		os.Exit(1)
	}
	var scenario inferScenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		fmt.Fprintf(os.Stderr, "gotsc infer: %v\n", err)
		os.Exit(1)
	}

	run := diagnostics.NewCheckRun()
	c := checker.New(types.New(interner.New()), nullResolver{}, loadOptions(), run)
	b := c.Builder()

	typeParams := make([]interner.TypeParamInfo, 0, len(scenario.TypeParams))
	ctx := c.NewInferenceContext()
	for _, tpSpec := range scenario.TypeParams {
		id, err := typespec.Build(b, tpSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gotsc infer: typeParams: %v\n", err)
			os.Exit(1)
		}
		key, ok := b.Lookup(id)
		if !ok {
			continue
		}
		tp, ok := key.(interner.TypeParameterKey)
		if !ok {
			fmt.Fprintf(os.Stderr, "gotsc infer: typeParams entries must have kind \"typeParameter\"\n")
			os.Exit(1)
		}
		typeParams = append(typeParams, tp.Info)
		ctx.FreshTypeParam(tp.Info.Name)
	}

	formal, err := typespec.Build(b, scenario.Formal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gotsc infer: formal: %v\n", err)
		os.Exit(1)
	}
	arg, err := typespec.Build(b, scenario.Arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gotsc infer: arg: %v\n", err)
		os.Exit(1)
	}

	engine := &inference.Engine{Ctx: ctx, B: b, Sub: c.Sub}
	if err := engine.Infer(formal, arg); err != nil {
		fmt.Fprintf(os.Stderr, "gotsc infer: %v\n", err)
		os.Exit(1)
	}

	resolved := inference.Resolve(b, c.Sub, ctx, typeParams)
	for i, tp := range typeParams {
		fmt.Printf("%s = %v\n", b.In.AtomText(tp.Name), resolved[i])
	}
	fmt.Printf("(run: %s)\n", run.RunID)
	return true
}
