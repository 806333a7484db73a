// Package diagnostics implements the diagnostic sink spec.md §6 describes:
// a stream of (code, span, message, inserts) records the core emits against
// an injected Sink, the core itself never formatting anything beyond the
// message template. Grounded on the teacher's *diagnostics.DiagnosticError
// shape (File, Token{Line,Column,Lexeme}, Code, Error()) consumed by
// cmd/lsp/diagnostics.go, and on internal/analyzer's addError/errorSet
// deduplicate-by-position pattern.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Code is one of the stable TS-numbered diagnostic codes spec.md §6 names.
type Code string

const (
	CannotFindName        Code = "TS2304"
	CannotFindModule      Code = "TS2307"
	NotAssignable         Code = "TS2322"
	ConstraintViolation   Code = "TS2344"
	CannotCallConstructor Code = "TS2348"
	NotConstructable      Code = "TS2351"
	ExcessProperty        Code = "TS2353"
	UsedBeforeAssigned    Code = "TS2454"
	TooFewArguments       Code = "TS2554"
	TooManyArguments      Code = "TS2555"
	WeakType              Code = "TS2559"
	LibHintLower          Code = "TS2583"
	LibHintIterable       Code = "TS2584"
	LibHintAsyncIterable  Code = "TS2585"
	TypeUsedAsValue       Code = "TS2693"

	// Sound-mode extras (spec.md §6's "sound" bullet).
	SoundStickyFreshness       Code = "TS9001"
	SoundCovariantMutableArray Code = "TS9002"
	SoundMethodBivariance      Code = "TS9003"
	SoundAnyEscapes            Code = "TS9004"
	SoundEnumNumber            Code = "TS9005"
)

// Position is a 1-based line/column, matching the teacher's Token.Line/
// Token.Column fields.
type Position struct {
	Line   int
	Column int
}

// DiagnosticError is one reported diagnostic. The core never formats the
// final message string beyond substituting Inserts into Message — that is
// this package's job via Error(), matching spec.md §6's "the core does not
// format messages."
type DiagnosticError struct {
	Code    Code
	File    string
	Pos     Position
	Message string
	Inserts []string
}

// New constructs a DiagnosticError holding the unformatted Message and its
// Inserts; Error() later substitutes each insert into Message's "%s"
// placeholders in order via fmt.Sprintf.
func New(code Code, file string, pos Position, message string, inserts ...string) *DiagnosticError {
	return &DiagnosticError{Code: code, File: file, Pos: pos, Message: message, Inserts: inserts}
}

func (e *DiagnosticError) Error() string {
	msg := e.Message
	if len(e.Inserts) > 0 {
		args := make([]any, len(e.Inserts))
		for i, ins := range e.Inserts {
			args[i] = ins
		}
		msg = fmt.Sprintf(msg, args...)
	}
	return fmt.Sprintf("%s:%d:%d - %s %s", e.File, e.Pos.Line, e.Pos.Column, e.Code, msg)
}

func (e *DiagnosticError) dedupeKey() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d:%s", e.Pos.Line, e.Pos.Column, e.Code)
	return b.String()
}

// Sink is the collector the evaluators report against; in production this
// is a *CheckRun, in tests a slice-backed fake.
type Sink interface {
	Report(*DiagnosticError)
}

// CheckRun is one compilation's worth of diagnostics (spec.md §5's "private
// interner, binder, checker" unit), stamped with a RunID so a host running
// several compilations in parallel (internal/host) can correlate which
// diagnostics came from which. Deduplicates by position+code the same way
// the teacher's walker.errorSet does, since the same structural check can
// fire more than once against the same span as evaluation revisits a type.
type CheckRun struct {
	RunID uuid.UUID

	mu   sync.Mutex
	seen map[string]*DiagnosticError
}

// NewCheckRun creates an empty CheckRun with a fresh RunID.
func NewCheckRun() *CheckRun {
	return &CheckRun{RunID: uuid.New(), seen: make(map[string]*DiagnosticError)}
}

func (r *CheckRun) Report(err *DiagnosticError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[err.dedupeKey()] = err
}

// Errors returns every unique diagnostic, sorted by file then position.
func (r *CheckRun) Errors() []*DiagnosticError {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*DiagnosticError, 0, len(r.seen))
	for _, e := range r.seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		return a.Pos.Column < b.Pos.Column
	})
	return out
}
