package blockkit

import (
	"errors"
	"fmt"
	"strings"
)

// Violation kinds (exported consts for IDE completion and type safety by convention)
const (
	KindMaxLength       = "max_length"
	KindMinLength       = "min_length"
	KindNonEmpty        = "nonempty"
	KindBoundedCount    = "bounded_count"
	KindRange           = "range"
	KindMinValue        = "min_value"
	KindOneOf           = "one_of"
	KindFormat          = "format"
	KindRequiredVariant = "required_variant"
	// Cross-field refinements
	KindExclusive  = "exclusive"
	KindMembership = "membership"
	// Wire input
	KindDuplicateKey = "duplicate_key"
)

// Violation represents a single failed constraint.
type Violation struct {
	Path    Path   // Field/index segments from the document root.
	Kind    string // One of the kinds listed above.
	Message string
	// Params carries structured parameters (e.g., {"max":255, "got":300})
	// for i18n and observability.
	Params map[string]any
	// Rule optionally records the refinement name that produced this violation.
	Rule string
}

// Report is the aggregated, ordered collection of violations for one
// validation run. A non-empty Report implements error.
type Report []Violation

// Error summarizes the first few violations.
func (r Report) Error() string {
	if len(r) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(r)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		v := r[i]
		// e.g. max_length at /elements/0/action_id
		fmt.Fprintf(b, "%s at %s", v.Kind, v.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Rebase returns a copy of r whose paths are prefixed with parent. It is how
// a container re-keys the report of a nested node into its own frame.
func (r Report) Rebase(parent Path) Report {
	if len(r) == 0 {
		return nil
	}
	out := make(Report, len(r))
	for i, v := range r {
		v.Path = parent.Join(v.Path)
		out[i] = v
	}
	return out
}

// Err returns r as an error, or nil when r is empty.
func (r Report) Err() error {
	if len(r) == 0 {
		return nil
	}
	return r
}

// AppendViolations appends violations to the destination, initializing the
// slice when needed.
func AppendViolations(dst Report, more ...Violation) Report {
	if dst == nil {
		dst = Report{}
	}
	dst = append(dst, more...)
	return dst
}

// AsReport extracts a Report from an error using errors.As internally.
func AsReport(err error) (Report, bool) {
	if err == nil {
		return nil, false
	}
	var r Report
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// ErrNotSupported is the sentinel wrapped by NotSupportedError.
var ErrNotSupported = errors.New("blockkit: node kind not supported here")

// NotSupportedError is returned when a node is placed into a variant family
// that does not accept its kind.
type NotSupportedError struct {
	Kind   Kind   // Discriminant of the rejected node.
	Family string // Name of the family that rejected it.
	// Index is the position of the rejected node when a collection was
	// narrowed, -1 otherwise.
	Index int
}

func (e *NotSupportedError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("blockkit: %q is not supported in %s (element %d)", e.Kind, e.Family, e.Index)
	}
	return fmt.Sprintf("blockkit: %q is not supported in %s", e.Kind, e.Family)
}

// Unwrap returns ErrNotSupported for errors.Is() compatibility.
func (e *NotSupportedError) Unwrap() error { return ErrNotSupported }

// ErrMissingKind indicates a wire object without a "type" discriminant.
var ErrMissingKind = errors.New("blockkit: discriminant \"type\" missing")

// ErrUnknownKind is the sentinel wrapped by UnknownKindError.
var ErrUnknownKind = errors.New("blockkit: unknown discriminant")

// UnknownKindError is returned when a wire object carries a discriminant no
// node kind of the decoded family is registered under.
type UnknownKindError struct {
	Kind   Kind
	Family string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("blockkit: unknown %s kind %q", e.Family, e.Kind)
}

// Unwrap returns ErrUnknownKind for errors.Is() compatibility.
func (e *UnknownKindError) Unwrap() error { return ErrUnknownKind }

// ExpectKind checks a decoded discriminant against the kind a concrete node
// type expects.
func ExpectKind(got string, want Kind) error {
	switch {
	case got == "":
		return fmt.Errorf("%s: %w", want, ErrMissingKind)
	case Kind(got) != want:
		return &UnknownKindError{Kind: Kind(got), Family: string(want)}
	}
	return nil
}
