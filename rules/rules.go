package rules

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/i18n"
	js "github.com/reoring/blockkit/jsonschema"
)

// Constraint is a pure check of one field value. It reports at most one
// violation, at the root of the value; callers re-key it to the field path.
type Constraint[T any] struct {
	kind   string
	params map[string]any
	schema func(*js.Schema)
	check  func(v T) (blockkit.Violation, bool)
}

// New builds a Constraint from a check function. check returns ok=false
// together with the violation when v fails. project, when non-nil, records the
// constraint in a JSON Schema projection of the field.
func New[T any](kind string, params map[string]any, project func(*js.Schema), check func(v T) (blockkit.Violation, bool)) Constraint[T] {
	return Constraint[T]{kind: kind, params: params, schema: project, check: check}
}

// Kind returns the violation kind the constraint produces.
func (c Constraint[T]) Kind() string { return c.kind }

// Params returns the declared parameters (e.g., {"max": 255}).
func (c Constraint[T]) Params() map[string]any { return c.params }

// Check runs the constraint against v.
func (c Constraint[T]) Check(v T) (blockkit.Violation, bool) {
	if c.check == nil {
		return blockkit.Violation{}, true
	}
	return c.check(v)
}

// Project applies the constraint to a JSON Schema fragment.
func (c Constraint[T]) Project(s *js.Schema) {
	if c.schema != nil && s != nil {
		c.schema(s)
	}
}

// Count is the size of a collection field. Collection constraints take a
// Count so they cannot be confused with numeric range checks.
type Count int

// ---------- text ----------

// MaxLength fails when s has more than n characters (runes).
func MaxLength(n int) Constraint[string] {
	return New(blockkit.KindMaxLength, map[string]any{"max": n},
		func(s *js.Schema) { s.MaxLength = js.Int(n) },
		func(s string) (blockkit.Violation, bool) {
			got := utf8.RuneCountInString(s)
			if got > n {
				return violation(blockkit.KindMaxLength, "", "max", n, "got", got), false
			}
			return blockkit.Violation{}, true
		})
}

// MinLength fails when s has fewer than n characters (runes).
func MinLength(n int) Constraint[string] {
	return New(blockkit.KindMinLength, map[string]any{"min": n},
		func(s *js.Schema) { s.MinLength = js.Int(n) },
		func(s string) (blockkit.Violation, bool) {
			got := utf8.RuneCountInString(s)
			if got < n {
				return violation(blockkit.KindMinLength, "", "min", n, "got", got), false
			}
			return blockkit.Violation{}, true
		})
}

// NonEmpty fails on the empty string.
func NonEmpty() Constraint[string] {
	return New(blockkit.KindNonEmpty, nil,
		func(s *js.Schema) { s.MinLength = js.Int(1) },
		func(s string) (blockkit.Violation, bool) {
			if s == "" {
				return violation(blockkit.KindNonEmpty, ""), false
			}
			return blockkit.Violation{}, true
		})
}

// OneOf fails when s is not one of the allowed values.
func OneOf(allowed ...string) Constraint[string] {
	enum := make([]any, len(allowed))
	for i, a := range allowed {
		enum[i] = a
	}
	list := strings.Join(allowed, ", ")
	return New(blockkit.KindOneOf, map[string]any{"allowed": list},
		func(s *js.Schema) { s.Enum = enum },
		func(s string) (blockkit.Violation, bool) {
			for _, a := range allowed {
				if s == a {
					return blockkit.Violation{}, true
				}
			}
			return violation(blockkit.KindOneOf, "", "allowed", list, "got", s), false
		})
}

// DateFormat fails unless s is a calendar date in YYYY-MM-DD form.
func DateFormat() Constraint[string] {
	return New(blockkit.KindFormat, map[string]any{"format": "date"},
		func(s *js.Schema) { s.Format = "date" },
		func(s string) (blockkit.Violation, bool) {
			if _, err := time.Parse(time.DateOnly, s); err != nil {
				return violation(blockkit.KindFormat, "", "format", "date (YYYY-MM-DD)"), false
			}
			return blockkit.Violation{}, true
		})
}

// URL fails unless s is an absolute http or https URL.
func URL() Constraint[string] {
	return New(blockkit.KindFormat, map[string]any{"format": "uri"},
		func(s *js.Schema) { s.Format = "uri" },
		func(s string) (blockkit.Violation, bool) {
			u, err := url.Parse(s)
			if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
				return violation(blockkit.KindFormat, "", "format", "http(s) URL"), false
			}
			return blockkit.Violation{}, true
		})
}

// ---------- numbers ----------

// Range fails when n is outside [min, max].
func Range(min, max int) Constraint[int] {
	return New(blockkit.KindRange, map[string]any{"min": min, "max": max},
		func(s *js.Schema) { s.Minimum, s.Maximum = js.Int(min), js.Int(max) },
		func(n int) (blockkit.Violation, bool) {
			if n < min || n > max {
				return violation(blockkit.KindRange, "", "min", min, "max", max, "got", n), false
			}
			return blockkit.Violation{}, true
		})
}

// MinValue fails when n is below min.
func MinValue(min int) Constraint[int] {
	return New(blockkit.KindMinValue, map[string]any{"min": min},
		func(s *js.Schema) { s.Minimum = js.Int(min) },
		func(n int) (blockkit.Violation, bool) {
			if n < min {
				return violation(blockkit.KindMinValue, "", "min", min, "got", n), false
			}
			return blockkit.Violation{}, true
		})
}

// ---------- collections ----------

// BoundedCount fails when a collection holds more than max items.
func BoundedCount(max int) Constraint[Count] {
	return New(blockkit.KindBoundedCount, map[string]any{"max": max},
		func(s *js.Schema) { s.MaxItems = js.Int(max) },
		func(n Count) (blockkit.Violation, bool) {
			if int(n) > max {
				return violation(blockkit.KindBoundedCount, "", "max", max, "got", int(n)), false
			}
			return blockkit.Violation{}, true
		})
}

// CountBetween fails when a collection holds fewer than min or more than max items.
func CountBetween(min, max int) Constraint[Count] {
	return New(blockkit.KindBoundedCount, map[string]any{"min": min, "max": max},
		func(s *js.Schema) { s.MinItems, s.MaxItems = js.Int(min), js.Int(max) },
		func(n Count) (blockkit.Violation, bool) {
			if int(n) < min || int(n) > max {
				return violation(blockkit.KindBoundedCount, "bounded_count_span", "min", min, "max", max, "got", int(n)), false
			}
			return blockkit.Violation{}, true
		})
}

// AtLeastOne fails on an empty collection.
func AtLeastOne() Constraint[Count] {
	return New(blockkit.KindNonEmpty, map[string]any{"min": 1},
		func(s *js.Schema) { s.MinItems = js.Int(1) },
		func(n Count) (blockkit.Violation, bool) {
			if n < 1 {
				return violation(blockkit.KindNonEmpty, ""), false
			}
			return blockkit.Violation{}, true
		})
}

// ---------- shape ----------

// RequiredVariant fails when pred rejects v. variant names the accepted shape
// (e.g., "plain_text") and appears in the message.
func RequiredVariant[T any](variant string, pred func(T) bool) Constraint[T] {
	return New(blockkit.KindRequiredVariant, map[string]any{"variant": variant}, nil,
		func(v T) (blockkit.Violation, bool) {
			if !pred(v) {
				return violation(blockkit.KindRequiredVariant, "", "variant", variant), false
			}
			return blockkit.Violation{}, true
		})
}

// On lifts c through project, so a constraint on U can be declared on a field
// of type T (e.g., the length of a text object's text). The lifted constraint
// has no JSON Schema projection: c describes the projected value, not the
// field, which is usually an object reference.
func On[T, U any](project func(T) U, c Constraint[U]) Constraint[T] {
	return Constraint[T]{
		kind:   c.kind,
		params: c.params,
		check:  func(v T) (blockkit.Violation, bool) { return c.Check(project(v)) },
	}
}

// violation builds a Violation with a translated message. msgKey selects an
// alternate message template; when empty the kind is used.
func violation(kind, msgKey string, kv ...any) blockkit.Violation {
	if msgKey == "" {
		msgKey = kind
	}
	v := blockkit.Root().At(kind, "", kv...)
	v.Message = i18n.T(msgKey, stringify(v.Params))
	return v
}

func stringify(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch t := v.(type) {
		case string:
			out[k] = t
		case int:
			out[k] = strconv.Itoa(t)
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out
}
