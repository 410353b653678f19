package rules

import (
	"strings"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/i18n"
)

// Refinement is a node-level rule spanning several fields. It returns the
// violations it finds with paths relative to the node.
type Refinement[N any] func(n N) blockkit.Report

// Presence names a field together with a probe reporting whether it is set.
type Presence[N any] struct {
	Name string
	Set  func(n N) bool
}

// Field builds a Presence.
func Field[N any](name string, set func(n N) bool) Presence[N] {
	return Presence[N]{Name: name, Set: set}
}

// All runs every refinement and concatenates their reports in order.
func All[N any](rs ...Refinement[N]) Refinement[N] {
	return func(n N) blockkit.Report {
		var out blockkit.Report
		for _, r := range rs {
			if r == nil {
				continue
			}
			out = append(out, r(n)...)
		}
		return out
	}
}

// When runs rs only if cond holds for the node.
func When[N any](cond func(n N) bool, rs ...Refinement[N]) Refinement[N] {
	all := All(rs...)
	return func(n N) blockkit.Report {
		if !cond(n) {
			return nil
		}
		return all(n)
	}
}

// Exclusive allows at most one of fields to be set. Every set field after the
// first produces one violation at its own path.
func Exclusive[N any](fields ...Presence[N]) Refinement[N] {
	names := joinNames(fields)
	return func(n N) blockkit.Report {
		var out blockkit.Report
		seen := false
		for _, f := range fields {
			if !f.Set(n) {
				continue
			}
			if seen {
				v := blockkit.Root().Field(f.Name).At(blockkit.KindExclusive, "", "fields", names)
				v.Message = i18n.T(blockkit.KindExclusive, map[string]string{"fields": names})
				out = append(out, v)
			}
			seen = true
		}
		return out
	}
}

// AnyOf requires at least one of fields to be set. The violation is reported
// at the node itself.
func AnyOf[N any](fields ...Presence[N]) Refinement[N] {
	names := joinNames(fields)
	return func(n N) blockkit.Report {
		for _, f := range fields {
			if f.Set(n) {
				return nil
			}
		}
		v := blockkit.Root().At(blockkit.KindNonEmpty, "", "fields", names)
		v.Message = i18n.T("nonempty_any", map[string]string{"fields": names})
		return blockkit.Report{v}
	}
}

// Needed reports f as missing when it is unset. The violation is a nonempty
// at the field; combine with When for conditional requirements.
func Needed[N any](f Presence[N]) Refinement[N] {
	return func(n N) blockkit.Report {
		if f.Set(n) {
			return nil
		}
		v := blockkit.Root().Field(f.Name).At(blockkit.KindNonEmpty, "")
		v.Message = i18n.T(blockkit.KindNonEmpty, nil)
		return blockkit.Report{v}
	}
}

// Subset requires every value of field (e.g., initial option values) to occur
// in of (e.g., the option values). Each stray value is reported at its index.
// An empty allowed set disables the check; the node then has no local options
// to compare against (external data sources).
func Subset[N any](field, of string, values func(n N) []string, allowed func(n N) []string) Refinement[N] {
	return func(n N) blockkit.Report {
		pool := allowed(n)
		if len(pool) == 0 {
			return nil
		}
		var out blockkit.Report
		for i, v := range values(n) {
			if !contains(pool, v) {
				out = append(out, membership(blockkit.Root().Field(field).Index(i), of, v))
			}
		}
		return out
	}
}

// MemberOf is Subset for a single optional value.
func MemberOf[N any](field, of string, value func(n N) (string, bool), allowed func(n N) []string) Refinement[N] {
	return func(n N) blockkit.Report {
		v, ok := value(n)
		pool := allowed(n)
		if !ok || len(pool) == 0 || contains(pool, v) {
			return nil
		}
		return blockkit.Report{membership(blockkit.Root().Field(field), of, v)}
	}
}

// Ordered requires lo <= hi when both bounds are set. The violation is a
// min_value at the hi field.
func Ordered[N any](loField, hiField string, bounds func(n N) (lo, hi int, ok bool)) Refinement[N] {
	return func(n N) blockkit.Report {
		lo, hi, ok := bounds(n)
		if !ok || lo <= hi {
			return nil
		}
		v := violation(blockkit.KindMinValue, "", "min", lo, "got", hi)
		v.Path = blockkit.Root().Field(hiField)
		v.Params["field"] = loField
		return blockkit.Report{v}
	}
}

func membership(p blockkit.Path, of, got string) blockkit.Violation {
	v := p.At(blockkit.KindMembership, "", "of", of, "got", got)
	v.Message = i18n.T(blockkit.KindMembership, map[string]string{"of": of, "got": got})
	return v
}

func contains(pool []string, v string) bool {
	for _, p := range pool {
		if p == v {
			return true
		}
	}
	return false
}

func joinNames[N any](fields []Presence[N]) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}
