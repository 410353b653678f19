package schema

import (
	"github.com/reoring/blockkit"
	js "github.com/reoring/blockkit/jsonschema"
	"github.com/reoring/blockkit/rules"
)

// Accessor reads one field of N, checks it and projects it to JSON Schema.
// Accessors are created with String, Int, Child, Children and friends.
type Accessor[N any] struct {
	shape       string
	constraints []string
	ref         string
	check       func(n N, at blockkit.Path) blockkit.Report
	schema      func(ref string) *js.Schema
	count       []rules.Constraint[rules.Count]
	size        func(n N) (int, bool)
}

// Count attaches collection-size constraints. It only has an effect on
// collection accessors (Strings, Children).
func (a Accessor[N]) Count(cs ...rules.Constraint[rules.Count]) Accessor[N] {
	a.count = append(append([]rules.Constraint[rules.Count](nil), a.count...), cs...)
	for _, c := range cs {
		a.constraints = append(a.constraints, c.Kind())
	}
	return a
}

// Ref overrides the $defs name used for the child schema. It is needed when
// the child type is an interface whose zero value cannot name itself.
func (a Accessor[N]) Ref(name string) Accessor[N] {
	a.ref = name
	return a
}

// run checks the field. A required collection is counted even when nil, so an
// empty required list still trips its lower bound.
func (a Accessor[N]) run(n N, at blockkit.Path, required bool) blockkit.Report {
	var out blockkit.Report
	if a.size != nil {
		if size, present := a.size(n); present || required {
			out = applyAll(out, a.count, rules.Count(size), at)
		}
	}
	if a.check != nil {
		out = append(out, a.check(n, at)...)
	}
	return out
}

func (a Accessor[N]) jsonSchema() *js.Schema {
	s := a.schema(a.ref)
	if a.size != nil {
		for _, c := range a.count {
			c.Project(s)
		}
	}
	return s
}

// String declares a text field that is always present.
func String[N any](get func(N) string, cs ...rules.Constraint[string]) Accessor[N] {
	return Accessor[N]{
		shape:       "string",
		constraints: kinds(cs),
		check: func(n N, at blockkit.Path) blockkit.Report {
			return applyAll(nil, cs, get(n), at)
		},
		schema: func(string) *js.Schema { return project(&js.Schema{Type: "string"}, cs) },
	}
}

// OptString declares an optional text field; nil means absent and is not
// checked.
func OptString[N any](get func(N) *string, cs ...rules.Constraint[string]) Accessor[N] {
	a := String(func(n N) string { return *get(n) }, cs...)
	inner := a.check
	a.check = func(n N, at blockkit.Path) blockkit.Report {
		if get(n) == nil {
			return nil
		}
		return inner(n, at)
	}
	return a
}

// Int declares an integer field that is always present.
func Int[N any](get func(N) int, cs ...rules.Constraint[int]) Accessor[N] {
	return Accessor[N]{
		shape:       "integer",
		constraints: kinds(cs),
		check: func(n N, at blockkit.Path) blockkit.Report {
			return applyAll(nil, cs, get(n), at)
		},
		schema: func(string) *js.Schema { return project(&js.Schema{Type: "integer"}, cs) },
	}
}

// OptInt declares an optional integer field.
func OptInt[N any](get func(N) *int, cs ...rules.Constraint[int]) Accessor[N] {
	a := Int(func(n N) int { return *get(n) }, cs...)
	inner := a.check
	a.check = func(n N, at blockkit.Path) blockkit.Report {
		if get(n) == nil {
			return nil
		}
		return inner(n, at)
	}
	return a
}

// OptBool declares an optional flag; nil means absent and is not checked.
func OptBool[N any](get func(N) *bool, cs ...rules.Constraint[bool]) Accessor[N] {
	return Accessor[N]{
		shape:       "boolean",
		constraints: kinds(cs),
		check: func(n N, at blockkit.Path) blockkit.Report {
			v := get(n)
			if v == nil {
				return nil
			}
			return applyAll(nil, cs, *v, at)
		},
		schema: func(string) *js.Schema { return project(&js.Schema{Type: "boolean"}, cs) },
	}
}

// Strings declares a list of text values; each constraint applies to every
// item. A nil slice is absent: neither counted nor checked.
func Strings[N any](get func(N) []string, each ...rules.Constraint[string]) Accessor[N] {
	return Accessor[N]{
		shape:       "array",
		constraints: kinds(each),
		size:        func(n N) (int, bool) { s := get(n); return len(s), s != nil },
		check: func(n N, at blockkit.Path) blockkit.Report {
			var out blockkit.Report
			for i, v := range get(n) {
				out = applyAll(out, each, v, at.Index(i))
			}
			return out
		},
		schema: func(string) *js.Schema {
			return &js.Schema{Type: "array", Items: project(&js.Schema{Type: "string"}, each)}
		},
	}
}

// Child declares a nested node that is always present. Constraints run on the
// child as a whole (reported at the field); the child's own checks are then
// rebased under the field.
func Child[N any, C blockkit.Node](get func(N) C, cs ...rules.Constraint[C]) Accessor[N] {
	return Accessor[N]{
		shape:       "object",
		constraints: kinds(cs),
		check: func(n N, at blockkit.Path) blockkit.Report {
			c := get(n)
			out := applyAll(nil, cs, c, at)
			if any(c) == nil {
				return out
			}
			return append(out, c.Check().Rebase(at)...)
		},
		schema: func(ref string) *js.Schema { return project(childRef[C](ref), cs) },
	}
}

// OptChild declares an optional nested node; nil means absent.
func OptChild[N any, C blockkit.Node](get func(N) *C, cs ...rules.Constraint[C]) Accessor[N] {
	a := Child(func(n N) C { return *get(n) }, cs...)
	inner := a.check
	a.check = func(n N, at blockkit.Path) blockkit.Report {
		if get(n) == nil {
			return nil
		}
		return inner(n, at)
	}
	return a
}

// Children declares a list of nested nodes. Each constraint applies to every
// item at its index, and every item is checked recursively.
func Children[N any, C blockkit.Node](get func(N) []C, each ...rules.Constraint[C]) Accessor[N] {
	return Accessor[N]{
		shape:       "array",
		constraints: kinds(each),
		size:        func(n N) (int, bool) { s := get(n); return len(s), s != nil },
		check: func(n N, at blockkit.Path) blockkit.Report {
			var out blockkit.Report
			for i, c := range get(n) {
				p := at.Index(i)
				out = applyAll(out, each, c, p)
				if any(c) != nil {
					out = append(out, c.Check().Rebase(p)...)
				}
			}
			return out
		},
		schema: func(ref string) *js.Schema {
			return &js.Schema{Type: "array", Items: project(childRef[C](ref), each)}
		},
	}
}

// definer is implemented by node types that name their own JSON Schema
// definition (a restricted family, or a node shared by several kinds).
type definer interface{ DefName() string }

func childRef[C blockkit.Node](override string) *js.Schema {
	if override != "" {
		return &js.Schema{Ref: js.DefRef(override)}
	}
	var zero C
	if d, ok := any(zero).(definer); ok {
		return &js.Schema{Ref: js.DefRef(d.DefName())}
	}
	if any(zero) != nil && zero.Kind() != "" {
		return &js.Schema{Ref: js.DefRef(string(zero.Kind()))}
	}
	return &js.Schema{Type: "object"}
}

func applyAll[T any](out blockkit.Report, cs []rules.Constraint[T], v T, at blockkit.Path) blockkit.Report {
	for _, c := range cs {
		if viol, ok := c.Check(v); !ok {
			viol.Path = at.Join(viol.Path)
			out = append(out, viol)
		}
	}
	return out
}

func project[T any](s *js.Schema, cs []rules.Constraint[T]) *js.Schema {
	for _, c := range cs {
		c.Project(s)
	}
	return s
}

func kinds[T any](cs []rules.Constraint[T]) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Kind())
	}
	return out
}
