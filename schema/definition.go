// Package schema declares node definitions: the ordered field list of a node
// kind, the constraints attached to each field and the cross-field rules of
// the node. A Definition checks node values recursively and projects itself
// to JSON Schema.
package schema

import (
	"errors"
	"fmt"

	"github.com/reoring/blockkit"
	js "github.com/reoring/blockkit/jsonschema"
	"github.com/reoring/blockkit/rules"
)

// FieldInfo describes one declared field.
type FieldInfo struct {
	Name        string
	Shape       string   // string, integer, boolean, object or array
	Required    bool     // presence is guaranteed by the node's builder
	Constraints []string // violation kinds the field can produce
}

type field[N any] struct {
	name     string
	required bool
	acc      Accessor[N]
}

type refinement[N any] struct {
	name string
	r    rules.Refinement[N]
}

// Definition is the immutable declaration of one node kind.
type Definition[N any] struct {
	name    string
	tags    []blockkit.Kind
	doc     string
	fields  []field[N]
	refines []refinement[N]
}

// Name is the definition's name in the catalog and under $defs.
func (d *Definition[N]) Name() string { return d.name }

// Tags lists the wire discriminants the definition covers; empty for
// composition objects that carry no "type" field.
func (d *Definition[N]) Tags() []blockkit.Kind { return append([]blockkit.Kind(nil), d.tags...) }

// Fields returns field metadata in declaration order.
func (d *Definition[N]) Fields() []FieldInfo {
	out := make([]FieldInfo, len(d.fields))
	for i, f := range d.fields {
		out[i] = FieldInfo{
			Name:        f.name,
			Shape:       f.acc.shape,
			Required:    f.required,
			Constraints: append([]string(nil), f.acc.constraints...),
		}
	}
	return out
}

// Check evaluates every field in declaration order and then every
// refinement. It never stops early. Paths are relative to n.
func (d *Definition[N]) Check(n N) blockkit.Report {
	var out blockkit.Report
	for _, f := range d.fields {
		out = append(out, f.acc.run(n, blockkit.Root().Field(f.name), f.required)...)
	}
	for _, r := range d.refines {
		for _, v := range r.r(n) {
			v.Rule = r.name
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// JSONSchema projects the definition as an object schema. Children are
// referenced through $defs.
func (d *Definition[N]) JSONSchema() *js.Schema {
	s := &js.Schema{
		Type:                 "object",
		Title:                d.name,
		Description:          d.doc,
		Properties:           map[string]*js.Schema{},
		AdditionalProperties: false,
	}
	switch len(d.tags) {
	case 0:
	case 1:
		s.Properties["type"] = &js.Schema{Type: "string", Const: string(d.tags[0])}
		s.Required = append(s.Required, "type")
	default:
		enum := make([]any, len(d.tags))
		for i, t := range d.tags {
			enum[i] = string(t)
		}
		s.Properties["type"] = &js.Schema{Type: "string", Enum: enum}
		s.Required = append(s.Required, "type")
	}
	for _, f := range d.fields {
		s.Properties[f.name] = f.acc.jsonSchema()
		if f.required {
			s.Required = append(s.Required, f.name)
		}
	}
	return s
}

// ObjectBuilder assembles a Definition.
type ObjectBuilder[N any] struct {
	def  Definition[N]
	errs []error
}

// FieldStep is returned by Field so the field can be marked Required.
type FieldStep[N any] struct {
	b   *ObjectBuilder[N]
	idx int
}

// Object starts a definition named name.
func Object[N any](name string) *ObjectBuilder[N] {
	return &ObjectBuilder[N]{def: Definition[N]{name: name}}
}

// Tag sets the wire discriminants the definition covers.
func (b *ObjectBuilder[N]) Tag(kinds ...blockkit.Kind) *ObjectBuilder[N] {
	b.def.tags = append(b.def.tags, kinds...)
	return b
}

// Doc sets the description exported to JSON Schema.
func (b *ObjectBuilder[N]) Doc(s string) *ObjectBuilder[N] {
	b.def.doc = s
	return b
}

// Field appends a field. Fields are checked in the order they are declared.
func (b *ObjectBuilder[N]) Field(name string, acc Accessor[N]) *FieldStep[N] {
	for _, f := range b.def.fields {
		if f.name == name {
			b.errs = append(b.errs, fmt.Errorf("schema %s: duplicate field %q", b.def.name, name))
		}
	}
	if acc.check == nil || acc.schema == nil {
		b.errs = append(b.errs, fmt.Errorf("schema %s: field %q has no accessor", b.def.name, name))
	}
	b.def.fields = append(b.def.fields, field[N]{name: name, acc: acc})
	return &FieldStep[N]{b: b, idx: len(b.def.fields) - 1}
}

// Refine attaches a named cross-field rule, run after all fields.
func (b *ObjectBuilder[N]) Refine(name string, r rules.Refinement[N]) *ObjectBuilder[N] {
	if r != nil {
		b.def.refines = append(b.def.refines, refinement[N]{name: name, r: r})
	}
	return b
}

// Build returns the definition or the declaration errors.
func (b *ObjectBuilder[N]) Build() (*Definition[N], error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	d := b.def
	d.fields = append([]field[N](nil), b.def.fields...)
	d.refines = append([]refinement[N](nil), b.def.refines...)
	return &d, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder[N]) MustBuild() *Definition[N] {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

// Required marks the field as required and returns the builder.
func (f *FieldStep[N]) Required() *ObjectBuilder[N] {
	f.b.def.fields[f.idx].required = true
	return f.b
}

// Optional leaves the field optional (the default) and returns the builder.
func (f *FieldStep[N]) Optional() *ObjectBuilder[N] {
	f.b.def.fields[f.idx].required = false
	return f.b
}

func (f *FieldStep[N]) Field(name string, acc Accessor[N]) *FieldStep[N] { return f.b.Field(name, acc) }
func (f *FieldStep[N]) Refine(name string, r rules.Refinement[N]) *ObjectBuilder[N] {
	return f.b.Refine(name, r)
}
func (f *FieldStep[N]) Build() (*Definition[N], error) { return f.b.Build() }
func (f *FieldStep[N]) MustBuild() *Definition[N]      { return f.b.MustBuild() }
