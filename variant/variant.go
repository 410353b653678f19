// Package variant models closed families of node kinds.
//
// A general family G (for example every interactive element) is an interface
// implemented by a sealed set of node types. A restricted family is the subset
// of kinds one container accepts; it is declared once with Declare and
// identified at the type level by a tag type, so Member[G, ActionsTag] and
// Member[G, InputTag] are distinct types even though both wrap a G.
//
// Widening is total. Narrowing checks the node's kind against the family and
// fails with *blockkit.NotSupportedError.
package variant

import (
	"fmt"
	"slices"

	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
)

// Family is a named, closed set of kinds drawn from the general family G.
type Family[G blockkit.Node] struct {
	name   string
	kinds  []blockkit.Kind
	decode func([]byte) (G, error)
}

// Declare creates a family. decode parses a wire object of the general family
// G; it is used when a Member is unmarshaled.
func Declare[G blockkit.Node](name string, decode func([]byte) (G, error), kinds ...blockkit.Kind) Family[G] {
	return Family[G]{name: name, kinds: slices.Clone(kinds), decode: decode}
}

// Name returns the family name used in errors.
func (f Family[G]) Name() string { return f.name }

// Kinds returns the accepted kinds in declaration order.
func (f Family[G]) Kinds() []blockkit.Kind { return slices.Clone(f.kinds) }

// Accepts reports whether kind is a member of f.
func (f Family[G]) Accepts(kind blockkit.Kind) bool { return slices.Contains(f.kinds, kind) }

// Tag identifies a restricted family at the type level. Implementations are
// empty struct types whose Family method returns a package-level Family.
type Tag[G blockkit.Node] interface {
	Family() Family[G]
}

// Member is a node of the general family G known to belong to the family
// tagged by T. The zero Member holds no node.
type Member[G blockkit.Node, T Tag[G]] struct {
	node G
}

// Narrow converts g into a member of T's family, failing when g's kind is
// outside the family.
func Narrow[G blockkit.Node, T Tag[G]](g G) (Member[G, T], error) {
	var tag T
	fam := tag.Family()
	if isNil(g) {
		return Member[G, T]{}, &blockkit.NotSupportedError{Family: fam.name, Index: -1}
	}
	if !fam.Accepts(g.Kind()) {
		return Member[G, T]{}, &blockkit.NotSupportedError{Kind: g.Kind(), Family: fam.name, Index: -1}
	}
	return Member[G, T]{node: g}, nil
}

// MustNarrow is like Narrow but panics on error.
func MustNarrow[G blockkit.Node, T Tag[G]](g G) Member[G, T] {
	m, err := Narrow[G, T](g)
	if err != nil {
		panic(err)
	}
	return m
}

// NarrowAll narrows every element of gs. It stops at the first element
// outside the family and returns that element's error with its Index set.
func NarrowAll[G blockkit.Node, T Tag[G]](gs []G) ([]Member[G, T], error) {
	if gs == nil {
		return nil, nil
	}
	out := make([]Member[G, T], 0, len(gs))
	for i, g := range gs {
		m, err := Narrow[G, T](g)
		if err != nil {
			ns := err.(*blockkit.NotSupportedError)
			ns.Index = i
			return nil, ns
		}
		out = append(out, m)
	}
	return out, nil
}

// Widen returns the general node wrapped by m.
func Widen[G blockkit.Node, T Tag[G]](m Member[G, T]) G { return m.node }

// WidenAll widens every member of ms.
func WidenAll[G blockkit.Node, T Tag[G]](ms []Member[G, T]) []G {
	if ms == nil {
		return nil
	}
	out := make([]G, len(ms))
	for i, m := range ms {
		out[i] = m.node
	}
	return out
}

// Widen returns the general node.
func (m Member[G, T]) Widen() G { return m.node }

// Kind returns the wrapped node's kind, or "" for the zero Member.
func (m Member[G, T]) Kind() blockkit.Kind {
	if isNil(m.node) {
		return ""
	}
	return m.node.Kind()
}

// Check validates the wrapped node.
func (m Member[G, T]) Check() blockkit.Report {
	if isNil(m.node) {
		return nil
	}
	return m.node.Check()
}

// DefName names the family in JSON Schema exports.
func (m Member[G, T]) DefName() string {
	var tag T
	return tag.Family().name
}

// MarshalJSON encodes the wrapped node.
func (m Member[G, T]) MarshalJSON() ([]byte, error) {
	if isNil(m.node) {
		return []byte("null"), nil
	}
	return json.Marshal(m.node)
}

// UnmarshalJSON decodes a node of the general family and narrows it.
func (m *Member[G, T]) UnmarshalJSON(data []byte) error {
	var tag T
	fam := tag.Family()
	if fam.decode == nil {
		return fmt.Errorf("variant: family %s has no decoder", fam.name)
	}
	g, err := fam.decode(data)
	if err != nil {
		return err
	}
	n, err := Narrow[G, T](g)
	if err != nil {
		return err
	}
	*m = n
	return nil
}

func isNil[G any](g G) bool { return any(g) == nil }
