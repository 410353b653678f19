package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/reoring/blockkit"
	js "github.com/reoring/blockkit/jsonschema"
)

// Entry is the type-erased view of a Definition held by the catalog.
type Entry interface {
	Name() string
	Tags() []blockkit.Kind
	Fields() []FieldInfo
	JSONSchema() *js.Schema
}

// Union is a named family of definitions, exported as a oneOf.
type Union struct {
	Name    string
	Members []string // definition names
}

var (
	catalogMu sync.RWMutex
	entries   = map[string]Entry{}
	unions    = map[string]Union{}
)

// Register adds d to the catalog and returns it, so node packages can
// declare and register in one package-level var. Names must be unique.
func Register[N any](d *Definition[N]) *Definition[N] {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	if _, dup := entries[d.Name()]; dup {
		panic(fmt.Sprintf("schema: definition %q registered twice", d.Name()))
	}
	entries[d.Name()] = d
	return d
}

// RegisterUnion records a family of definition names.
func RegisterUnion(name string, members ...string) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	if _, dup := unions[name]; dup {
		panic(fmt.Sprintf("schema: union %q registered twice", name))
	}
	unions[name] = Union{Name: name, Members: append([]string(nil), members...)}
}

// Catalog lists every registered definition sorted by name.
func Catalog() []Entry {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Unions lists every registered union sorted by name.
func Unions() []Union {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	out := make([]Union, 0, len(unions))
	for _, u := range unions {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the definition registered under name.
func Lookup(name string) (Entry, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	e, ok := entries[name]
	return e, ok
}

// Document exports the whole catalog as one JSON Schema document whose
// $defs hold every definition and union. root, when non-empty, names the
// definition the document validates.
func Document(root string) *js.Schema {
	doc := &js.Schema{Schema: js.Draft, Defs: map[string]*js.Schema{}}
	for _, e := range Catalog() {
		doc.Defs[e.Name()] = e.JSONSchema()
	}
	for _, u := range Unions() {
		s := &js.Schema{Title: u.Name}
		for _, m := range u.Members {
			s.OneOf = append(s.OneOf, &js.Schema{Ref: js.DefRef(m)})
		}
		doc.Defs[u.Name] = s
	}
	if root != "" {
		doc.Ref = js.DefRef(root)
	}
	return doc
}
