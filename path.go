package blockkit

import (
	"strconv"
	"strings"
)

// Path locates a value inside a document as field and index segments from the
// document root. Paths are values: Field and Index never modify the receiver.
type Path []string

// Root is the empty path.
func Root() Path { return nil }

// Field returns p extended with a field name.
func (p Path) Field(name string) Path {
	if name == "" {
		return p
	}
	return append(append(Path{}, p...), name)
}

// Index returns p extended with a collection index.
func (p Path) Index(i int) Path {
	return append(append(Path{}, p...), strconv.Itoa(i))
}

// Join returns p followed by child.
func (p Path) Join(child Path) Path {
	out := make(Path, 0, len(p)+len(child))
	out = append(out, p...)
	return append(out, child...)
}

// Pointer renders p as an RFC 6901 JSON Pointer.
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range p {
		b.WriteByte('/')
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(seg, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

func (p Path) String() string { return p.Pointer() }

// ParsePath parses a JSON Pointer back into segments.
func ParsePath(pointer string) Path {
	if pointer == "" || pointer == "/" {
		return nil
	}
	var out Path
	for _, seg := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		out = append(out, strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~"))
	}
	return out
}

// At creates a Violation at p with the given kind, message and key/value params.
func (p Path) At(kind, msg string, kv ...any) Violation {
	var m map[string]any
	if len(kv) > 1 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				m[k] = kv[i+1]
			}
		}
	}
	return Violation{Path: p, Kind: kind, Message: msg, Params: m}
}
