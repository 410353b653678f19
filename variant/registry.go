package variant

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
)

// Registry dispatches wire objects of a general family to the node type
// registered under their "type" discriminant.
type Registry[G blockkit.Node] struct {
	family   string
	order    []blockkit.Kind
	decoders map[blockkit.Kind]func([]byte) (G, error)
}

// NewRegistry creates an empty registry for the named general family.
func NewRegistry[G blockkit.Node](family string) *Registry[G] {
	return &Registry[G]{family: family, decoders: map[blockkit.Kind]func([]byte) (G, error){}}
}

// Register binds kind to decode. Registering a kind twice panics.
func (r *Registry[G]) Register(kind blockkit.Kind, decode func([]byte) (G, error)) {
	if _, dup := r.decoders[kind]; dup {
		panic(fmt.Sprintf("variant: %s kind %q registered twice", r.family, kind))
	}
	r.decoders[kind] = decode
	r.order = append(r.order, kind)
}

// Kinds lists registered kinds in registration order.
func (r *Registry[G]) Kinds() []blockkit.Kind { return append([]blockkit.Kind(nil), r.order...) }

// Decode reads the discriminant of data and decodes it into the registered
// node type.
func (r *Registry[G]) Decode(data []byte) (G, error) {
	var zero G
	kind, err := PeekKind(data)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", r.family, err)
	}
	dec, ok := r.decoders[kind]
	if !ok {
		return zero, &blockkit.UnknownKindError{Kind: kind, Family: r.family}
	}
	return dec(data)
}

// PeekKind returns the "type" discriminant of a wire object.
func PeekKind(data []byte) (blockkit.Kind, error) {
	var head struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", fmt.Errorf("read discriminant: %w", err)
	}
	if head.Type == nil || *head.Type == "" {
		return "", blockkit.ErrMissingKind
	}
	return blockkit.Kind(*head.Type), nil
}
