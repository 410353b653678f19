// Package wire holds helpers shared by the node MarshalJSON/UnmarshalJSON
// implementations.
package wire

// Opt returns nil for an absent slice and a pointer to s otherwise, so an
// empty but present list survives "omitempty".
func Opt[T any](s []T) *[]T {
	if s == nil {
		return nil
	}
	return &s
}

// FromOpt reverses Opt.
func FromOpt[T any](p *[]T) []T {
	if p == nil {
		return nil
	}
	if *p == nil {
		return []T{}
	}
	return *p
}

// Req returns s, or an empty slice when s is nil, so a required list never
// encodes as null.
func Req[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
