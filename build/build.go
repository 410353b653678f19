// Package build holds the pieces shared by every node builder: the marker
// types that record which required fields were supplied, and the copy helpers
// that keep builder stages and finished nodes from sharing mutable storage.
//
// A builder for a node with required fields a and b is a generic type
// XBuilder[A, B Marker]. NewX returns XBuilder[Unset, Unset]; the setter for a
// returns XBuilder[Set, B]. The finalizer is a package-level function
//
//	func BuildX[A, B build.Provided](b XBuilder[A, B]) X
//
// so a call with any Unset marker fails to compile.
package build

import "slices"

// Set marks a required field that has been supplied.
type Set struct{}

// Unset marks a required field that has not been supplied yet.
type Unset struct{}

// Marker is the constraint on builder type parameters.
type Marker interface{ Set | Unset }

// Provided is satisfied only by Set. Finalizers constrain their type
// parameters with it.
type Provided interface{ Set }

// IsSet reports whether M is Set.
func IsSet[M Marker]() bool {
	var m M
	_, ok := any(m).(Set)
	return ok
}

// Req pairs a required field name with its marker state.
type Req struct {
	Name string
	Set  bool
}

// Field reads the state of marker M for the named field.
func Field[M Marker](name string) Req { return Req{Name: name, Set: IsSet[M]()} }

// Missing lists the names of unset requirements in declaration order. It
// returns nil when every requirement is set.
func Missing(reqs ...Req) []string {
	var out []string
	for _, r := range reqs {
		if !r.Set {
			out = append(out, r.Name)
		}
	}
	return out
}

// Append adds vs to s without writing into s's backing array, so an earlier
// builder stage holding s never observes the addition.
func Append[T any](s []T, vs ...T) []T {
	return append(slices.Clip(s), vs...)
}

// Clone copies s. nil stays nil and an empty slice stays empty but non-nil, so
// "absent" and "present but empty" survive the copy.
func Clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T { return &v }
