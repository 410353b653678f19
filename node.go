package blockkit

// Kind is the discriminant of a node kind. For nodes that carry a wire "type"
// field it is exactly that value ("button", "section", "plain_text", ...).
type Kind string

func (k Kind) String() string { return string(k) }

// Node is implemented by every finalized document-tree value.
type Node interface {
	// Kind reports the node's discriminant.
	Kind() Kind
	// Check evaluates every declared constraint of the node and its children
	// and returns all violations with paths relative to the node.
	Check() Report
}

// Validate checks n and everything nested inside it. It returns nil or a
// non-empty Report holding every violation found, with root-relative paths.
// Validate never mutates n; calling it twice yields identical reports.
func Validate(n Node) error {
	if n == nil {
		return nil
	}
	return n.Check().Err()
}
