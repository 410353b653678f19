package wire

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// MarshalIndent encodes v compactly and then indents the result by two
// spaces. goccy's own MarshalIndent grows its buffer without bound on the
// exported schema documents.
func MarshalIndent(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
