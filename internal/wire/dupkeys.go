package wire

import (
	"bytes"
	"errors"
	"io"

	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/i18n"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         blockkit.Path
	key          string // key whose value is being read
	index        int    // next element index for arrays
}

// DuplicateKeys scans a JSON document and reports every object key that
// occurs twice in the same object, at the path of the duplicated member.
// maxViolations <= 0 means unlimited. A syntax error is returned as error.
func DuplicateKeys(data []byte, maxViolations int) (blockkit.Report, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out blockkit.Report
	var stack []frame

	// childPath is the path of the value about to be read in the top frame.
	childPath := func() blockkit.Path {
		if len(stack) == 0 {
			return blockkit.Root()
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := top.path.Index(top.index)
			top.index++
			return p
		}
		top.expectingKey = true
		return top.path.Field(top.key)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, err
		}
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			if s, ok := tok.(string); ok && top.kind == kindObject && top.expectingKey {
				if _, dup := top.keys[s]; dup {
					v := top.path.Field(s).At(blockkit.KindDuplicateKey, "", "key", s)
					v.Message = i18n.T(blockkit.KindDuplicateKey, map[string]string{"key": s})
					out = append(out, v)
					if maxViolations > 0 && len(out) >= maxViolations {
						return out, nil
					}
				}
				top.keys[s] = struct{}{}
				top.key = s
				top.expectingKey = false
				continue
			}
		}
		switch tok {
		case json.Delim('{'):
			stack = append(stack, frame{kind: kindObject, keys: map[string]struct{}{}, expectingKey: true, path: childPath()})
		case json.Delim('['):
			stack = append(stack, frame{kind: kindArray, path: childPath()})
		case json.Delim('}'), json.Delim(']'):
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			childPath()
		}
	}
	return out, nil
}
