// Package codec reads and writes Block Kit documents in their JSON wire form.
//
// Nodes already implement json.Marshaler and json.Unmarshaler; this package
// adds the entry points around them: family dispatch, input limits, duplicate
// key detection and optional validation after decoding.
package codec

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/blocks"
	"github.com/reoring/blockkit/elems"
	"github.com/reoring/blockkit/internal/wire"
	"github.com/reoring/blockkit/surface"
)

// Severity expresses how an input issue is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for wire-level issues.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn (via DecodeOpt.OnWarning) or Error.
}

// DecodeOpt bundles decoding options. The zero value decodes leniently and
// does not validate.
type DecodeOpt struct {
	Strictness Strictness
	// MaxBytes limits input read by DecodeFrom; 0 means unlimited.
	MaxBytes int64
	// MaxViolations caps duplicate-key reports; 0 means unlimited.
	MaxViolations int
	// Validate runs the decoded node's checks and returns the report as error
	// alongside the decoded value.
	Validate bool
	// OnWarning receives issues whose severity is Warn.
	OnWarning func(blockkit.Violation)
}

// ErrTooLarge is returned when input exceeds DecodeOpt.MaxBytes.
var ErrTooLarge = errors.New("codec: input exceeds size limit")

// Encode returns the compact wire form of n.
func Encode(n blockkit.Node) ([]byte, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", n.Kind(), err)
	}
	return b, nil
}

// EncodeIndent returns the wire form of n indented by two spaces.
func EncodeIndent(n blockkit.Node) ([]byte, error) {
	b, err := wire.MarshalIndent(n)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", n.Kind(), err)
	}
	return b, nil
}

// Decode parses data into the concrete node type N.
func Decode[N any, P interface {
	*N
	json.Unmarshaler
}](data []byte, opts ...DecodeOpt) (N, error) {
	var n N
	opt := pick(opts)
	if err := precheck(data, opt); err != nil {
		return n, err
	}
	if err := P(&n).UnmarshalJSON(data); err != nil {
		return n, err
	}
	return n, postcheck(any(n), opt)
}

// DecodeElement parses any interactive element.
func DecodeElement(data []byte, opts ...DecodeOpt) (elems.Element, error) {
	return decodeWith(data, pick(opts), elems.Decode)
}

// DecodeBlock parses any layout block.
func DecodeBlock(data []byte, opts ...DecodeOpt) (blocks.Block, error) {
	return decodeWith(data, pick(opts), blocks.Decode)
}

// DecodeSurface parses a message or a modal.
func DecodeSurface(data []byte, opts ...DecodeOpt) (surface.Surface, error) {
	return decodeWith(data, pick(opts), surface.Decode)
}

// ReadAll reads r honoring opt.MaxBytes.
func ReadAll(r io.Reader, opts ...DecodeOpt) ([]byte, error) {
	opt := pick(opts)
	if opt.MaxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > opt.MaxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, opt.MaxBytes)
	}
	return data, nil
}

// DecodeFrom reads a surface from r.
func DecodeFrom(r io.Reader, opts ...DecodeOpt) (surface.Surface, error) {
	data, err := ReadAll(r, opts...)
	if err != nil {
		return nil, err
	}
	return DecodeSurface(data, opts...)
}

func decodeWith[G blockkit.Node](data []byte, opt DecodeOpt, dec func([]byte) (G, error)) (G, error) {
	if err := precheck(data, opt); err != nil {
		var zero G
		return zero, err
	}
	g, err := dec(data)
	if err != nil {
		return g, err
	}
	return g, postcheck(g, opt)
}

func pick(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[len(opts)-1]
}

// precheck applies the wire-level checks that run before decoding.
func precheck(data []byte, opt DecodeOpt) error {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return fmt.Errorf("%w (%d bytes)", ErrTooLarge, opt.MaxBytes)
	}
	if opt.Strictness.OnDuplicateKey == Ignore {
		return nil
	}
	dups, err := wire.DuplicateKeys(data, opt.MaxViolations)
	if err != nil {
		return fmt.Errorf("codec: %w", err)
	}
	if len(dups) == 0 {
		return nil
	}
	if opt.Strictness.OnDuplicateKey == Error {
		return dups
	}
	if opt.OnWarning != nil {
		for _, v := range dups {
			opt.OnWarning(v)
		}
	}
	return nil
}

func postcheck(v any, opt DecodeOpt) error {
	if !opt.Validate {
		return nil
	}
	if n, ok := v.(blockkit.Node); ok {
		return blockkit.Validate(n)
	}
	return nil
}
