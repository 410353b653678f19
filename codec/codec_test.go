package codec_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/blocks"
	"github.com/reoring/blockkit/codec"
	"github.com/reoring/blockkit/elems"
	"github.com/reoring/blockkit/surface"
)

const modalJSON = `{
  "type": "modal",
  "title": {"type": "plain_text", "text": "Signup"},
  "submit": {"type": "plain_text", "text": "Go"},
  "blocks": [
    {"type": "input", "label": {"type": "plain_text", "text": "Name"},
     "element": {"type": "plain_text_input", "action_id": "name"}}
  ]
}`

func TestDecodeSurface_Modal(t *testing.T) {
	s, err := codec.DecodeSurface([]byte(modalJSON), codec.DecodeOpt{Validate: true})
	if err != nil {
		t.Fatal(err)
	}
	m, ok := s.(surface.Modal)
	if !ok {
		t.Fatalf("expected a modal, got %T", s)
	}
	if m.Title().Text() != "Signup" || len(m.Blocks()) != 1 {
		t.Fatalf("unexpected modal: %+v", m)
	}

	out, err := codec.Encode(m)
	if err != nil {
		t.Fatal(err)
	}
	again, err := codec.DecodeSurface(out)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again, s) {
		t.Fatalf("re-decoded modal differs:\n%s", out)
	}
}

func TestDecode_ValidateReturnsReport(t *testing.T) {
	data := []byte(`{"type":"header","text":{"type":"mrkdwn","text":"*hi*"}}`)
	h, err := codec.Decode[blocks.Header](data, codec.DecodeOpt{Validate: true})
	r, ok := blockkit.AsReport(err)
	if !ok || len(r) != 1 || r[0].Kind != blockkit.KindRequiredVariant {
		t.Fatalf("expected required_variant report, got %v", err)
	}
	if h.Text().Text() != "*hi*" {
		t.Fatalf("decoded value should be returned with the report")
	}
}

func TestDecode_DuplicateKeys(t *testing.T) {
	data := []byte(`{"type":"button","action_id":"a","action_id":"b","text":{"type":"plain_text","text":"Go"}}`)

	if _, err := codec.DecodeElement(data); err != nil {
		t.Fatalf("lenient decode should succeed: %v", err)
	}

	_, err := codec.DecodeElement(data, codec.DecodeOpt{Strictness: codec.Strictness{OnDuplicateKey: codec.Error}})
	r, ok := blockkit.AsReport(err)
	if !ok {
		t.Fatalf("expected a report, got %v", err)
	}
	if diff := cmp.Diff("/action_id", r[0].Path.Pointer()); diff != "" || r[0].Kind != blockkit.KindDuplicateKey {
		t.Fatalf("unexpected violation %+v", r[0])
	}

	var warned []string
	e, err := codec.DecodeElement(data, codec.DecodeOpt{
		Strictness: codec.Strictness{OnDuplicateKey: codec.Warn},
		OnWarning:  func(v blockkit.Violation) { warned = append(warned, v.Path.Pointer()) },
	})
	if err != nil || e.Kind() != elems.KindButton {
		t.Fatalf("warn mode should decode, got %v", err)
	}
	if diff := cmp.Diff([]string{"/action_id"}, warned); diff != "" {
		t.Fatalf("warnings mismatch:\n%s", diff)
	}
}

func TestDecodeBlock_UnknownAndMissing(t *testing.T) {
	_, err := codec.DecodeBlock([]byte(`{"type":"video"}`))
	var uk *blockkit.UnknownKindError
	if !errors.As(err, &uk) || uk.Family != "block" {
		t.Fatalf("expected UnknownKindError, got %v", err)
	}
	if _, err := codec.DecodeBlock([]byte(`{"block_id":"x"}`)); !errors.Is(err, blockkit.ErrMissingKind) {
		t.Fatalf("expected ErrMissingKind, got %v", err)
	}
}

func TestDecodeFrom_MaxBytes(t *testing.T) {
	_, err := codec.DecodeFrom(strings.NewReader(modalJSON), codec.DecodeOpt{MaxBytes: 16})
	if !errors.Is(err, codec.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := codec.DecodeFrom(strings.NewReader(modalJSON), codec.DecodeOpt{MaxBytes: 1 << 20}); err != nil {
		t.Fatal(err)
	}
}

func TestFromYAML(t *testing.T) {
	src := []byte(`
text: fallback
blocks:
  - type: section
    text:
      type: mrkdwn
      text: "*hello*"
  - type: divider
`)
	data, err := codec.FromYAML(src)
	if err != nil {
		t.Fatal(err)
	}
	s, err := codec.DecodeSurface(data, codec.DecodeOpt{Validate: true})
	if err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	msg := s.(surface.Message)
	var got []blockkit.Kind
	for _, b := range msg.Blocks() {
		got = append(got, b.Kind())
	}
	if diff := cmp.Diff([]blockkit.Kind{blocks.KindSection, blocks.KindDivider}, got); diff != "" {
		t.Fatalf("blocks mismatch:\n%s", diff)
	}

	if _, err := codec.FromYAML([]byte("? [a, b]\n: c\n")); err == nil {
		t.Fatalf("expected an error for a non-string key")
	}
}

func TestEncode_BareDivider(t *testing.T) {
	d := blocks.NewDivider().Build()
	out, err := codec.Encode(d)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(`{"type":"divider"}`, string(out)); diff != "" {
		t.Fatalf("encode mismatch (-want +got):\n%s", diff)
	}
	indented, err := codec.EncodeIndent(d)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("{\n  \"type\": \"divider\"\n}", string(indented)); diff != "" {
		t.Fatalf("indent mismatch (-want +got):\n%s", diff)
	}
	back, err := codec.DecodeBlock(out)
	if err != nil || !reflect.DeepEqual(back, blocks.Block(d)) {
		t.Fatalf("round trip failed: %v %#v", err, back)
	}
}
