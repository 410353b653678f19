package wire_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit/internal/wire"
	"github.com/reoring/blockkit/schema"
	_ "github.com/reoring/blockkit/surface"
)

func TestDuplicateKeys_ReportsPaths(t *testing.T) {
	doc := `{"blocks":[{"type":"divider"},{"type":"actions","type":"x","elements":[{"a":1,"a":2}]}],"text":"x","text":"y"}`
	rep, err := wire.DuplicateKeys([]byte(doc), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, v := range rep {
		got = append(got, v.Path.Pointer())
	}
	want := []string{"/blocks/1/type", "/blocks/1/elements/0/a", "/text"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateKeys_Limit(t *testing.T) {
	rep, err := wire.DuplicateKeys([]byte(`{"a":1,"a":2,"b":1,"b":2}`), 1)
	if err != nil || len(rep) != 1 {
		t.Fatalf("expected one violation, got %v %v", rep, err)
	}
}

func TestDuplicateKeys_Clean(t *testing.T) {
	rep, err := wire.DuplicateKeys([]byte(`{"a":{"a":1},"b":[{"a":1},{"a":2}]}`), 0)
	if err != nil || rep != nil {
		t.Fatalf("expected clean document, got %v %v", rep, err)
	}
}

func TestOpt(t *testing.T) {
	if wire.Opt[int](nil) != nil {
		t.Fatalf("nil slice should be absent")
	}
	p := wire.Opt([]int{})
	if p == nil || len(*p) != 0 {
		t.Fatalf("empty slice should stay present")
	}
	var empty []int
	if got := wire.FromOpt(&empty); got == nil {
		t.Fatalf("present null list should decode as empty")
	}
	if got := wire.Req[int](nil); got == nil {
		t.Fatalf("required list should never be nil")
	}
}

func TestMarshalIndent_SchemaDocument(t *testing.T) {
	for _, root := range []string{"surface", "actions", ""} {
		doc := schema.Document(root)
		out, err := wire.MarshalIndent(doc)
		if err != nil {
			t.Fatalf("%q: %v", root, err)
		}
		if !bytes.HasPrefix(out, []byte("{\n  \"")) {
			t.Fatalf("%q: output not indented: %.40s", root, out)
		}
		compact, err := json.Marshal(doc)
		if err != nil {
			t.Fatal(err)
		}
		var got, want map[string]any
		if err := json.Unmarshal(out, &got); err != nil {
			t.Fatal(err)
		}
		if err := json.Unmarshal(compact, &want); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%q: indented document differs (-want +got):\n%s", root, diff)
		}
	}
}
