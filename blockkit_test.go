package blockkit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/blockkit"
)

func TestPath_Pointer(t *testing.T) {
	p := blockkit.Root().Field("blocks").Index(2).Field("a/b~c")
	if got := p.Pointer(); got != "/blocks/2/a~1b~0c" {
		t.Fatalf("unexpected pointer: %s", got)
	}
	if diff := cmp.Diff(p, blockkit.ParsePath(p.Pointer())); diff != "" {
		t.Fatalf("parse round trip mismatch:\n%s", diff)
	}
	if got := blockkit.Root().Pointer(); got != "/" {
		t.Fatalf("root pointer = %q", got)
	}

	// extending a path never aliases the parent
	base := blockkit.Root().Field("elements")
	a, b := base.Index(0), base.Index(1)
	if a.Pointer() != "/elements/0" || b.Pointer() != "/elements/1" {
		t.Fatalf("sibling paths aliased: %s %s", a, b)
	}
}

func TestReport_ErrorAndRebase(t *testing.T) {
	r := blockkit.Report{}
	for i := 0; i < 4; i++ {
		r = blockkit.AppendViolations(r, blockkit.Root().Index(i).At(blockkit.KindMaxLength, ""))
	}
	want := "max_length at /0; max_length at /1; max_length at /2; ... (total 4)"
	if got := r.Error(); got != want {
		t.Fatalf("Error() = %q", got)
	}

	rebased := r[:1].Rebase(blockkit.Root().Field("elements"))
	if got := rebased[0].Path.Pointer(); got != "/elements/0" {
		t.Fatalf("rebased path = %s", got)
	}
	if r[0].Path.Pointer() != "/0" {
		t.Fatalf("Rebase modified its receiver")
	}
	if blockkit.Report(nil).Err() != nil {
		t.Fatalf("empty report must not be an error")
	}
}

func TestAsReport_Wrapped(t *testing.T) {
	r := blockkit.Report{blockkit.Root().Field("text").At(blockkit.KindNonEmpty, "must not be empty")}
	got, ok := blockkit.AsReport(fmt.Errorf("decode: %w", r))
	if !ok || len(got) != 1 || got[0].Kind != blockkit.KindNonEmpty {
		t.Fatalf("AsReport = %v, %v", got, ok)
	}
	if _, ok := blockkit.AsReport(errors.New("plain")); ok {
		t.Fatalf("plain errors are not reports")
	}
}

func TestExpectKind(t *testing.T) {
	if err := blockkit.ExpectKind("button", "button"); err != nil {
		t.Fatal(err)
	}
	if err := blockkit.ExpectKind("", "button"); !errors.Is(err, blockkit.ErrMissingKind) {
		t.Fatalf("expected ErrMissingKind, got %v", err)
	}
	err := blockkit.ExpectKind("image", "button")
	var uk *blockkit.UnknownKindError
	if !errors.As(err, &uk) || uk.Kind != "image" || !errors.Is(err, blockkit.ErrUnknownKind) {
		t.Fatalf("expected UnknownKindError, got %v", err)
	}
}

func TestNotSupportedError(t *testing.T) {
	err := error(&blockkit.NotSupportedError{Kind: "button", Family: "input_element", Index: 3})
	if !errors.Is(err, blockkit.ErrNotSupported) {
		t.Fatalf("errors.Is failed")
	}
	if got := err.Error(); got != `blockkit: "button" is not supported in input_element (element 3)` {
		t.Fatalf("unexpected message %q", got)
	}
}

type fixed blockkit.Report

func (fixed) Kind() blockkit.Kind      { return "fixed" }
func (f fixed) Check() blockkit.Report { return blockkit.Report(f) }

func TestValidate(t *testing.T) {
	if err := blockkit.Validate(nil); err != nil {
		t.Fatalf("nil node: %v", err)
	}
	if err := blockkit.Validate(fixed(nil)); err != nil {
		t.Fatalf("clean node: %v", err)
	}
	n := fixed{blockkit.Root().At(blockkit.KindNonEmpty, "")}
	first, second := blockkit.Validate(n), blockkit.Validate(n)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validation is not idempotent:\n%s", diff)
	}
}
