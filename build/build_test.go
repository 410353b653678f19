package build_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/blockkit/build"
)

func TestIsSet(t *testing.T) {
	if !build.IsSet[build.Set]() {
		t.Fatalf("Set should report set")
	}
	if build.IsSet[build.Unset]() {
		t.Fatalf("Unset should not report set")
	}
}

func TestMissing_DeclarationOrder(t *testing.T) {
	got := build.Missing(
		build.Field[build.Unset]("text"),
		build.Field[build.Set]("action_id"),
		build.Field[build.Unset]("url"),
	)
	if diff := cmp.Diff([]string{"text", "url"}, got); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
	if got := build.Missing(build.Field[build.Set]("a")); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestAppend_DoesNotAliasEarlierStage(t *testing.T) {
	base := make([]int, 2, 8)
	base[0], base[1] = 1, 2

	a := build.Append(base, 3)
	b := build.Append(base, 4)
	if a[2] != 3 || b[2] != 4 {
		t.Fatalf("stages share storage: a=%v b=%v", a, b)
	}
	if len(base) != 2 {
		t.Fatalf("base modified: %v", base)
	}
}

func TestClone_KeepsAbsentVersusEmpty(t *testing.T) {
	if build.Clone[int](nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	empty := build.Clone([]int{})
	if empty == nil || len(empty) != 0 {
		t.Fatalf("empty should stay empty and non-nil")
	}
	src := []string{"a"}
	dst := build.Clone(src)
	src[0] = "z"
	if dst[0] != "a" {
		t.Fatalf("clone aliases source")
	}
}
