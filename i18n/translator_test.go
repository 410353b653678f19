package i18n_test

import (
	"testing"

	"github.com/reoring/blockkit/i18n"
)

func TestT_RendersParams(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })

	got := i18n.T("max_length", map[string]string{"max": "255", "got": "256"})
	if got != "must be at most 255 characters (got 256)" {
		t.Fatalf("unexpected message: %q", got)
	}

	i18n.SetLanguage("ja")
	got = i18n.T("nonempty", nil)
	if got != "空にできません" {
		t.Fatalf("unexpected ja message: %q", got)
	}

	// unknown languages fall back to English
	i18n.SetLanguage("xx")
	if got := i18n.T("nonempty", nil); got != "must not be empty" {
		t.Fatalf("expected en fallback, got %q", got)
	}
}

func TestT_UnknownKindEchoesKind(t *testing.T) {
	if got := i18n.T("no_such_kind", nil); got != "no_such_kind" {
		t.Fatalf("expected kind echo, got %q", got)
	}
}

type upper struct{}

func (upper) Message(kind string, _ map[string]string) string { return "X:" + kind }

func TestSetTranslator(t *testing.T) {
	i18n.SetTranslator(upper{})
	t.Cleanup(func() { i18n.SetTranslator(nil) })

	if got := i18n.T("range", nil); got != "X:range" {
		t.Fatalf("custom translator not used: %q", got)
	}
}
