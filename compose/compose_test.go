package compose_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/compose"
)

func kinds(r blockkit.Report) []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.Kind + " " + v.Path.Pointer()
	}
	return out
}

func TestText_Variants(t *testing.T) {
	p := compose.Plain("hi").WithEmoji(true).WithVerbatim(true)
	if !p.IsPlain() || p.Kind() != compose.KindPlain {
		t.Fatalf("expected plain_text, got %s", p.Kind())
	}
	if _, ok := p.Verbatim(); ok {
		t.Fatalf("verbatim must not be set on plain_text")
	}
	m := compose.Mrkdwn("*hi*").WithVerbatim(false)
	if v, ok := m.Verbatim(); !ok || v {
		t.Fatalf("verbatim flag lost")
	}
	if got := compose.Plain("").Check(); len(got) != 1 || got[0].Kind != blockkit.KindNonEmpty {
		t.Fatalf("empty text should fail nonempty, got %v", got)
	}
}

func TestText_JSON(t *testing.T) {
	b, err := json.Marshal(compose.Plain("Hello").WithEmoji(true))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"type":"plain_text","text":"Hello","emoji":true}` {
		t.Fatalf("unexpected encoding: %s", b)
	}
	var back compose.Text
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, compose.Plain("Hello").WithEmoji(true)) {
		t.Fatalf("round trip mismatch: %#v", back)
	}

	err = json.Unmarshal([]byte(`{"type":"html","text":"x"}`), &back)
	var uk *blockkit.UnknownKindError
	if !errors.As(err, &uk) || uk.Kind != "html" {
		t.Fatalf("expected UnknownKindError, got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"text":"x"}`), &back); !errors.Is(err, blockkit.ErrMissingKind) {
		t.Fatalf("expected ErrMissingKind, got %v", err)
	}
}

func TestOption_BuilderAndConstraints(t *testing.T) {
	o := compose.BuildOption(compose.NewOption().
		Value(strings.Repeat("v", 151)).
		Text(compose.Plain(strings.Repeat("t", 76))).
		Description("desc").
		URL("not a url"))

	want := []string{"max_length /text", "max_length /value", "format /url"}
	if diff := cmp.Diff(want, kinds(o.Check())); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
	if d, ok := o.Description(); !ok || d.Text() != "desc" {
		t.Fatalf("description lost: %v", d)
	}
}

func TestOption_Missing(t *testing.T) {
	b := compose.NewOption().Value("v")
	if diff := cmp.Diff([]string{"text"}, b.Missing()); diff != "" {
		t.Fatalf("missing mismatch:\n%s", diff)
	}
	if got := b.Text(compose.Plain("t")).Missing(); got != nil {
		t.Fatalf("expected nothing missing, got %v", got)
	}
}

func TestOptionGroup_AppendAfterBulk(t *testing.T) {
	a, b, c := compose.Opt("A", "a"), compose.Opt("B", "b"), compose.Opt("C", "c")
	g := compose.BuildOptionGroup(compose.NewOptionGroup().Label("Group").Options(a, b).Option(c))
	if diff := cmp.Diff([]string{"a", "b", "c"}, compose.Values(g.Options())); diff != "" {
		t.Fatalf("options mismatch:\n%s", diff)
	}

	mixed := compose.BuildOptionGroup(compose.NewOptionGroup().
		Option(compose.BuildOption(compose.NewOption().Text(compose.Mrkdwn("*A*")).Value("a"))).
		Label("Group"))
	got := mixed.Check()
	if len(got) != 1 || got[0].Kind != blockkit.KindRequiredVariant || got[0].Path.Pointer() != "/options/0" {
		t.Fatalf("expected required_variant at /options/0, got %v", kinds(got))
	}
}

func TestConfirm_AggregatesThreeFields(t *testing.T) {
	c := compose.BuildConfirm(compose.NewConfirm().
		Deny(strings.Repeat("n", 31)).
		Confirm(strings.Repeat("y", 31)).
		Text(compose.Mrkdwn("Are you *sure*?")).
		Title(strings.Repeat("t", 101)))
	want := []string{"max_length /title", "max_length /confirm", "max_length /deny"}
	if diff := cmp.Diff(want, kinds(c.Check())); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}

	ok := compose.BuildConfirm(compose.NewConfirm().Title("Sure?").Text(compose.Plain("Really")).Confirm("Yes").Deny("No").Style("loud"))
	if got := kinds(ok.Check()); len(got) != 1 || got[0] != "one_of /style" {
		t.Fatalf("unexpected report: %v", got)
	}
}

func TestConfirm_JSONRoundTrip(t *testing.T) {
	c := compose.BuildConfirm(compose.NewConfirm().Title("Sure?").Text(compose.Plain("Really")).Confirm("Yes").Deny("No").Style(compose.StyleDanger))
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	var back compose.Confirm
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, c) {
		t.Fatalf("round trip mismatch:\n%s", b)
	}
}

func TestConversationFilter(t *testing.T) {
	if got := kinds(compose.NewConversationFilter().Build().Check()); len(got) != 1 || got[0] != "nonempty /" {
		t.Fatalf("empty filter should fail at the node, got %v", got)
	}
	f := compose.NewConversationFilter().Include(compose.ConvPublic, "group").ExcludeBotUsers(true).Build()
	if diff := cmp.Diff([]string{"one_of /include/1"}, kinds(f.Check())); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"include":["public","group"],"exclude_bot_users":true}` {
		t.Fatalf("unexpected encoding: %s", b)
	}
}
