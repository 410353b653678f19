package elems_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/compose"
	"github.com/reoring/blockkit/elems"
)

func kinds(r blockkit.Report) []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.Kind + " " + v.Path.Pointer()
	}
	return out
}

func confirm() compose.Confirm {
	return compose.BuildConfirm(compose.NewConfirm().Title("Sure?").Text(compose.Plain("Really")).Confirm("Yes").Deny("No"))
}

// samples returns one fully populated value per element kind.
func samples() []elems.Element {
	a, b := compose.Opt("A", "a"), compose.Opt("B", "b")
	group := compose.BuildOptionGroup(compose.NewOptionGroup().Label("G").Options(a, b))
	filter := compose.NewConversationFilter().Include(compose.ConvPublic).Build()
	return []elems.Element{
		elems.BuildButton(elems.NewButton().Text("Go").ActionID("go").URL("https://example.com").Style(compose.StylePrimary).Confirm(confirm())),
		elems.BuildCheckboxes(elems.NewCheckboxes().ActionID("cb").Options(a, b).InitialOptions(a)),
		elems.BuildDatePicker(elems.NewDatePicker().ActionID("dp").Placeholder("When").InitialDate("2024-02-29")),
		elems.BuildImage(elems.NewImage().ImageURL("https://example.com/a.png").AltText("a")),
		elems.BuildOverflow(elems.NewOverflow().ActionID("of").Options(a, b)),
		elems.BuildTextInput(elems.NewTextInput().ActionID("ti").Multiline(true).MinLength(1).MaxLength(10)),
		elems.BuildRadioButtons(elems.NewRadioButtons().ActionID("rb").Options(a, b).InitialOption(b)),
		elems.BuildStaticSelect(elems.NewStaticSelect().Placeholder("Pick").ActionID("ss").OptionGroups(group).InitialOption(a)),
		elems.BuildExternalSelect(elems.NewExternalSelect().Placeholder("Pick").ActionID("es").MinQueryLength(3)),
		elems.BuildUsersSelect(elems.NewUsersSelect().Placeholder("Who").ActionID("us").InitialUser("U1")),
		elems.BuildConversationsSelect(elems.NewConversationsSelect().Placeholder("Where").ActionID("cs").Filter(filter).ResponseURLEnabled(true)),
		elems.BuildChannelsSelect(elems.NewChannelsSelect().Placeholder("Where").ActionID("ch").InitialChannel("C1")),
		elems.BuildMultiStaticSelect(elems.NewMultiStaticSelect().Placeholder("Pick").ActionID("ms").Options(a, b).InitialOptions(b).MaxSelectedItems(2)),
		elems.BuildMultiUsersSelect(elems.NewMultiUsersSelect().Placeholder("Who").ActionID("mu").InitialUsers("U1", "U2")),
		elems.BuildMultiConversationsSelect(elems.NewMultiConversationsSelect().Placeholder("Where").ActionID("mc").DefaultToCurrentConversation(true)),
	}
}

func TestSamples_CoverEveryKindAndValidate(t *testing.T) {
	var got []blockkit.Kind
	for _, e := range samples() {
		got = append(got, e.Kind())
		if r := e.Check(); len(r) != 0 {
			t.Fatalf("%s: unexpected violations %v", e.Kind(), kinds(r))
		}
	}
	if diff := cmp.Diff(elems.Kinds(), got); diff != "" {
		t.Fatalf("kinds mismatch (-registry +samples):\n%s", diff)
	}
}

func TestDecode_RoundTripsEveryKind(t *testing.T) {
	for _, e := range samples() {
		t.Run(string(e.Kind()), func(t *testing.T) {
			b, err := json.Marshal(e)
			if err != nil {
				t.Fatal(err)
			}
			back, err := elems.Decode(b)
			if err != nil {
				t.Fatalf("decode %s: %v", b, err)
			}
			if !reflect.DeepEqual(back, e) {
				t.Fatalf("round trip mismatch:\n%s", b)
			}
		})
	}
}

func TestDecode_Discriminant(t *testing.T) {
	_, err := elems.Decode([]byte(`{"type":"slider","action_id":"x"}`))
	var uk *blockkit.UnknownKindError
	if !errors.As(err, &uk) || uk.Kind != "slider" || uk.Family != "element" {
		t.Fatalf("expected UnknownKindError, got %v", err)
	}
	if _, err := elems.Decode([]byte(`{"action_id":"x"}`)); !errors.Is(err, blockkit.ErrMissingKind) {
		t.Fatalf("expected ErrMissingKind, got %v", err)
	}

	var btn elems.Button
	if err := json.Unmarshal([]byte(`{"type":"overflow","action_id":"x"}`), &btn); !errors.As(err, &uk) {
		t.Fatalf("button must reject another kind, got %v", err)
	}
}

func TestBuilder_SetterOrderDoesNotMatter(t *testing.T) {
	x := elems.BuildButton(elems.NewButton().Text("Go").ActionID("go").Value("1"))
	y := elems.BuildButton(elems.NewButton().Value("1").ActionID("go").Text("Go"))
	if !reflect.DeepEqual(x, y) {
		t.Fatalf("setter order changed the result: %#v vs %#v", x, y)
	}
}

func TestBuilder_Missing(t *testing.T) {
	if diff := cmp.Diff([]string{"text", "action_id"}, elems.NewButton().Missing()); diff != "" {
		t.Fatalf("missing mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"placeholder"}, elems.NewStaticSelect().ActionID("a").Missing()); diff != "" {
		t.Fatalf("missing mismatch:\n%s", diff)
	}
	if got := elems.NewImage().AltText("x").ImageURL("https://example.com").Missing(); got != nil {
		t.Fatalf("expected nothing missing, got %v", got)
	}
}

func TestButton_AggregatesInFieldOrder(t *testing.T) {
	b := elems.BuildButton(elems.NewButton().
		ActionID(strings.Repeat("a", 256)).
		Text(strings.Repeat("t", 76)).
		URL("ftp:/nope").
		Style("loud"))
	want := []string{"max_length /text", "max_length /action_id", "format /url", "one_of /style"}
	if diff := cmp.Diff(want, kinds(b.Check())); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
	// Checking twice yields the same report.
	if diff := cmp.Diff(b.Check(), b.Check()); diff != "" {
		t.Fatalf("check is not idempotent:\n%s", diff)
	}
}

func TestButton_NestedConfirmPaths(t *testing.T) {
	bad := compose.BuildConfirm(compose.NewConfirm().Title("").Text(compose.Plain("x")).Confirm("y").Deny("n"))
	b := elems.BuildButton(elems.NewButton().Text("Go").ActionID("go").Confirm(bad))
	if diff := cmp.Diff([]string{"nonempty /confirm/title/text"}, kinds(b.Check())); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}
}

func TestOverflow_OptionCount(t *testing.T) {
	one := elems.BuildOverflow(elems.NewOverflow().ActionID("o").Option(compose.Opt("A", "a")))
	if diff := cmp.Diff([]string{"bounded_count /options"}, kinds(one.Check())); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}

	three := elems.BuildOverflow(elems.NewOverflow().ActionID("o").
		Option(compose.Opt("A", "a")).
		Option(compose.Opt("B", "b")).
		Option(compose.Opt("C", "c")))
	if diff := cmp.Diff([]string{"a", "b", "c"}, compose.Values(three.Options())); diff != "" {
		t.Fatalf("options mismatch:\n%s", diff)
	}
	if r := three.Check(); len(r) != 0 {
		t.Fatalf("unexpected violations %v", kinds(r))
	}
}

func TestCheckboxes_InitialOptionsMustBeListed(t *testing.T) {
	a, b := compose.Opt("A", "a"), compose.Opt("B", "b")
	c := elems.BuildCheckboxes(elems.NewCheckboxes().ActionID("cb").Options(a).InitialOptions(a, b))
	got := c.Check()
	if diff := cmp.Diff([]string{"membership /initial_options/1"}, kinds(got)); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}
	if got[0].Rule != "initial_options_in_options" {
		t.Fatalf("rule not recorded: %+v", got[0])
	}
}

func TestRadioButtons_InitialOptionMustBeListed(t *testing.T) {
	r := elems.BuildRadioButtons(elems.NewRadioButtons().ActionID("r").Options(compose.Opt("A", "a")).InitialOption(compose.Opt("Z", "z")))
	if diff := cmp.Diff([]string{"membership /initial_option"}, kinds(r.Check())); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}
}

func TestTextInput_Bounds(t *testing.T) {
	ti := elems.BuildTextInput(elems.NewTextInput().ActionID("t").MinLength(10).MaxLength(5))
	if diff := cmp.Diff([]string{"min_value /max_length"}, kinds(ti.Check())); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}
	ti = elems.BuildTextInput(elems.NewTextInput().ActionID("t").MaxLength(3001).Placeholder(strings.Repeat("p", 151)))
	want := []string{"max_length /placeholder", "range /max_length"}
	if diff := cmp.Diff(want, kinds(ti.Check())); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestStaticSelect_OptionSource(t *testing.T) {
	none := elems.BuildStaticSelect(elems.NewStaticSelect().Placeholder("p").ActionID("s"))
	if diff := cmp.Diff([]string{"nonempty /"}, kinds(none.Check())); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}

	a := compose.Opt("A", "a")
	g := compose.BuildOptionGroup(compose.NewOptionGroup().Label("G").Option(compose.Opt("B", "b")))
	both := elems.BuildStaticSelect(elems.NewStaticSelect().Placeholder("p").ActionID("s").Options(a).OptionGroup(g))
	if diff := cmp.Diff([]string{"exclusive /option_groups"}, kinds(both.Check())); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}

	grouped := elems.BuildStaticSelect(elems.NewStaticSelect().Placeholder("p").ActionID("s").OptionGroups(g).InitialOption(compose.Opt("B", "b")))
	if r := grouped.Check(); len(r) != 0 {
		t.Fatalf("grouped initial option should be accepted, got %v", kinds(r))
	}
}

func TestMultiStaticSelect_Rules(t *testing.T) {
	s := elems.BuildMultiStaticSelect(elems.NewMultiStaticSelect().
		Placeholder("p").ActionID("m").
		Options(compose.Opt("A", "a")).
		InitialOptions(compose.Opt("A", "a"), compose.Opt("C", "c")).
		MaxSelectedItems(0))
	want := []string{"min_value /max_selected_items", "membership /initial_options/1"}
	if diff := cmp.Diff(want, kinds(s.Check())); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestSelect_PlaceholderLimit(t *testing.T) {
	u := elems.BuildUsersSelect(elems.NewUsersSelect().Placeholder(strings.Repeat("p", 151)).ActionID("u"))
	if diff := cmp.Diff([]string{"max_length /placeholder"}, kinds(u.Check())); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}
	if got := u.Placeholder().Text(); len(got) != 151 {
		t.Fatalf("placeholder lost: %d", len(got))
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	c := elems.BuildCheckboxes(elems.NewCheckboxes().ActionID("cb").Options(compose.Opt("A", "a")))
	opts := c.Options()
	opts[0] = compose.Opt("Z", "z")
	if c.Options()[0].Value() != "a" {
		t.Fatalf("mutating the accessor result changed the node")
	}
}
