package surface_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/blocks"
	"github.com/reoring/blockkit/compose"
	"github.com/reoring/blockkit/elems"
	"github.com/reoring/blockkit/surface"
)

func kinds(r blockkit.Report) []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.Kind + " " + v.Path.Pointer()
	}
	return out
}

func inputBlock(t *testing.T, actionID string) blocks.Input {
	t.Helper()
	el, err := blocks.InputOf(elems.BuildTextInput(elems.NewTextInput().ActionID(actionID)))
	if err != nil {
		t.Fatal(err)
	}
	return blocks.BuildInput(blocks.NewInput().Label("Name").Element(el))
}

func TestMessage_TextOrBlocks(t *testing.T) {
	if diff := cmp.Diff([]string{"nonempty /"}, kinds(surface.NewMessage().Build().Check())); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}
	if err := blockkit.Validate(surface.NewMessage().Text("hello").Build()); err != nil {
		t.Fatalf("text-only message should validate: %v", err)
	}
}

func TestMessage_BlockLimit(t *testing.T) {
	b := surface.NewMessage()
	for i := 0; i < 51; i++ {
		b = b.Block(blocks.NewDivider().Build())
	}
	if diff := cmp.Diff([]string{"bounded_count /blocks"}, kinds(b.Build().Check())); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}
}

func TestModal_NestedPathsAreRootRelative(t *testing.T) {
	m := surface.BuildModal(surface.NewModal().
		Title("Signup").
		Block(blocks.NewSection().Text(compose.Mrkdwn("hi")).Build()).
		Block(inputBlock(t, strings.Repeat("a", 256))).
		Submit("Go"))
	got := blockkit.Validate(m)
	r, ok := blockkit.AsReport(got)
	if !ok {
		t.Fatalf("expected a report, got %v", got)
	}
	if diff := cmp.Diff([]string{"max_length /blocks/1/element/action_id"}, kinds(r)); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}
}

func TestModal_SubmitRequiredWithInputs(t *testing.T) {
	m := surface.BuildModal(surface.NewModal().Title("Signup").Blocks(inputBlock(t, "name")))
	got := m.Check()
	if diff := cmp.Diff([]string{"nonempty /submit"}, kinds(got)); diff != "" {
		t.Fatalf("violations mismatch:\n%s", diff)
	}
	if got[0].Rule != "submit_with_inputs" {
		t.Fatalf("rule not recorded: %+v", got[0])
	}

	plain := surface.BuildModal(surface.NewModal().Title("Info").Blocks(blocks.NewDivider().Build()))
	if err := blockkit.Validate(plain); err != nil {
		t.Fatalf("modal without inputs needs no submit: %v", err)
	}
}

func TestModal_AggregatesLabels(t *testing.T) {
	m := surface.BuildModal(surface.NewModal().
		Title(strings.Repeat("t", 25)).
		Blocks().
		Close(strings.Repeat("c", 25)).
		Submit(strings.Repeat("s", 25)))
	want := []string{"max_length /title", "max_length /close", "max_length /submit"}
	if diff := cmp.Diff(want, kinds(m.Check())); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"title", "blocks"}, surface.NewModal().Missing()); diff != "" {
		t.Fatalf("missing mismatch:\n%s", diff)
	}
}

func TestDecode_Surfaces(t *testing.T) {
	modal := surface.BuildModal(surface.NewModal().
		Title("Signup").
		Blocks(blocks.BuildHeader(blocks.NewHeader().Text("Hi")), inputBlock(t, "name")).
		Submit("Go").
		CallbackID("signup").
		NotifyOnClose(true))
	msg := surface.NewMessage().Text("hi").Blocks(blocks.NewDivider().Build()).ThreadTS("1.2").Build()

	for _, s := range []surface.Surface{modal, msg} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatal(err)
		}
		back, err := surface.Decode(data)
		if err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		if !reflect.DeepEqual(back, s) {
			t.Fatalf("round trip mismatch:\n%s", data)
		}
	}

	_, err := surface.Decode([]byte(`{"type":"home","blocks":[]}`))
	var uk *blockkit.UnknownKindError
	if !errors.As(err, &uk) || uk.Family != "surface" {
		t.Fatalf("expected UnknownKindError, got %v", err)
	}

	_, err = surface.Decode([]byte(`{"type":"modal","title":{"type":"plain_text","text":"x"},"blocks":[{"type":"carousel"}]}`))
	if !errors.As(err, &uk) || uk.Kind != "carousel" {
		t.Fatalf("expected unknown block kind, got %v", err)
	}
}
