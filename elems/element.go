// Package elems implements Block Kit interactive elements and the general
// element family. Every element is a blockkit.Node with a builder, a
// definition and a JSON encoding; Decode dispatches wire objects on their
// "type" field.
package elems

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/compose"
	"github.com/reoring/blockkit/rules"
	"github.com/reoring/blockkit/schema"
	"github.com/reoring/blockkit/variant"
)

// Element kinds.
const (
	KindButton                   blockkit.Kind = "button"
	KindCheckboxes               blockkit.Kind = "checkboxes"
	KindDatePicker               blockkit.Kind = "datepicker"
	KindImage                    blockkit.Kind = "image"
	KindOverflow                 blockkit.Kind = "overflow"
	KindTextInput                blockkit.Kind = "plain_text_input"
	KindRadioButtons             blockkit.Kind = "radio_buttons"
	KindStaticSelect             blockkit.Kind = "static_select"
	KindExternalSelect           blockkit.Kind = "external_select"
	KindUsersSelect              blockkit.Kind = "users_select"
	KindConversationsSelect      blockkit.Kind = "conversations_select"
	KindChannelsSelect           blockkit.Kind = "channels_select"
	KindMultiStaticSelect        blockkit.Kind = "multi_static_select"
	KindMultiUsersSelect         blockkit.Kind = "multi_users_select"
	KindMultiConversationsSelect blockkit.Kind = "multi_conversations_select"
)

// Element is the general family of interactive elements. The set of
// implementations is closed.
type Element interface {
	blockkit.Node
	json.Marshaler
	element()
}

var registry = variant.NewRegistry[Element]("element")

func init() {
	register[Button](KindButton)
	register[Checkboxes](KindCheckboxes)
	register[DatePicker](KindDatePicker)
	register[Image](KindImage)
	register[Overflow](KindOverflow)
	register[TextInput](KindTextInput)
	register[RadioButtons](KindRadioButtons)
	register[StaticSelect](KindStaticSelect)
	register[ExternalSelect](KindExternalSelect)
	register[UsersSelect](KindUsersSelect)
	register[ConversationsSelect](KindConversationsSelect)
	register[ChannelsSelect](KindChannelsSelect)
	register[MultiStaticSelect](KindMultiStaticSelect)
	register[MultiUsersSelect](KindMultiUsersSelect)
	register[MultiConversationsSelect](KindMultiConversationsSelect)

	names := make([]string, 0, len(registry.Kinds()))
	for _, k := range registry.Kinds() {
		names = append(names, string(k))
	}
	schema.RegisterUnion("element", names...)
}

func register[N Element, P interface {
	*N
	json.Unmarshaler
}](kind blockkit.Kind) {
	registry.Register(kind, func(data []byte) (Element, error) {
		var n N
		if err := P(&n).UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return n, nil
	})
}

// Decode parses any element from its wire form.
func Decode(data []byte) (Element, error) { return registry.Decode(data) }

// Kinds lists every element kind.
func Kinds() []blockkit.Kind { return registry.Kinds() }

// Field constraints shared across elements.

func actionID() rules.Constraint[string] { return rules.MaxLength(255) }

func placeholder() []rules.Constraint[compose.Text] {
	return []rules.Constraint[compose.Text]{compose.PlainOnly(), compose.MaxText(150)}
}

func confirmField[N any](get func(N) *compose.Confirm) schema.Accessor[N] {
	return schema.OptChild(get)
}

func optionsOf(opts []compose.Option) []string { return compose.Values(opts) }

func optRef[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// decode unmarshals an element's wire struct and checks its discriminant.
func decode(data []byte, w any, typ *string, want blockkit.Kind) error {
	if err := json.Unmarshal(data, w); err != nil {
		return fmt.Errorf("decode %s: %w", want, err)
	}
	return blockkit.ExpectKind(*typ, want)
}
