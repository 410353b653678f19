package elems

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/build"
	"github.com/reoring/blockkit/compose"
	"github.com/reoring/blockkit/rules"
	"github.com/reoring/blockkit/schema"
)

// Button is an interactive button; it may open a URL.
type Button struct {
	text               compose.Text
	actionID           string
	url                *string
	value              *string
	style              *string
	confirm            *compose.Confirm
	accessibilityLabel *string
}

func (Button) Kind() blockkit.Kind                  { return KindButton }
func (Button) element()                             {}
func (b Button) Text() compose.Text                 { return b.text }
func (b Button) ActionID() string                   { return b.actionID }
func (b Button) URL() (string, bool)                { return optRef(b.url) }
func (b Button) Value() (string, bool)              { return optRef(b.value) }
func (b Button) Style() (string, bool)              { return optRef(b.style) }
func (b Button) Confirm() (compose.Confirm, bool)   { return optRef(b.confirm) }
func (b Button) AccessibilityLabel() (string, bool) { return optRef(b.accessibilityLabel) }
func (b Button) Check() blockkit.Report             { return buttonDef.Check(b) }

var buttonDef = schema.Register(schema.Object[Button]("button").Tag(KindButton).
	Field("text", schema.Child(Button.Text, compose.PlainOnly(), compose.MaxText(75))).Required().
	Field("action_id", schema.String(Button.ActionID, actionID())).Required().
	Field("url", schema.OptString(func(b Button) *string { return b.url }, rules.URL(), rules.MaxLength(3000))).
	Field("value", schema.OptString(func(b Button) *string { return b.value }, rules.MaxLength(2000))).
	Field("style", schema.OptString(func(b Button) *string { return b.style }, rules.OneOf(compose.StylePrimary, compose.StyleDanger))).
	Field("confirm", confirmField(func(b Button) *compose.Confirm { return b.confirm })).
	Field("accessibility_label", schema.OptString(func(b Button) *string { return b.accessibilityLabel }, rules.MaxLength(75))).
	MustBuild())

// ButtonBuilder stages a Button; text and action_id are required.
type ButtonBuilder[T, A build.Marker] struct{ b Button }

func NewButton() ButtonBuilder[build.Unset, build.Unset] {
	return ButtonBuilder[build.Unset, build.Unset]{}
}

// Text sets the plain_text label.
func (b ButtonBuilder[T, A]) Text(s string) ButtonBuilder[build.Set, A] {
	b.b.text = compose.Plain(s)
	return ButtonBuilder[build.Set, A]{b: b.b}
}

func (b ButtonBuilder[T, A]) ActionID(id string) ButtonBuilder[T, build.Set] {
	b.b.actionID = id
	return ButtonBuilder[T, build.Set]{b: b.b}
}

func (b ButtonBuilder[T, A]) URL(u string) ButtonBuilder[T, A] {
	b.b.url = &u
	return b
}

func (b ButtonBuilder[T, A]) Value(v string) ButtonBuilder[T, A] {
	b.b.value = &v
	return b
}

func (b ButtonBuilder[T, A]) Style(s string) ButtonBuilder[T, A] {
	b.b.style = &s
	return b
}

func (b ButtonBuilder[T, A]) Confirm(c compose.Confirm) ButtonBuilder[T, A] {
	b.b.confirm = &c
	return b
}

func (b ButtonBuilder[T, A]) AccessibilityLabel(s string) ButtonBuilder[T, A] {
	b.b.accessibilityLabel = &s
	return b
}

func (b ButtonBuilder[T, A]) Missing() []string {
	return build.Missing(build.Field[T]("text"), build.Field[A]("action_id"))
}

// BuildButton finalizes a Button once text and action_id are set.
func BuildButton[T, A build.Provided](b ButtonBuilder[T, A]) Button { return b.b }

type buttonWire struct {
	Type               string           `json:"type"`
	Text               compose.Text     `json:"text"`
	ActionID           string           `json:"action_id"`
	URL                *string          `json:"url,omitempty"`
	Value              *string          `json:"value,omitempty"`
	Style              *string          `json:"style,omitempty"`
	Confirm            *compose.Confirm `json:"confirm,omitempty"`
	AccessibilityLabel *string          `json:"accessibility_label,omitempty"`
}

func (b Button) MarshalJSON() ([]byte, error) {
	return json.Marshal(buttonWire{
		Type:               string(KindButton),
		Text:               b.text,
		ActionID:           b.actionID,
		URL:                b.url,
		Value:              b.value,
		Style:              b.style,
		Confirm:            b.confirm,
		AccessibilityLabel: b.accessibilityLabel,
	})
}

func (b *Button) UnmarshalJSON(data []byte) error {
	var w buttonWire
	if err := decode(data, &w, &w.Type, KindButton); err != nil {
		return err
	}
	*b = Button{
		text:               w.Text,
		actionID:           w.ActionID,
		url:                w.URL,
		value:              w.Value,
		style:              w.Style,
		confirm:            w.Confirm,
		accessibilityLabel: w.AccessibilityLabel,
	}
	return nil
}
