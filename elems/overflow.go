package elems

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/build"
	"github.com/reoring/blockkit/compose"
	"github.com/reoring/blockkit/internal/wire"
	"github.com/reoring/blockkit/rules"
	"github.com/reoring/blockkit/schema"
)

// Overflow is a compact "…" menu of two to five options. Unlike other option
// lists, overflow options may carry a url.
type Overflow struct {
	actionID string
	options  []compose.Option
	confirm  *compose.Confirm
}

func (Overflow) Kind() blockkit.Kind                { return KindOverflow }
func (Overflow) element()                           {}
func (o Overflow) ActionID() string                 { return o.actionID }
func (o Overflow) Options() []compose.Option        { return build.Clone(o.options) }
func (o Overflow) Confirm() (compose.Confirm, bool) { return optRef(o.confirm) }
func (o Overflow) Check() blockkit.Report           { return overflowDef.Check(o) }

var overflowDef = schema.Register(schema.Object[Overflow]("overflow").Tag(KindOverflow).
	Field("action_id", schema.String(Overflow.ActionID, actionID())).Required().
	Field("options", schema.Children(func(o Overflow) []compose.Option { return o.options }, compose.PlainOption()).
		Count(rules.CountBetween(2, 5))).Required().
	Field("confirm", confirmField(func(o Overflow) *compose.Confirm { return o.confirm })).
	MustBuild())

// OverflowBuilder stages an Overflow; action_id and options are required.
type OverflowBuilder[A, O build.Marker] struct{ o Overflow }

func NewOverflow() OverflowBuilder[build.Unset, build.Unset] {
	return OverflowBuilder[build.Unset, build.Unset]{}
}

func (b OverflowBuilder[A, O]) ActionID(id string) OverflowBuilder[build.Set, O] {
	b.o.actionID = id
	return OverflowBuilder[build.Set, O]{o: b.o}
}

func (b OverflowBuilder[A, O]) Options(opts ...compose.Option) OverflowBuilder[A, build.Set] {
	b.o.options = append([]compose.Option{}, opts...)
	return OverflowBuilder[A, build.Set]{o: b.o}
}

func (b OverflowBuilder[A, O]) Option(o compose.Option) OverflowBuilder[A, build.Set] {
	b.o.options = build.Append(b.o.options, o)
	return OverflowBuilder[A, build.Set]{o: b.o}
}

func (b OverflowBuilder[A, O]) Confirm(c compose.Confirm) OverflowBuilder[A, O] {
	b.o.confirm = &c
	return b
}

func (b OverflowBuilder[A, O]) Missing() []string {
	return build.Missing(build.Field[A]("action_id"), build.Field[O]("options"))
}

func BuildOverflow[A, O build.Provided](b OverflowBuilder[A, O]) Overflow { return b.o }

type overflowWire struct {
	Type     string           `json:"type"`
	ActionID string           `json:"action_id"`
	Options  []compose.Option `json:"options"`
	Confirm  *compose.Confirm `json:"confirm,omitempty"`
}

func (o Overflow) MarshalJSON() ([]byte, error) {
	return json.Marshal(overflowWire{Type: string(KindOverflow), ActionID: o.actionID, Options: wire.Req(o.options), Confirm: o.confirm})
}

func (o *Overflow) UnmarshalJSON(data []byte) error {
	var w overflowWire
	if err := decode(data, &w, &w.Type, KindOverflow); err != nil {
		return err
	}
	*o = Overflow{actionID: w.ActionID, options: wire.Req(w.Options), confirm: w.Confirm}
	return nil
}

// TextInput is a plain-text input field (wire type "plain_text_input"),
// usable only in input blocks.
type TextInput struct {
	actionID     string
	placeholder  *compose.Text
	initialValue *string
	multiline    *bool
	minLength    *int
	maxLength    *int
}

func (TextInput) Kind() blockkit.Kind                 { return KindTextInput }
func (TextInput) element()                            {}
func (t TextInput) ActionID() string                  { return t.actionID }
func (t TextInput) Placeholder() (compose.Text, bool) { return optRef(t.placeholder) }
func (t TextInput) InitialValue() (string, bool)      { return optRef(t.initialValue) }
func (t TextInput) Multiline() (bool, bool)           { return optRef(t.multiline) }
func (t TextInput) MinLength() (int, bool)            { return optRef(t.minLength) }
func (t TextInput) MaxLength() (int, bool)            { return optRef(t.maxLength) }
func (t TextInput) Check() blockkit.Report            { return textInputDef.Check(t) }

var textInputDef = schema.Register(schema.Object[TextInput]("plain_text_input").Tag(KindTextInput).
	Field("action_id", schema.String(TextInput.ActionID, actionID())).Required().
	Field("placeholder", schema.OptChild(func(t TextInput) *compose.Text { return t.placeholder }, placeholder()...)).
	Field("initial_value", schema.OptString(func(t TextInput) *string { return t.initialValue }, rules.MaxLength(3000))).
	Field("multiline", schema.OptBool(func(t TextInput) *bool { return t.multiline })).
	Field("min_length", schema.OptInt(func(t TextInput) *int { return t.minLength }, rules.Range(0, 3000))).
	Field("max_length", schema.OptInt(func(t TextInput) *int { return t.maxLength }, rules.Range(1, 3000))).
	Refine("min_not_above_max", rules.Ordered("min_length", "max_length", func(t TextInput) (int, int, bool) {
		if t.minLength == nil || t.maxLength == nil {
			return 0, 0, false
		}
		return *t.minLength, *t.maxLength, true
	})).
	MustBuild())

// TextInputBuilder stages a TextInput; action_id is required.
type TextInputBuilder[A build.Marker] struct{ t TextInput }

func NewTextInput() TextInputBuilder[build.Unset] { return TextInputBuilder[build.Unset]{} }

func (b TextInputBuilder[A]) ActionID(id string) TextInputBuilder[build.Set] {
	b.t.actionID = id
	return TextInputBuilder[build.Set]{t: b.t}
}

func (b TextInputBuilder[A]) Placeholder(s string) TextInputBuilder[A] {
	p := compose.Plain(s)
	b.t.placeholder = &p
	return b
}

func (b TextInputBuilder[A]) InitialValue(s string) TextInputBuilder[A] {
	b.t.initialValue = &s
	return b
}

func (b TextInputBuilder[A]) Multiline(on bool) TextInputBuilder[A] {
	b.t.multiline = &on
	return b
}

func (b TextInputBuilder[A]) MinLength(n int) TextInputBuilder[A] {
	b.t.minLength = &n
	return b
}

func (b TextInputBuilder[A]) MaxLength(n int) TextInputBuilder[A] {
	b.t.maxLength = &n
	return b
}

func (b TextInputBuilder[A]) Missing() []string {
	return build.Missing(build.Field[A]("action_id"))
}

func BuildTextInput[A build.Provided](b TextInputBuilder[A]) TextInput { return b.t }

type textInputWire struct {
	Type         string        `json:"type"`
	ActionID     string        `json:"action_id"`
	Placeholder  *compose.Text `json:"placeholder,omitempty"`
	InitialValue *string       `json:"initial_value,omitempty"`
	Multiline    *bool         `json:"multiline,omitempty"`
	MinLength    *int          `json:"min_length,omitempty"`
	MaxLength    *int          `json:"max_length,omitempty"`
}

func (t TextInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(textInputWire{
		Type:         string(KindTextInput),
		ActionID:     t.actionID,
		Placeholder:  t.placeholder,
		InitialValue: t.initialValue,
		Multiline:    t.multiline,
		MinLength:    t.minLength,
		MaxLength:    t.maxLength,
	})
}

func (t *TextInput) UnmarshalJSON(data []byte) error {
	var w textInputWire
	if err := decode(data, &w, &w.Type, KindTextInput); err != nil {
		return err
	}
	*t = TextInput{
		actionID:     w.ActionID,
		placeholder:  w.Placeholder,
		initialValue: w.InitialValue,
		multiline:    w.Multiline,
		minLength:    w.MinLength,
		maxLength:    w.MaxLength,
	}
	return nil
}
