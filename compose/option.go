package compose

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/build"
	"github.com/reoring/blockkit/internal/wire"
	"github.com/reoring/blockkit/rules"
	"github.com/reoring/blockkit/schema"
)

// KindOption identifies option objects. Options carry no wire "type".
const KindOption blockkit.Kind = "option"

// Option is one choice of a select menu, overflow menu, checkbox group or
// radio group.
type Option struct {
	text        Text
	value       string
	description *Text
	url         *string
}

func (Option) Kind() blockkit.Kind         { return KindOption }
func (o Option) Text() Text                { return o.text }
func (o Option) Value() string             { return o.value }
func (o Option) Description() (Text, bool) { return deref(o.description) }
func (o Option) URL() (string, bool)       { return deref(o.url) }
func (o Option) Check() blockkit.Report    { return optionDef.Check(o) }

var optionDef = schema.Register(schema.Object[Option]("option").
	Field("text", schema.Child(Option.Text, MaxText(75))).Required().
	Field("value", schema.String(Option.Value, rules.MaxLength(150))).Required().
	Field("description", schema.OptChild(func(o Option) *Text { return o.description }, PlainOnly(), MaxText(75))).
	Field("url", schema.OptString(func(o Option) *string { return o.url }, rules.URL(), rules.MaxLength(3000))).
	MustBuild())

// Opt is shorthand for a plain_text option.
func Opt(text, value string) Option { return Option{text: Plain(text), value: value} }

// PlainOption requires an option's label to be plain_text, as select menus do.
func PlainOption() rules.Constraint[Option] {
	return rules.On(Option.Text, PlainOnly())
}

// NoURL rejects options carrying a url; only overflow menus accept one.
func NoURL() rules.Constraint[Option] {
	return rules.RequiredVariant("option without url", func(o Option) bool { return o.url == nil })
}

// Values lists the values of opts in order.
func Values(opts []Option) []string {
	if opts == nil {
		return nil
	}
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.value
	}
	return out
}

// OptionBuilder stages an Option; text and value are required.
type OptionBuilder[T, V build.Marker] struct{ o Option }

// NewOption starts an Option.
func NewOption() OptionBuilder[build.Unset, build.Unset] {
	return OptionBuilder[build.Unset, build.Unset]{}
}

func (b OptionBuilder[T, V]) Text(t Text) OptionBuilder[build.Set, V] {
	b.o.text = t
	return OptionBuilder[build.Set, V]{o: b.o}
}

func (b OptionBuilder[T, V]) Value(v string) OptionBuilder[T, build.Set] {
	b.o.value = v
	return OptionBuilder[T, build.Set]{o: b.o}
}

// Description sets a plain_text description shown under the label.
func (b OptionBuilder[T, V]) Description(s string) OptionBuilder[T, V] {
	d := Plain(s)
	b.o.description = &d
	return b
}

// URL sets the link opened by an overflow menu option.
func (b OptionBuilder[T, V]) URL(u string) OptionBuilder[T, V] {
	b.o.url = &u
	return b
}

func (b OptionBuilder[T, V]) Missing() []string {
	return build.Missing(build.Field[T]("text"), build.Field[V]("value"))
}

// BuildOption finalizes an Option once text and value are set.
func BuildOption[T, V build.Provided](b OptionBuilder[T, V]) Option { return b.o }

type optionWire struct {
	Text        Text    `json:"text"`
	Value       string  `json:"value"`
	Description *Text   `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
}

func (o Option) MarshalJSON() ([]byte, error) {
	return json.Marshal(optionWire{Text: o.text, Value: o.value, Description: o.description, URL: o.url})
}

func (o *Option) UnmarshalJSON(data []byte) error {
	var w optionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode option: %w", err)
	}
	*o = Option{text: w.Text, value: w.Value, description: w.Description, url: w.URL}
	return nil
}

// KindOptionGroup identifies option groups.
const KindOptionGroup blockkit.Kind = "option_group"

// OptionGroup is a labelled run of options in a static select menu.
type OptionGroup struct {
	label   Text
	options []Option
}

func (OptionGroup) Kind() blockkit.Kind      { return KindOptionGroup }
func (g OptionGroup) Label() Text            { return g.label }
func (g OptionGroup) Options() []Option      { return build.Clone(g.options) }
func (g OptionGroup) Check() blockkit.Report { return optionGroupDef.Check(g) }

var optionGroupDef = schema.Register(schema.Object[OptionGroup]("option_group").
	Field("label", schema.Child(OptionGroup.Label, PlainOnly(), MaxText(75))).Required().
	Field("options", schema.Children(func(g OptionGroup) []Option { return g.options }, PlainOption(), NoURL()).
		Count(rules.CountBetween(1, 100))).Required().
	MustBuild())

// OptionGroupBuilder stages an OptionGroup; label and options are required.
type OptionGroupBuilder[L, O build.Marker] struct{ g OptionGroup }

func NewOptionGroup() OptionGroupBuilder[build.Unset, build.Unset] {
	return OptionGroupBuilder[build.Unset, build.Unset]{}
}

func (b OptionGroupBuilder[L, O]) Label(s string) OptionGroupBuilder[build.Set, O] {
	b.g.label = Plain(s)
	return OptionGroupBuilder[build.Set, O]{g: b.g}
}

// Options replaces the options.
func (b OptionGroupBuilder[L, O]) Options(opts ...Option) OptionGroupBuilder[L, build.Set] {
	b.g.options = append([]Option{}, opts...)
	return OptionGroupBuilder[L, build.Set]{g: b.g}
}

// Option appends one option.
func (b OptionGroupBuilder[L, O]) Option(o Option) OptionGroupBuilder[L, build.Set] {
	b.g.options = build.Append(b.g.options, o)
	return OptionGroupBuilder[L, build.Set]{g: b.g}
}

func (b OptionGroupBuilder[L, O]) Missing() []string {
	return build.Missing(build.Field[L]("label"), build.Field[O]("options"))
}

func BuildOptionGroup[L, O build.Provided](b OptionGroupBuilder[L, O]) OptionGroup { return b.g }

type optionGroupWire struct {
	Label   Text     `json:"label"`
	Options []Option `json:"options"`
}

func (g OptionGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(optionGroupWire{Label: g.label, Options: wire.Req(g.options)})
}

func (g *OptionGroup) UnmarshalJSON(data []byte) error {
	var w optionGroupWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode option_group: %w", err)
	}
	*g = OptionGroup{label: w.Label, options: wire.Req(w.Options)}
	return nil
}
