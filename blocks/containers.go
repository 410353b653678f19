package blocks

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/build"
	"github.com/reoring/blockkit/compose"
	"github.com/reoring/blockkit/internal/wire"
	"github.com/reoring/blockkit/rules"
	"github.com/reoring/blockkit/schema"
)

// Actions holds up to five interactive elements.
type Actions struct {
	elements []ActionsElement
	blockID  *string
}

func (Actions) Kind() blockkit.Kind          { return KindActions }
func (Actions) block()                       {}
func (a Actions) Elements() []ActionsElement { return build.Clone(a.elements) }
func (a Actions) BlockID() (string, bool)    { return optRef(a.blockID) }
func (a Actions) Check() blockkit.Report     { return actionsDef.Check(a) }

var actionsDef = schema.Register(schema.Object[Actions]("actions").Tag(KindActions).
	Field("elements", schema.Children(func(a Actions) []ActionsElement { return a.elements }).
		Count(rules.CountBetween(1, 5))).Required().
	Field("block_id", blockIDField(func(a Actions) *string { return a.blockID })).
	MustBuild())

// ActionsBuilder stages an Actions block; elements are required.
type ActionsBuilder[E build.Marker] struct{ a Actions }

func NewActions() ActionsBuilder[build.Unset] { return ActionsBuilder[build.Unset]{} }

// Elements replaces the elements.
func (b ActionsBuilder[E]) Elements(es ...ActionsElement) ActionsBuilder[build.Set] {
	b.a.elements = append([]ActionsElement{}, es...)
	return ActionsBuilder[build.Set]{a: b.a}
}

// Element appends one element.
func (b ActionsBuilder[E]) Element(e ActionsElement) ActionsBuilder[build.Set] {
	b.a.elements = build.Append(b.a.elements, e)
	return ActionsBuilder[build.Set]{a: b.a}
}

func (b ActionsBuilder[E]) BlockID(id string) ActionsBuilder[E] {
	b.a.blockID = &id
	return b
}

func (b ActionsBuilder[E]) Missing() []string { return build.Missing(build.Field[E]("elements")) }

func BuildActions[E build.Provided](b ActionsBuilder[E]) Actions { return b.a }

type actionsWire struct {
	Type     string           `json:"type"`
	Elements []ActionsElement `json:"elements"`
	BlockID  *string          `json:"block_id,omitempty"`
}

func (a Actions) MarshalJSON() ([]byte, error) {
	return json.Marshal(actionsWire{Type: string(KindActions), Elements: wire.Req(a.elements), BlockID: a.blockID})
}

func (a *Actions) UnmarshalJSON(data []byte) error {
	var w actionsWire
	if err := decode(data, &w, &w.Type, KindActions); err != nil {
		return err
	}
	*a = Actions{elements: wire.Req(w.Elements), blockID: w.BlockID}
	return nil
}

// Context shows small text and images under other content.
type Context struct {
	elements []ContextElement
	blockID  *string
}

func (Context) Kind() blockkit.Kind          { return KindContext }
func (Context) block()                       {}
func (c Context) Elements() []ContextElement { return build.Clone(c.elements) }
func (c Context) BlockID() (string, bool)    { return optRef(c.blockID) }
func (c Context) Check() blockkit.Report     { return contextDef.Check(c) }

var contextDef = schema.Register(schema.Object[Context]("context").Tag(KindContext).
	Field("elements", schema.Children(func(c Context) []ContextElement { return c.elements }).
		Count(rules.CountBetween(1, 10))).Required().
	Field("block_id", blockIDField(func(c Context) *string { return c.blockID })).
	MustBuild())

// ContextBuilder stages a Context block; elements are required.
type ContextBuilder[E build.Marker] struct{ c Context }

func NewContext() ContextBuilder[build.Unset] { return ContextBuilder[build.Unset]{} }

func (b ContextBuilder[E]) Elements(es ...ContextElement) ContextBuilder[build.Set] {
	b.c.elements = append([]ContextElement{}, es...)
	return ContextBuilder[build.Set]{c: b.c}
}

func (b ContextBuilder[E]) Element(e ContextElement) ContextBuilder[build.Set] {
	b.c.elements = build.Append(b.c.elements, e)
	return ContextBuilder[build.Set]{c: b.c}
}

func (b ContextBuilder[E]) BlockID(id string) ContextBuilder[E] {
	b.c.blockID = &id
	return b
}

func (b ContextBuilder[E]) Missing() []string { return build.Missing(build.Field[E]("elements")) }

func BuildContext[E build.Provided](b ContextBuilder[E]) Context { return b.c }

type contextWire struct {
	Type     string           `json:"type"`
	Elements []ContextElement `json:"elements"`
	BlockID  *string          `json:"block_id,omitempty"`
}

func (c Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(contextWire{Type: string(KindContext), Elements: wire.Req(c.elements), BlockID: c.blockID})
}

func (c *Context) UnmarshalJSON(data []byte) error {
	var w contextWire
	if err := decode(data, &w, &w.Type, KindContext); err != nil {
		return err
	}
	*c = Context{elements: wire.Req(w.Elements), blockID: w.BlockID}
	return nil
}

// Input collects one value from the user in modals and home tabs.
type Input struct {
	label          compose.Text
	element        InputElement
	dispatchAction *bool
	blockID        *string
	hint           *compose.Text
	optional       *bool
}

func (Input) Kind() blockkit.Kind            { return KindInput }
func (Input) block()                         {}
func (i Input) Label() compose.Text          { return i.label }
func (i Input) Element() InputElement        { return i.element }
func (i Input) DispatchAction() (bool, bool) { return optRef(i.dispatchAction) }
func (i Input) BlockID() (string, bool)      { return optRef(i.blockID) }
func (i Input) Hint() (compose.Text, bool)   { return optRef(i.hint) }
func (i Input) Optional() (bool, bool)       { return optRef(i.optional) }
func (i Input) Check() blockkit.Report       { return inputDef.Check(i) }

var inputDef = schema.Register(schema.Object[Input]("input").Tag(KindInput).
	Field("label", schema.Child(Input.Label, compose.PlainOnly(), compose.MaxText(2000))).Required().
	Field("element", schema.Child(Input.Element)).Required().
	Field("dispatch_action", schema.OptBool(func(i Input) *bool { return i.dispatchAction })).
	Field("block_id", blockIDField(func(i Input) *string { return i.blockID })).
	Field("hint", schema.OptChild(func(i Input) *compose.Text { return i.hint }, compose.PlainOnly(), compose.MaxText(2000))).
	Field("optional", schema.OptBool(func(i Input) *bool { return i.optional })).
	MustBuild())

// InputBuilder stages an Input block; label and element are required.
type InputBuilder[L, E build.Marker] struct{ i Input }

func NewInput() InputBuilder[build.Unset, build.Unset] { return InputBuilder[build.Unset, build.Unset]{} }

// Label sets the plain_text label.
func (b InputBuilder[L, E]) Label(s string) InputBuilder[build.Set, E] {
	b.i.label = compose.Plain(s)
	return InputBuilder[build.Set, E]{i: b.i}
}

func (b InputBuilder[L, E]) Element(e InputElement) InputBuilder[L, build.Set] {
	b.i.element = e
	return InputBuilder[L, build.Set]{i: b.i}
}

func (b InputBuilder[L, E]) DispatchAction(on bool) InputBuilder[L, E] {
	b.i.dispatchAction = &on
	return b
}

func (b InputBuilder[L, E]) BlockID(id string) InputBuilder[L, E] {
	b.i.blockID = &id
	return b
}

func (b InputBuilder[L, E]) Hint(s string) InputBuilder[L, E] {
	t := compose.Plain(s)
	b.i.hint = &t
	return b
}

func (b InputBuilder[L, E]) Optional(on bool) InputBuilder[L, E] {
	b.i.optional = &on
	return b
}

func (b InputBuilder[L, E]) Missing() []string {
	return build.Missing(build.Field[L]("label"), build.Field[E]("element"))
}

func BuildInput[L, E build.Provided](b InputBuilder[L, E]) Input { return b.i }

type inputWire struct {
	Type           string        `json:"type"`
	Label          compose.Text  `json:"label"`
	Element        InputElement  `json:"element"`
	DispatchAction *bool         `json:"dispatch_action,omitempty"`
	BlockID        *string       `json:"block_id,omitempty"`
	Hint           *compose.Text `json:"hint,omitempty"`
	Optional       *bool         `json:"optional,omitempty"`
}

func (i Input) MarshalJSON() ([]byte, error) {
	return json.Marshal(inputWire{
		Type:           string(KindInput),
		Label:          i.label,
		Element:        i.element,
		DispatchAction: i.dispatchAction,
		BlockID:        i.blockID,
		Hint:           i.hint,
		Optional:       i.optional,
	})
}

func (i *Input) UnmarshalJSON(data []byte) error {
	var w inputWire
	if err := decode(data, &w, &w.Type, KindInput); err != nil {
		return err
	}
	*i = Input{
		label:          w.Label,
		element:        w.Element,
		dispatchAction: w.DispatchAction,
		blockID:        w.BlockID,
		hint:           w.Hint,
		optional:       w.Optional,
	}
	return nil
}
