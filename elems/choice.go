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

// Checkboxes is a group of checkboxes; the user may tick several options.
type Checkboxes struct {
	actionID       string
	options        []compose.Option
	initialOptions []compose.Option
	confirm        *compose.Confirm
}

func (Checkboxes) Kind() blockkit.Kind                { return KindCheckboxes }
func (Checkboxes) element()                           {}
func (c Checkboxes) ActionID() string                 { return c.actionID }
func (c Checkboxes) Options() []compose.Option        { return build.Clone(c.options) }
func (c Checkboxes) InitialOptions() []compose.Option { return build.Clone(c.initialOptions) }
func (c Checkboxes) Confirm() (compose.Confirm, bool) { return optRef(c.confirm) }
func (c Checkboxes) Check() blockkit.Report           { return checkboxesDef.Check(c) }

var checkboxesDef = schema.Register(schema.Object[Checkboxes]("checkboxes").Tag(KindCheckboxes).
	Field("action_id", schema.String(Checkboxes.ActionID, actionID())).Required().
	Field("options", schema.Children(func(c Checkboxes) []compose.Option { return c.options }, compose.NoURL()).
		Count(rules.CountBetween(1, 10))).Required().
	Field("initial_options", schema.Children(func(c Checkboxes) []compose.Option { return c.initialOptions }, compose.NoURL()).
		Count(rules.BoundedCount(10))).
	Field("confirm", confirmField(func(c Checkboxes) *compose.Confirm { return c.confirm })).
	Refine("initial_options_in_options", rules.Subset("initial_options", "options",
		func(c Checkboxes) []string { return optionsOf(c.initialOptions) },
		func(c Checkboxes) []string { return optionsOf(c.options) })).
	MustBuild())

// CheckboxesBuilder stages Checkboxes; action_id and options are required.
type CheckboxesBuilder[A, O build.Marker] struct{ c Checkboxes }

func NewCheckboxes() CheckboxesBuilder[build.Unset, build.Unset] {
	return CheckboxesBuilder[build.Unset, build.Unset]{}
}

func (b CheckboxesBuilder[A, O]) ActionID(id string) CheckboxesBuilder[build.Set, O] {
	b.c.actionID = id
	return CheckboxesBuilder[build.Set, O]{c: b.c}
}

// Options replaces the options.
func (b CheckboxesBuilder[A, O]) Options(opts ...compose.Option) CheckboxesBuilder[A, build.Set] {
	b.c.options = append([]compose.Option{}, opts...)
	return CheckboxesBuilder[A, build.Set]{c: b.c}
}

// Option appends one option.
func (b CheckboxesBuilder[A, O]) Option(o compose.Option) CheckboxesBuilder[A, build.Set] {
	b.c.options = build.Append(b.c.options, o)
	return CheckboxesBuilder[A, build.Set]{c: b.c}
}

// InitialOptions sets the options ticked on load. Each must also be one of
// the options.
func (b CheckboxesBuilder[A, O]) InitialOptions(opts ...compose.Option) CheckboxesBuilder[A, O] {
	b.c.initialOptions = append([]compose.Option{}, opts...)
	return b
}

func (b CheckboxesBuilder[A, O]) Confirm(c compose.Confirm) CheckboxesBuilder[A, O] {
	b.c.confirm = &c
	return b
}

func (b CheckboxesBuilder[A, O]) Missing() []string {
	return build.Missing(build.Field[A]("action_id"), build.Field[O]("options"))
}

func BuildCheckboxes[A, O build.Provided](b CheckboxesBuilder[A, O]) Checkboxes { return b.c }

type checkboxesWire struct {
	Type           string            `json:"type"`
	ActionID       string            `json:"action_id"`
	Options        []compose.Option  `json:"options"`
	InitialOptions *[]compose.Option `json:"initial_options,omitempty"`
	Confirm        *compose.Confirm  `json:"confirm,omitempty"`
}

func (c Checkboxes) MarshalJSON() ([]byte, error) {
	return json.Marshal(checkboxesWire{
		Type:           string(KindCheckboxes),
		ActionID:       c.actionID,
		Options:        wire.Req(c.options),
		InitialOptions: wire.Opt(c.initialOptions),
		Confirm:        c.confirm,
	})
}

func (c *Checkboxes) UnmarshalJSON(data []byte) error {
	var w checkboxesWire
	if err := decode(data, &w, &w.Type, KindCheckboxes); err != nil {
		return err
	}
	*c = Checkboxes{
		actionID:       w.ActionID,
		options:        wire.Req(w.Options),
		initialOptions: wire.FromOpt(w.InitialOptions),
		confirm:        w.Confirm,
	}
	return nil
}

// RadioButtons is a group of radio buttons; the user picks one option.
type RadioButtons struct {
	actionID      string
	options       []compose.Option
	initialOption *compose.Option
	confirm       *compose.Confirm
}

func (RadioButtons) Kind() blockkit.Kind                     { return KindRadioButtons }
func (RadioButtons) element()                                {}
func (r RadioButtons) ActionID() string                      { return r.actionID }
func (r RadioButtons) Options() []compose.Option             { return build.Clone(r.options) }
func (r RadioButtons) InitialOption() (compose.Option, bool) { return optRef(r.initialOption) }
func (r RadioButtons) Confirm() (compose.Confirm, bool)      { return optRef(r.confirm) }
func (r RadioButtons) Check() blockkit.Report                { return radioDef.Check(r) }

var radioDef = schema.Register(schema.Object[RadioButtons]("radio_buttons").Tag(KindRadioButtons).
	Field("action_id", schema.String(RadioButtons.ActionID, actionID())).Required().
	Field("options", schema.Children(func(r RadioButtons) []compose.Option { return r.options }, compose.NoURL()).
		Count(rules.CountBetween(1, 10))).Required().
	Field("initial_option", schema.OptChild(func(r RadioButtons) *compose.Option { return r.initialOption }, compose.NoURL())).
	Field("confirm", confirmField(func(r RadioButtons) *compose.Confirm { return r.confirm })).
	Refine("initial_option_in_options", rules.MemberOf("initial_option", "options",
		func(r RadioButtons) (string, bool) { return initialValue(r.initialOption) },
		func(r RadioButtons) []string { return optionsOf(r.options) })).
	MustBuild())

func initialValue(o *compose.Option) (string, bool) {
	if o == nil {
		return "", false
	}
	return o.Value(), true
}

// RadioButtonsBuilder stages RadioButtons; action_id and options are required.
type RadioButtonsBuilder[A, O build.Marker] struct{ r RadioButtons }

func NewRadioButtons() RadioButtonsBuilder[build.Unset, build.Unset] {
	return RadioButtonsBuilder[build.Unset, build.Unset]{}
}

func (b RadioButtonsBuilder[A, O]) ActionID(id string) RadioButtonsBuilder[build.Set, O] {
	b.r.actionID = id
	return RadioButtonsBuilder[build.Set, O]{r: b.r}
}

func (b RadioButtonsBuilder[A, O]) Options(opts ...compose.Option) RadioButtonsBuilder[A, build.Set] {
	b.r.options = append([]compose.Option{}, opts...)
	return RadioButtonsBuilder[A, build.Set]{r: b.r}
}

func (b RadioButtonsBuilder[A, O]) Option(o compose.Option) RadioButtonsBuilder[A, build.Set] {
	b.r.options = build.Append(b.r.options, o)
	return RadioButtonsBuilder[A, build.Set]{r: b.r}
}

func (b RadioButtonsBuilder[A, O]) InitialOption(o compose.Option) RadioButtonsBuilder[A, O] {
	b.r.initialOption = &o
	return b
}

func (b RadioButtonsBuilder[A, O]) Confirm(c compose.Confirm) RadioButtonsBuilder[A, O] {
	b.r.confirm = &c
	return b
}

func (b RadioButtonsBuilder[A, O]) Missing() []string {
	return build.Missing(build.Field[A]("action_id"), build.Field[O]("options"))
}

func BuildRadioButtons[A, O build.Provided](b RadioButtonsBuilder[A, O]) RadioButtons { return b.r }

type radioWire struct {
	Type          string           `json:"type"`
	ActionID      string           `json:"action_id"`
	Options       []compose.Option `json:"options"`
	InitialOption *compose.Option  `json:"initial_option,omitempty"`
	Confirm       *compose.Confirm `json:"confirm,omitempty"`
}

func (r RadioButtons) MarshalJSON() ([]byte, error) {
	return json.Marshal(radioWire{
		Type:          string(KindRadioButtons),
		ActionID:      r.actionID,
		Options:       wire.Req(r.options),
		InitialOption: r.initialOption,
		Confirm:       r.confirm,
	})
}

func (r *RadioButtons) UnmarshalJSON(data []byte) error {
	var w radioWire
	if err := decode(data, &w, &w.Type, KindRadioButtons); err != nil {
		return err
	}
	*r = RadioButtons{
		actionID:      w.ActionID,
		options:       wire.Req(w.Options),
		initialOption: w.InitialOption,
		confirm:       w.Confirm,
	}
	return nil
}
