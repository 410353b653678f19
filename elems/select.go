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

// menu holds the fields every select menu shares.
type menu struct {
	placeholder compose.Text
	actionID    string
	confirm     *compose.Confirm
}

func (m menu) Placeholder() compose.Text        { return m.placeholder }
func (m menu) ActionID() string                 { return m.actionID }
func (m menu) Confirm() (compose.Confirm, bool) { return optRef(m.confirm) }

type menuWire struct {
	Type        string           `json:"type"`
	Placeholder compose.Text     `json:"placeholder"`
	ActionID    string           `json:"action_id"`
	Confirm     *compose.Confirm `json:"confirm,omitempty"`
}

func (m menu) wire(kind blockkit.Kind) menuWire {
	return menuWire{Type: string(kind), Placeholder: m.placeholder, ActionID: m.actionID, Confirm: m.confirm}
}

func (w menuWire) menu() menu {
	return menu{placeholder: w.Placeholder, actionID: w.ActionID, confirm: w.Confirm}
}

// menuObject starts a select definition with the shared leading fields.
func menuObject[N any](kind blockkit.Kind, get func(N) menu) *schema.ObjectBuilder[N] {
	return schema.Object[N](string(kind)).Tag(kind).
		Field("placeholder", schema.Child(func(n N) compose.Text { return get(n).placeholder }, placeholder()...)).Required().
		Field("action_id", schema.String(func(n N) string { return get(n).actionID }, actionID())).Required()
}

func menuConfirm[N any](get func(N) menu) schema.Accessor[N] {
	return confirmField(func(n N) *compose.Confirm { return get(n).confirm })
}

// staticOptions validates the option list shared by static single and multi
// select menus.
func staticOptions[N any](opts func(N) []compose.Option) schema.Accessor[N] {
	return schema.Children(opts, compose.PlainOption(), compose.NoURL()).Count(rules.BoundedCount(100))
}

func staticGroups[N any](groups func(N) []compose.OptionGroup) schema.Accessor[N] {
	return schema.Children(groups).Count(rules.BoundedCount(100))
}

// optionSource requires exactly one of options and option_groups.
func optionSource[N any](opts func(N) []compose.Option, groups func(N) []compose.OptionGroup) rules.Refinement[N] {
	o := rules.Field("options", func(n N) bool { return opts(n) != nil })
	g := rules.Field("option_groups", func(n N) bool { return groups(n) != nil })
	return rules.All(rules.Exclusive(o, g), rules.AnyOf(o, g))
}

// allValues lists the values of the options and of every grouped option.
func allValues(opts []compose.Option, groups []compose.OptionGroup) []string {
	out := optionsOf(opts)
	for _, g := range groups {
		out = append(out, optionsOf(g.Options())...)
	}
	return out
}

// StaticSelect is a select menu over a fixed list of options or option groups.
type StaticSelect struct {
	menu
	options       []compose.Option
	optionGroups  []compose.OptionGroup
	initialOption *compose.Option
}

func (StaticSelect) Kind() blockkit.Kind                     { return KindStaticSelect }
func (StaticSelect) element()                                {}
func (s StaticSelect) Options() []compose.Option             { return build.Clone(s.options) }
func (s StaticSelect) OptionGroups() []compose.OptionGroup   { return build.Clone(s.optionGroups) }
func (s StaticSelect) InitialOption() (compose.Option, bool) { return optRef(s.initialOption) }
func (s StaticSelect) Check() blockkit.Report                { return staticSelectDef.Check(s) }

var staticSelectDef = func() *schema.Definition[StaticSelect] {
	m := func(s StaticSelect) menu { return s.menu }
	opts := func(s StaticSelect) []compose.Option { return s.options }
	groups := func(s StaticSelect) []compose.OptionGroup { return s.optionGroups }
	return schema.Register(menuObject(KindStaticSelect, m).
		Field("options", staticOptions(opts)).
		Field("option_groups", staticGroups(groups)).
		Field("initial_option", schema.OptChild(func(s StaticSelect) *compose.Option { return s.initialOption }, compose.PlainOption())).
		Field("confirm", menuConfirm(m)).
		Refine("option_source", optionSource(opts, groups)).
		Refine("initial_option_in_options", rules.MemberOf("initial_option", "options",
			func(s StaticSelect) (string, bool) { return initialValue(s.initialOption) },
			func(s StaticSelect) []string { return allValues(s.options, s.optionGroups) })).
		MustBuild())
}()

// StaticSelectBuilder stages a StaticSelect; placeholder and action_id are
// required. Exactly one of options and option groups must be supplied; that
// is checked by validation.
type StaticSelectBuilder[P, A build.Marker] struct{ s StaticSelect }

func NewStaticSelect() StaticSelectBuilder[build.Unset, build.Unset] {
	return StaticSelectBuilder[build.Unset, build.Unset]{}
}

func (b StaticSelectBuilder[P, A]) Placeholder(s string) StaticSelectBuilder[build.Set, A] {
	b.s.placeholder = compose.Plain(s)
	return StaticSelectBuilder[build.Set, A]{s: b.s}
}

func (b StaticSelectBuilder[P, A]) ActionID(id string) StaticSelectBuilder[P, build.Set] {
	b.s.actionID = id
	return StaticSelectBuilder[P, build.Set]{s: b.s}
}

func (b StaticSelectBuilder[P, A]) Options(opts ...compose.Option) StaticSelectBuilder[P, A] {
	b.s.options = append([]compose.Option{}, opts...)
	return b
}

func (b StaticSelectBuilder[P, A]) Option(o compose.Option) StaticSelectBuilder[P, A] {
	b.s.options = build.Append(b.s.options, o)
	return b
}

func (b StaticSelectBuilder[P, A]) OptionGroups(gs ...compose.OptionGroup) StaticSelectBuilder[P, A] {
	b.s.optionGroups = append([]compose.OptionGroup{}, gs...)
	return b
}

func (b StaticSelectBuilder[P, A]) OptionGroup(g compose.OptionGroup) StaticSelectBuilder[P, A] {
	b.s.optionGroups = build.Append(b.s.optionGroups, g)
	return b
}

func (b StaticSelectBuilder[P, A]) InitialOption(o compose.Option) StaticSelectBuilder[P, A] {
	b.s.initialOption = &o
	return b
}

func (b StaticSelectBuilder[P, A]) Confirm(c compose.Confirm) StaticSelectBuilder[P, A] {
	b.s.confirm = &c
	return b
}

func (b StaticSelectBuilder[P, A]) Missing() []string {
	return build.Missing(build.Field[P]("placeholder"), build.Field[A]("action_id"))
}

func BuildStaticSelect[P, A build.Provided](b StaticSelectBuilder[P, A]) StaticSelect { return b.s }

type staticSelectWire struct {
	menuWire
	Options       *[]compose.Option      `json:"options,omitempty"`
	OptionGroups  *[]compose.OptionGroup `json:"option_groups,omitempty"`
	InitialOption *compose.Option        `json:"initial_option,omitempty"`
}

func (s StaticSelect) MarshalJSON() ([]byte, error) {
	return json.Marshal(staticSelectWire{
		menuWire:      s.menu.wire(KindStaticSelect),
		Options:       wire.Opt(s.options),
		OptionGroups:  wire.Opt(s.optionGroups),
		InitialOption: s.initialOption,
	})
}

func (s *StaticSelect) UnmarshalJSON(data []byte) error {
	var w staticSelectWire
	if err := decode(data, &w, &w.Type, KindStaticSelect); err != nil {
		return err
	}
	*s = StaticSelect{
		menu:          w.menu(),
		options:       wire.FromOpt(w.Options),
		optionGroups:  wire.FromOpt(w.OptionGroups),
		initialOption: w.InitialOption,
	}
	return nil
}

// ExternalSelect is a select menu whose options are loaded from the app.
type ExternalSelect struct {
	menu
	initialOption  *compose.Option
	minQueryLength *int
}

func (ExternalSelect) Kind() blockkit.Kind                     { return KindExternalSelect }
func (ExternalSelect) element()                                {}
func (s ExternalSelect) InitialOption() (compose.Option, bool) { return optRef(s.initialOption) }
func (s ExternalSelect) MinQueryLength() (int, bool)           { return optRef(s.minQueryLength) }
func (s ExternalSelect) Check() blockkit.Report                { return externalSelectDef.Check(s) }

var externalSelectDef = func() *schema.Definition[ExternalSelect] {
	m := func(s ExternalSelect) menu { return s.menu }
	return schema.Register(menuObject(KindExternalSelect, m).
		Field("initial_option", schema.OptChild(func(s ExternalSelect) *compose.Option { return s.initialOption }, compose.PlainOption())).
		Field("min_query_length", schema.OptInt(func(s ExternalSelect) *int { return s.minQueryLength }, rules.MinValue(0))).
		Field("confirm", menuConfirm(m)).
		MustBuild())
}()

// ExternalSelectBuilder stages an ExternalSelect; placeholder and action_id
// are required.
type ExternalSelectBuilder[P, A build.Marker] struct{ s ExternalSelect }

func NewExternalSelect() ExternalSelectBuilder[build.Unset, build.Unset] {
	return ExternalSelectBuilder[build.Unset, build.Unset]{}
}

func (b ExternalSelectBuilder[P, A]) Placeholder(s string) ExternalSelectBuilder[build.Set, A] {
	b.s.placeholder = compose.Plain(s)
	return ExternalSelectBuilder[build.Set, A]{s: b.s}
}

func (b ExternalSelectBuilder[P, A]) ActionID(id string) ExternalSelectBuilder[P, build.Set] {
	b.s.actionID = id
	return ExternalSelectBuilder[P, build.Set]{s: b.s}
}

func (b ExternalSelectBuilder[P, A]) InitialOption(o compose.Option) ExternalSelectBuilder[P, A] {
	b.s.initialOption = &o
	return b
}

func (b ExternalSelectBuilder[P, A]) MinQueryLength(n int) ExternalSelectBuilder[P, A] {
	b.s.minQueryLength = &n
	return b
}

func (b ExternalSelectBuilder[P, A]) Confirm(c compose.Confirm) ExternalSelectBuilder[P, A] {
	b.s.confirm = &c
	return b
}

func (b ExternalSelectBuilder[P, A]) Missing() []string {
	return build.Missing(build.Field[P]("placeholder"), build.Field[A]("action_id"))
}

func BuildExternalSelect[P, A build.Provided](b ExternalSelectBuilder[P, A]) ExternalSelect { return b.s }

type externalSelectWire struct {
	menuWire
	InitialOption  *compose.Option `json:"initial_option,omitempty"`
	MinQueryLength *int            `json:"min_query_length,omitempty"`
}

func (s ExternalSelect) MarshalJSON() ([]byte, error) {
	return json.Marshal(externalSelectWire{
		menuWire:       s.menu.wire(KindExternalSelect),
		InitialOption:  s.initialOption,
		MinQueryLength: s.minQueryLength,
	})
}

func (s *ExternalSelect) UnmarshalJSON(data []byte) error {
	var w externalSelectWire
	if err := decode(data, &w, &w.Type, KindExternalSelect); err != nil {
		return err
	}
	*s = ExternalSelect{menu: w.menu(), initialOption: w.InitialOption, minQueryLength: w.MinQueryLength}
	return nil
}

// UsersSelect is a select menu over the workspace's users.
type UsersSelect struct {
	menu
	initialUser *string
}

func (UsersSelect) Kind() blockkit.Kind           { return KindUsersSelect }
func (UsersSelect) element()                      {}
func (s UsersSelect) InitialUser() (string, bool) { return optRef(s.initialUser) }
func (s UsersSelect) Check() blockkit.Report      { return usersSelectDef.Check(s) }

var usersSelectDef = func() *schema.Definition[UsersSelect] {
	m := func(s UsersSelect) menu { return s.menu }
	return schema.Register(menuObject(KindUsersSelect, m).
		Field("initial_user", schema.OptString(func(s UsersSelect) *string { return s.initialUser }, rules.NonEmpty())).
		Field("confirm", menuConfirm(m)).
		MustBuild())
}()

// UsersSelectBuilder stages a UsersSelect; placeholder and action_id are
// required.
type UsersSelectBuilder[P, A build.Marker] struct{ s UsersSelect }

func NewUsersSelect() UsersSelectBuilder[build.Unset, build.Unset] {
	return UsersSelectBuilder[build.Unset, build.Unset]{}
}

func (b UsersSelectBuilder[P, A]) Placeholder(s string) UsersSelectBuilder[build.Set, A] {
	b.s.placeholder = compose.Plain(s)
	return UsersSelectBuilder[build.Set, A]{s: b.s}
}

func (b UsersSelectBuilder[P, A]) ActionID(id string) UsersSelectBuilder[P, build.Set] {
	b.s.actionID = id
	return UsersSelectBuilder[P, build.Set]{s: b.s}
}

func (b UsersSelectBuilder[P, A]) InitialUser(id string) UsersSelectBuilder[P, A] {
	b.s.initialUser = &id
	return b
}

func (b UsersSelectBuilder[P, A]) Confirm(c compose.Confirm) UsersSelectBuilder[P, A] {
	b.s.confirm = &c
	return b
}

func (b UsersSelectBuilder[P, A]) Missing() []string {
	return build.Missing(build.Field[P]("placeholder"), build.Field[A]("action_id"))
}

func BuildUsersSelect[P, A build.Provided](b UsersSelectBuilder[P, A]) UsersSelect { return b.s }

type usersSelectWire struct {
	menuWire
	InitialUser *string `json:"initial_user,omitempty"`
}

func (s UsersSelect) MarshalJSON() ([]byte, error) {
	return json.Marshal(usersSelectWire{menuWire: s.menu.wire(KindUsersSelect), InitialUser: s.initialUser})
}

func (s *UsersSelect) UnmarshalJSON(data []byte) error {
	var w usersSelectWire
	if err := decode(data, &w, &w.Type, KindUsersSelect); err != nil {
		return err
	}
	*s = UsersSelect{menu: w.menu(), initialUser: w.InitialUser}
	return nil
}

// ConversationsSelect is a select menu over channels, DMs and group DMs.
type ConversationsSelect struct {
	menu
	initialConversation          *string
	defaultToCurrentConversation *bool
	responseURLEnabled           *bool
	filter                       *compose.ConversationFilter
}

func (ConversationsSelect) Kind() blockkit.Kind { return KindConversationsSelect }
func (ConversationsSelect) element()            {}
func (s ConversationsSelect) InitialConversation() (string, bool) {
	return optRef(s.initialConversation)
}
func (s ConversationsSelect) DefaultToCurrentConversation() (bool, bool) {
	return optRef(s.defaultToCurrentConversation)
}
func (s ConversationsSelect) ResponseURLEnabled() (bool, bool) { return optRef(s.responseURLEnabled) }
func (s ConversationsSelect) Filter() (compose.ConversationFilter, bool) {
	return optRef(s.filter)
}
func (s ConversationsSelect) Check() blockkit.Report { return conversationsSelectDef.Check(s) }

var conversationsSelectDef = func() *schema.Definition[ConversationsSelect] {
	m := func(s ConversationsSelect) menu { return s.menu }
	return schema.Register(menuObject(KindConversationsSelect, m).
		Field("initial_conversation", schema.OptString(func(s ConversationsSelect) *string { return s.initialConversation }, rules.NonEmpty())).
		Field("default_to_current_conversation", schema.OptBool(func(s ConversationsSelect) *bool { return s.defaultToCurrentConversation })).
		Field("confirm", menuConfirm(m)).
		Field("response_url_enabled", schema.OptBool(func(s ConversationsSelect) *bool { return s.responseURLEnabled })).
		Field("filter", schema.OptChild(func(s ConversationsSelect) *compose.ConversationFilter { return s.filter })).
		MustBuild())
}()

// ConversationsSelectBuilder stages a ConversationsSelect; placeholder and
// action_id are required.
type ConversationsSelectBuilder[P, A build.Marker] struct{ s ConversationsSelect }

func NewConversationsSelect() ConversationsSelectBuilder[build.Unset, build.Unset] {
	return ConversationsSelectBuilder[build.Unset, build.Unset]{}
}

func (b ConversationsSelectBuilder[P, A]) Placeholder(s string) ConversationsSelectBuilder[build.Set, A] {
	b.s.placeholder = compose.Plain(s)
	return ConversationsSelectBuilder[build.Set, A]{s: b.s}
}

func (b ConversationsSelectBuilder[P, A]) ActionID(id string) ConversationsSelectBuilder[P, build.Set] {
	b.s.actionID = id
	return ConversationsSelectBuilder[P, build.Set]{s: b.s}
}

func (b ConversationsSelectBuilder[P, A]) InitialConversation(id string) ConversationsSelectBuilder[P, A] {
	b.s.initialConversation = &id
	return b
}

func (b ConversationsSelectBuilder[P, A]) DefaultToCurrentConversation(on bool) ConversationsSelectBuilder[P, A] {
	b.s.defaultToCurrentConversation = &on
	return b
}

func (b ConversationsSelectBuilder[P, A]) ResponseURLEnabled(on bool) ConversationsSelectBuilder[P, A] {
	b.s.responseURLEnabled = &on
	return b
}

func (b ConversationsSelectBuilder[P, A]) Filter(f compose.ConversationFilter) ConversationsSelectBuilder[P, A] {
	b.s.filter = &f
	return b
}

func (b ConversationsSelectBuilder[P, A]) Confirm(c compose.Confirm) ConversationsSelectBuilder[P, A] {
	b.s.confirm = &c
	return b
}

func (b ConversationsSelectBuilder[P, A]) Missing() []string {
	return build.Missing(build.Field[P]("placeholder"), build.Field[A]("action_id"))
}

func BuildConversationsSelect[P, A build.Provided](b ConversationsSelectBuilder[P, A]) ConversationsSelect {
	return b.s
}

type conversationsSelectWire struct {
	menuWire
	InitialConversation          *string                     `json:"initial_conversation,omitempty"`
	DefaultToCurrentConversation *bool                       `json:"default_to_current_conversation,omitempty"`
	ResponseURLEnabled           *bool                       `json:"response_url_enabled,omitempty"`
	Filter                       *compose.ConversationFilter `json:"filter,omitempty"`
}

func (s ConversationsSelect) MarshalJSON() ([]byte, error) {
	return json.Marshal(conversationsSelectWire{
		menuWire:                     s.menu.wire(KindConversationsSelect),
		InitialConversation:          s.initialConversation,
		DefaultToCurrentConversation: s.defaultToCurrentConversation,
		ResponseURLEnabled:           s.responseURLEnabled,
		Filter:                       s.filter,
	})
}

func (s *ConversationsSelect) UnmarshalJSON(data []byte) error {
	var w conversationsSelectWire
	if err := decode(data, &w, &w.Type, KindConversationsSelect); err != nil {
		return err
	}
	*s = ConversationsSelect{
		menu:                         w.menu(),
		initialConversation:          w.InitialConversation,
		defaultToCurrentConversation: w.DefaultToCurrentConversation,
		responseURLEnabled:           w.ResponseURLEnabled,
		filter:                       w.Filter,
	}
	return nil
}

// ChannelsSelect is a select menu over public channels.
type ChannelsSelect struct {
	menu
	initialChannel     *string
	responseURLEnabled *bool
}

func (ChannelsSelect) Kind() blockkit.Kind                { return KindChannelsSelect }
func (ChannelsSelect) element()                           {}
func (s ChannelsSelect) InitialChannel() (string, bool)   { return optRef(s.initialChannel) }
func (s ChannelsSelect) ResponseURLEnabled() (bool, bool) { return optRef(s.responseURLEnabled) }
func (s ChannelsSelect) Check() blockkit.Report           { return channelsSelectDef.Check(s) }

var channelsSelectDef = func() *schema.Definition[ChannelsSelect] {
	m := func(s ChannelsSelect) menu { return s.menu }
	return schema.Register(menuObject(KindChannelsSelect, m).
		Field("initial_channel", schema.OptString(func(s ChannelsSelect) *string { return s.initialChannel }, rules.NonEmpty())).
		Field("confirm", menuConfirm(m)).
		Field("response_url_enabled", schema.OptBool(func(s ChannelsSelect) *bool { return s.responseURLEnabled })).
		MustBuild())
}()

// ChannelsSelectBuilder stages a ChannelsSelect; placeholder and action_id
// are required.
type ChannelsSelectBuilder[P, A build.Marker] struct{ s ChannelsSelect }

func NewChannelsSelect() ChannelsSelectBuilder[build.Unset, build.Unset] {
	return ChannelsSelectBuilder[build.Unset, build.Unset]{}
}

func (b ChannelsSelectBuilder[P, A]) Placeholder(s string) ChannelsSelectBuilder[build.Set, A] {
	b.s.placeholder = compose.Plain(s)
	return ChannelsSelectBuilder[build.Set, A]{s: b.s}
}

func (b ChannelsSelectBuilder[P, A]) ActionID(id string) ChannelsSelectBuilder[P, build.Set] {
	b.s.actionID = id
	return ChannelsSelectBuilder[P, build.Set]{s: b.s}
}

func (b ChannelsSelectBuilder[P, A]) InitialChannel(id string) ChannelsSelectBuilder[P, A] {
	b.s.initialChannel = &id
	return b
}

func (b ChannelsSelectBuilder[P, A]) ResponseURLEnabled(on bool) ChannelsSelectBuilder[P, A] {
	b.s.responseURLEnabled = &on
	return b
}

func (b ChannelsSelectBuilder[P, A]) Confirm(c compose.Confirm) ChannelsSelectBuilder[P, A] {
	b.s.confirm = &c
	return b
}

func (b ChannelsSelectBuilder[P, A]) Missing() []string {
	return build.Missing(build.Field[P]("placeholder"), build.Field[A]("action_id"))
}

func BuildChannelsSelect[P, A build.Provided](b ChannelsSelectBuilder[P, A]) ChannelsSelect { return b.s }

type channelsSelectWire struct {
	menuWire
	InitialChannel     *string `json:"initial_channel,omitempty"`
	ResponseURLEnabled *bool   `json:"response_url_enabled,omitempty"`
}

func (s ChannelsSelect) MarshalJSON() ([]byte, error) {
	return json.Marshal(channelsSelectWire{
		menuWire:           s.menu.wire(KindChannelsSelect),
		InitialChannel:     s.initialChannel,
		ResponseURLEnabled: s.responseURLEnabled,
	})
}

func (s *ChannelsSelect) UnmarshalJSON(data []byte) error {
	var w channelsSelectWire
	if err := decode(data, &w, &w.Type, KindChannelsSelect); err != nil {
		return err
	}
	*s = ChannelsSelect{menu: w.menu(), initialChannel: w.InitialChannel, responseURLEnabled: w.ResponseURLEnabled}
	return nil
}
