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

func maxSelected[N any](get func(N) *int) schema.Accessor[N] {
	return schema.OptInt(get, rules.MinValue(1))
}

// MultiStaticSelect lets the user pick several options from a fixed list.
type MultiStaticSelect struct {
	menu
	options          []compose.Option
	optionGroups     []compose.OptionGroup
	initialOptions   []compose.Option
	maxSelectedItems *int
}

func (MultiStaticSelect) Kind() blockkit.Kind { return KindMultiStaticSelect }
func (MultiStaticSelect) element()            {}
func (s MultiStaticSelect) Options() []compose.Option {
	return build.Clone(s.options)
}
func (s MultiStaticSelect) OptionGroups() []compose.OptionGroup {
	return build.Clone(s.optionGroups)
}
func (s MultiStaticSelect) InitialOptions() []compose.Option {
	return build.Clone(s.initialOptions)
}
func (s MultiStaticSelect) MaxSelectedItems() (int, bool) { return optRef(s.maxSelectedItems) }
func (s MultiStaticSelect) Check() blockkit.Report        { return multiStaticSelectDef.Check(s) }

var multiStaticSelectDef = func() *schema.Definition[MultiStaticSelect] {
	m := func(s MultiStaticSelect) menu { return s.menu }
	opts := func(s MultiStaticSelect) []compose.Option { return s.options }
	groups := func(s MultiStaticSelect) []compose.OptionGroup { return s.optionGroups }
	return schema.Register(menuObject(KindMultiStaticSelect, m).
		Field("options", staticOptions(opts)).
		Field("option_groups", staticGroups(groups)).
		Field("initial_options", schema.Children(func(s MultiStaticSelect) []compose.Option { return s.initialOptions }, compose.PlainOption()).
			Count(rules.BoundedCount(100))).
		Field("confirm", menuConfirm(m)).
		Field("max_selected_items", maxSelected(func(s MultiStaticSelect) *int { return s.maxSelectedItems })).
		Refine("option_source", optionSource(opts, groups)).
		Refine("initial_options_in_options", rules.Subset("initial_options", "options",
			func(s MultiStaticSelect) []string { return optionsOf(s.initialOptions) },
			func(s MultiStaticSelect) []string { return allValues(s.options, s.optionGroups) })).
		MustBuild())
}()

// MultiStaticSelectBuilder stages a MultiStaticSelect; placeholder and
// action_id are required.
type MultiStaticSelectBuilder[P, A build.Marker] struct{ s MultiStaticSelect }

func NewMultiStaticSelect() MultiStaticSelectBuilder[build.Unset, build.Unset] {
	return MultiStaticSelectBuilder[build.Unset, build.Unset]{}
}

func (b MultiStaticSelectBuilder[P, A]) Placeholder(s string) MultiStaticSelectBuilder[build.Set, A] {
	b.s.placeholder = compose.Plain(s)
	return MultiStaticSelectBuilder[build.Set, A]{s: b.s}
}

func (b MultiStaticSelectBuilder[P, A]) ActionID(id string) MultiStaticSelectBuilder[P, build.Set] {
	b.s.actionID = id
	return MultiStaticSelectBuilder[P, build.Set]{s: b.s}
}

func (b MultiStaticSelectBuilder[P, A]) Options(opts ...compose.Option) MultiStaticSelectBuilder[P, A] {
	b.s.options = append([]compose.Option{}, opts...)
	return b
}

func (b MultiStaticSelectBuilder[P, A]) Option(o compose.Option) MultiStaticSelectBuilder[P, A] {
	b.s.options = build.Append(b.s.options, o)
	return b
}

func (b MultiStaticSelectBuilder[P, A]) OptionGroups(gs ...compose.OptionGroup) MultiStaticSelectBuilder[P, A] {
	b.s.optionGroups = append([]compose.OptionGroup{}, gs...)
	return b
}

func (b MultiStaticSelectBuilder[P, A]) OptionGroup(g compose.OptionGroup) MultiStaticSelectBuilder[P, A] {
	b.s.optionGroups = build.Append(b.s.optionGroups, g)
	return b
}

func (b MultiStaticSelectBuilder[P, A]) InitialOptions(opts ...compose.Option) MultiStaticSelectBuilder[P, A] {
	b.s.initialOptions = append([]compose.Option{}, opts...)
	return b
}

func (b MultiStaticSelectBuilder[P, A]) MaxSelectedItems(n int) MultiStaticSelectBuilder[P, A] {
	b.s.maxSelectedItems = &n
	return b
}

func (b MultiStaticSelectBuilder[P, A]) Confirm(c compose.Confirm) MultiStaticSelectBuilder[P, A] {
	b.s.confirm = &c
	return b
}

func (b MultiStaticSelectBuilder[P, A]) Missing() []string {
	return build.Missing(build.Field[P]("placeholder"), build.Field[A]("action_id"))
}

func BuildMultiStaticSelect[P, A build.Provided](b MultiStaticSelectBuilder[P, A]) MultiStaticSelect {
	return b.s
}

type multiStaticSelectWire struct {
	menuWire
	Options          *[]compose.Option      `json:"options,omitempty"`
	OptionGroups     *[]compose.OptionGroup `json:"option_groups,omitempty"`
	InitialOptions   *[]compose.Option      `json:"initial_options,omitempty"`
	MaxSelectedItems *int                   `json:"max_selected_items,omitempty"`
}

func (s MultiStaticSelect) MarshalJSON() ([]byte, error) {
	return json.Marshal(multiStaticSelectWire{
		menuWire:         s.menu.wire(KindMultiStaticSelect),
		Options:          wire.Opt(s.options),
		OptionGroups:     wire.Opt(s.optionGroups),
		InitialOptions:   wire.Opt(s.initialOptions),
		MaxSelectedItems: s.maxSelectedItems,
	})
}

func (s *MultiStaticSelect) UnmarshalJSON(data []byte) error {
	var w multiStaticSelectWire
	if err := decode(data, &w, &w.Type, KindMultiStaticSelect); err != nil {
		return err
	}
	*s = MultiStaticSelect{
		menu:             w.menu(),
		options:          wire.FromOpt(w.Options),
		optionGroups:     wire.FromOpt(w.OptionGroups),
		initialOptions:   wire.FromOpt(w.InitialOptions),
		maxSelectedItems: w.MaxSelectedItems,
	}
	return nil
}

// MultiUsersSelect lets the user pick several workspace users.
type MultiUsersSelect struct {
	menu
	initialUsers     []string
	maxSelectedItems *int
}

func (MultiUsersSelect) Kind() blockkit.Kind             { return KindMultiUsersSelect }
func (MultiUsersSelect) element()                        {}
func (s MultiUsersSelect) InitialUsers() []string        { return build.Clone(s.initialUsers) }
func (s MultiUsersSelect) MaxSelectedItems() (int, bool) { return optRef(s.maxSelectedItems) }
func (s MultiUsersSelect) Check() blockkit.Report        { return multiUsersSelectDef.Check(s) }

var multiUsersSelectDef = func() *schema.Definition[MultiUsersSelect] {
	m := func(s MultiUsersSelect) menu { return s.menu }
	return schema.Register(menuObject(KindMultiUsersSelect, m).
		Field("initial_users", schema.Strings(func(s MultiUsersSelect) []string { return s.initialUsers }, rules.NonEmpty())).
		Field("confirm", menuConfirm(m)).
		Field("max_selected_items", maxSelected(func(s MultiUsersSelect) *int { return s.maxSelectedItems })).
		MustBuild())
}()

// MultiUsersSelectBuilder stages a MultiUsersSelect; placeholder and
// action_id are required.
type MultiUsersSelectBuilder[P, A build.Marker] struct{ s MultiUsersSelect }

func NewMultiUsersSelect() MultiUsersSelectBuilder[build.Unset, build.Unset] {
	return MultiUsersSelectBuilder[build.Unset, build.Unset]{}
}

func (b MultiUsersSelectBuilder[P, A]) Placeholder(s string) MultiUsersSelectBuilder[build.Set, A] {
	b.s.placeholder = compose.Plain(s)
	return MultiUsersSelectBuilder[build.Set, A]{s: b.s}
}

func (b MultiUsersSelectBuilder[P, A]) ActionID(id string) MultiUsersSelectBuilder[P, build.Set] {
	b.s.actionID = id
	return MultiUsersSelectBuilder[P, build.Set]{s: b.s}
}

func (b MultiUsersSelectBuilder[P, A]) InitialUsers(ids ...string) MultiUsersSelectBuilder[P, A] {
	b.s.initialUsers = append([]string{}, ids...)
	return b
}

func (b MultiUsersSelectBuilder[P, A]) MaxSelectedItems(n int) MultiUsersSelectBuilder[P, A] {
	b.s.maxSelectedItems = &n
	return b
}

func (b MultiUsersSelectBuilder[P, A]) Confirm(c compose.Confirm) MultiUsersSelectBuilder[P, A] {
	b.s.confirm = &c
	return b
}

func (b MultiUsersSelectBuilder[P, A]) Missing() []string {
	return build.Missing(build.Field[P]("placeholder"), build.Field[A]("action_id"))
}

func BuildMultiUsersSelect[P, A build.Provided](b MultiUsersSelectBuilder[P, A]) MultiUsersSelect {
	return b.s
}

type multiUsersSelectWire struct {
	menuWire
	InitialUsers     *[]string `json:"initial_users,omitempty"`
	MaxSelectedItems *int      `json:"max_selected_items,omitempty"`
}

func (s MultiUsersSelect) MarshalJSON() ([]byte, error) {
	return json.Marshal(multiUsersSelectWire{
		menuWire:         s.menu.wire(KindMultiUsersSelect),
		InitialUsers:     wire.Opt(s.initialUsers),
		MaxSelectedItems: s.maxSelectedItems,
	})
}

func (s *MultiUsersSelect) UnmarshalJSON(data []byte) error {
	var w multiUsersSelectWire
	if err := decode(data, &w, &w.Type, KindMultiUsersSelect); err != nil {
		return err
	}
	*s = MultiUsersSelect{menu: w.menu(), initialUsers: wire.FromOpt(w.InitialUsers), maxSelectedItems: w.MaxSelectedItems}
	return nil
}

// MultiConversationsSelect lets the user pick several conversations.
type MultiConversationsSelect struct {
	menu
	initialConversations         []string
	defaultToCurrentConversation *bool
	maxSelectedItems             *int
	filter                       *compose.ConversationFilter
}

func (MultiConversationsSelect) Kind() blockkit.Kind { return KindMultiConversationsSelect }
func (MultiConversationsSelect) element()            {}
func (s MultiConversationsSelect) InitialConversations() []string {
	return build.Clone(s.initialConversations)
}
func (s MultiConversationsSelect) DefaultToCurrentConversation() (bool, bool) {
	return optRef(s.defaultToCurrentConversation)
}
func (s MultiConversationsSelect) MaxSelectedItems() (int, bool) { return optRef(s.maxSelectedItems) }
func (s MultiConversationsSelect) Filter() (compose.ConversationFilter, bool) {
	return optRef(s.filter)
}
func (s MultiConversationsSelect) Check() blockkit.Report {
	return multiConversationsSelectDef.Check(s)
}

var multiConversationsSelectDef = func() *schema.Definition[MultiConversationsSelect] {
	m := func(s MultiConversationsSelect) menu { return s.menu }
	return schema.Register(menuObject(KindMultiConversationsSelect, m).
		Field("initial_conversations", schema.Strings(func(s MultiConversationsSelect) []string { return s.initialConversations }, rules.NonEmpty())).
		Field("default_to_current_conversation", schema.OptBool(func(s MultiConversationsSelect) *bool { return s.defaultToCurrentConversation })).
		Field("confirm", menuConfirm(m)).
		Field("max_selected_items", maxSelected(func(s MultiConversationsSelect) *int { return s.maxSelectedItems })).
		Field("filter", schema.OptChild(func(s MultiConversationsSelect) *compose.ConversationFilter { return s.filter })).
		MustBuild())
}()

// MultiConversationsSelectBuilder stages a MultiConversationsSelect;
// placeholder and action_id are required.
type MultiConversationsSelectBuilder[P, A build.Marker] struct{ s MultiConversationsSelect }

func NewMultiConversationsSelect() MultiConversationsSelectBuilder[build.Unset, build.Unset] {
	return MultiConversationsSelectBuilder[build.Unset, build.Unset]{}
}

func (b MultiConversationsSelectBuilder[P, A]) Placeholder(s string) MultiConversationsSelectBuilder[build.Set, A] {
	b.s.placeholder = compose.Plain(s)
	return MultiConversationsSelectBuilder[build.Set, A]{s: b.s}
}

func (b MultiConversationsSelectBuilder[P, A]) ActionID(id string) MultiConversationsSelectBuilder[P, build.Set] {
	b.s.actionID = id
	return MultiConversationsSelectBuilder[P, build.Set]{s: b.s}
}

func (b MultiConversationsSelectBuilder[P, A]) InitialConversations(ids ...string) MultiConversationsSelectBuilder[P, A] {
	b.s.initialConversations = append([]string{}, ids...)
	return b
}

func (b MultiConversationsSelectBuilder[P, A]) DefaultToCurrentConversation(on bool) MultiConversationsSelectBuilder[P, A] {
	b.s.defaultToCurrentConversation = &on
	return b
}

func (b MultiConversationsSelectBuilder[P, A]) MaxSelectedItems(n int) MultiConversationsSelectBuilder[P, A] {
	b.s.maxSelectedItems = &n
	return b
}

func (b MultiConversationsSelectBuilder[P, A]) Filter(f compose.ConversationFilter) MultiConversationsSelectBuilder[P, A] {
	b.s.filter = &f
	return b
}

func (b MultiConversationsSelectBuilder[P, A]) Confirm(c compose.Confirm) MultiConversationsSelectBuilder[P, A] {
	b.s.confirm = &c
	return b
}

func (b MultiConversationsSelectBuilder[P, A]) Missing() []string {
	return build.Missing(build.Field[P]("placeholder"), build.Field[A]("action_id"))
}

func BuildMultiConversationsSelect[P, A build.Provided](b MultiConversationsSelectBuilder[P, A]) MultiConversationsSelect {
	return b.s
}

type multiConversationsSelectWire struct {
	menuWire
	InitialConversations         *[]string                   `json:"initial_conversations,omitempty"`
	DefaultToCurrentConversation *bool                       `json:"default_to_current_conversation,omitempty"`
	MaxSelectedItems             *int                        `json:"max_selected_items,omitempty"`
	Filter                       *compose.ConversationFilter `json:"filter,omitempty"`
}

func (s MultiConversationsSelect) MarshalJSON() ([]byte, error) {
	return json.Marshal(multiConversationsSelectWire{
		menuWire:                     s.menu.wire(KindMultiConversationsSelect),
		InitialConversations:         wire.Opt(s.initialConversations),
		DefaultToCurrentConversation: s.defaultToCurrentConversation,
		MaxSelectedItems:             s.maxSelectedItems,
		Filter:                       s.filter,
	})
}

func (s *MultiConversationsSelect) UnmarshalJSON(data []byte) error {
	var w multiConversationsSelectWire
	if err := decode(data, &w, &w.Type, KindMultiConversationsSelect); err != nil {
		return err
	}
	*s = MultiConversationsSelect{
		menu:                         w.menu(),
		initialConversations:         wire.FromOpt(w.InitialConversations),
		defaultToCurrentConversation: w.DefaultToCurrentConversation,
		maxSelectedItems:             w.MaxSelectedItems,
		filter:                       w.Filter,
	}
	return nil
}
