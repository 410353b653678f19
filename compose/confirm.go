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

// Button styles, shared by buttons and confirmation dialogs.
const (
	StylePrimary = "primary"
	StyleDanger  = "danger"
)

// KindConfirm identifies confirmation dialogs.
const KindConfirm blockkit.Kind = "confirm"

// Confirm is a dialog asking the user to confirm an interactive action.
type Confirm struct {
	title   Text
	text    Text
	confirm Text
	deny    Text
	style   *string
}

func (Confirm) Kind() blockkit.Kind      { return KindConfirm }
func (c Confirm) Title() Text            { return c.title }
func (c Confirm) Text() Text             { return c.text }
func (c Confirm) ConfirmLabel() Text     { return c.confirm }
func (c Confirm) DenyLabel() Text        { return c.deny }
func (c Confirm) Style() (string, bool)  { return deref(c.style) }
func (c Confirm) Check() blockkit.Report { return confirmDef.Check(c) }

var confirmDef = schema.Register(schema.Object[Confirm]("confirm").
	Field("title", schema.Child(Confirm.Title, PlainOnly(), MaxText(100))).Required().
	Field("text", schema.Child(Confirm.Text, MaxText(300))).Required().
	Field("confirm", schema.Child(Confirm.ConfirmLabel, PlainOnly(), MaxText(30))).Required().
	Field("deny", schema.Child(Confirm.DenyLabel, PlainOnly(), MaxText(30))).Required().
	Field("style", schema.OptString(func(c Confirm) *string { return c.style }, rules.OneOf(StylePrimary, StyleDanger))).
	MustBuild())

// ConfirmBuilder stages a Confirm. All four texts are required.
type ConfirmBuilder[Ti, Tx, C, D build.Marker] struct{ c Confirm }

func NewConfirm() ConfirmBuilder[build.Unset, build.Unset, build.Unset, build.Unset] {
	return ConfirmBuilder[build.Unset, build.Unset, build.Unset, build.Unset]{}
}

func (b ConfirmBuilder[Ti, Tx, C, D]) Title(s string) ConfirmBuilder[build.Set, Tx, C, D] {
	b.c.title = Plain(s)
	return ConfirmBuilder[build.Set, Tx, C, D]{c: b.c}
}

// Text sets the dialog body; it may be plain_text or mrkdwn.
func (b ConfirmBuilder[Ti, Tx, C, D]) Text(t Text) ConfirmBuilder[Ti, build.Set, C, D] {
	b.c.text = t
	return ConfirmBuilder[Ti, build.Set, C, D]{c: b.c}
}

func (b ConfirmBuilder[Ti, Tx, C, D]) Confirm(s string) ConfirmBuilder[Ti, Tx, build.Set, D] {
	b.c.confirm = Plain(s)
	return ConfirmBuilder[Ti, Tx, build.Set, D]{c: b.c}
}

func (b ConfirmBuilder[Ti, Tx, C, D]) Deny(s string) ConfirmBuilder[Ti, Tx, C, build.Set] {
	b.c.deny = Plain(s)
	return ConfirmBuilder[Ti, Tx, C, build.Set]{c: b.c}
}

// Style sets the confirm button style ("primary" or "danger").
func (b ConfirmBuilder[Ti, Tx, C, D]) Style(s string) ConfirmBuilder[Ti, Tx, C, D] {
	b.c.style = &s
	return b
}

func (b ConfirmBuilder[Ti, Tx, C, D]) Missing() []string {
	return build.Missing(
		build.Field[Ti]("title"),
		build.Field[Tx]("text"),
		build.Field[C]("confirm"),
		build.Field[D]("deny"),
	)
}

func BuildConfirm[Ti, Tx, C, D build.Provided](b ConfirmBuilder[Ti, Tx, C, D]) Confirm { return b.c }

type confirmWire struct {
	Title   Text    `json:"title"`
	Text    Text    `json:"text"`
	Confirm Text    `json:"confirm"`
	Deny    Text    `json:"deny"`
	Style   *string `json:"style,omitempty"`
}

func (c Confirm) MarshalJSON() ([]byte, error) {
	return json.Marshal(confirmWire{Title: c.title, Text: c.text, Confirm: c.confirm, Deny: c.deny, Style: c.style})
}

func (c *Confirm) UnmarshalJSON(data []byte) error {
	var w confirmWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode confirm: %w", err)
	}
	*c = Confirm{title: w.Title, text: w.Text, confirm: w.Confirm, deny: w.Deny, style: w.Style}
	return nil
}

// Conversation types accepted by a ConversationFilter.
const (
	ConvIM      = "im"
	ConvMPIM    = "mpim"
	ConvPrivate = "private"
	ConvPublic  = "public"
)

// KindConversationFilter identifies conversation list filters.
const KindConversationFilter blockkit.Kind = "conversation_filter"

// ConversationFilter narrows the conversations offered by conversation
// select menus. At least one of its fields must be set.
type ConversationFilter struct {
	include                       []string
	excludeExternalSharedChannels *bool
	excludeBotUsers               *bool
}

func (ConversationFilter) Kind() blockkit.Kind { return KindConversationFilter }
func (f ConversationFilter) Include() []string { return build.Clone(f.include) }
func (f ConversationFilter) ExcludeExternalSharedChannels() (bool, bool) {
	return deref(f.excludeExternalSharedChannels)
}
func (f ConversationFilter) ExcludeBotUsers() (bool, bool) { return deref(f.excludeBotUsers) }
func (f ConversationFilter) Check() blockkit.Report        { return filterDef.Check(f) }

var filterDef = schema.Register(schema.Object[ConversationFilter]("conversation_filter").
	Field("include", schema.Strings(func(f ConversationFilter) []string { return f.include },
		rules.OneOf(ConvIM, ConvMPIM, ConvPrivate, ConvPublic)).Count(rules.CountBetween(1, 4))).
	Field("exclude_external_shared_channels", schema.OptBool(func(f ConversationFilter) *bool { return f.excludeExternalSharedChannels })).
	Field("exclude_bot_users", schema.OptBool(func(f ConversationFilter) *bool { return f.excludeBotUsers })).
	Refine("filter_not_empty", rules.AnyOf(
		rules.Field("include", func(f ConversationFilter) bool { return f.include != nil }),
		rules.Field("exclude_external_shared_channels", func(f ConversationFilter) bool { return f.excludeExternalSharedChannels != nil }),
		rules.Field("exclude_bot_users", func(f ConversationFilter) bool { return f.excludeBotUsers != nil }),
	)).
	MustBuild())

// ConversationFilterBuilder stages a ConversationFilter. It has no required
// fields; an empty filter is reported by validation.
type ConversationFilterBuilder struct{ f ConversationFilter }

func NewConversationFilter() ConversationFilterBuilder { return ConversationFilterBuilder{} }

// Include replaces the included conversation types.
func (b ConversationFilterBuilder) Include(kinds ...string) ConversationFilterBuilder {
	b.f.include = append([]string{}, kinds...)
	return b
}

func (b ConversationFilterBuilder) ExcludeExternalSharedChannels(on bool) ConversationFilterBuilder {
	b.f.excludeExternalSharedChannels = &on
	return b
}

func (b ConversationFilterBuilder) ExcludeBotUsers(on bool) ConversationFilterBuilder {
	b.f.excludeBotUsers = &on
	return b
}

func (b ConversationFilterBuilder) Build() ConversationFilter { return b.f }

type filterWire struct {
	Include                       *[]string `json:"include,omitempty"`
	ExcludeExternalSharedChannels *bool     `json:"exclude_external_shared_channels,omitempty"`
	ExcludeBotUsers               *bool     `json:"exclude_bot_users,omitempty"`
}

func (f ConversationFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(filterWire{
		Include:                       wire.Opt(f.include),
		ExcludeExternalSharedChannels: f.excludeExternalSharedChannels,
		ExcludeBotUsers:               f.excludeBotUsers,
	})
}

func (f *ConversationFilter) UnmarshalJSON(data []byte) error {
	var w filterWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode conversation_filter: %w", err)
	}
	*f = ConversationFilter{
		include:                       wire.FromOpt(w.Include),
		excludeExternalSharedChannels: w.ExcludeExternalSharedChannels,
		excludeBotUsers:               w.ExcludeBotUsers,
	}
	return nil
}
