// Package compose implements Block Kit composition objects: text, options,
// option groups, confirmation dialogs and conversation filters.
package compose

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/rules"
	"github.com/reoring/blockkit/schema"
)

// Text kinds.
const (
	KindPlain  blockkit.Kind = "plain_text"
	KindMrkdwn blockkit.Kind = "mrkdwn"
)

// Text is a text object, either plain text or mrkdwn.
type Text struct {
	kind     blockkit.Kind
	text     string
	emoji    *bool
	verbatim *bool
}

// Plain creates a plain_text object.
func Plain(s string) Text { return Text{kind: KindPlain, text: s} }

// Mrkdwn creates a mrkdwn text object.
func Mrkdwn(s string) Text { return Text{kind: KindMrkdwn, text: s} }

// WithEmoji sets the emoji flag (plain_text only; ignored on mrkdwn).
func (t Text) WithEmoji(on bool) Text {
	if t.kind == KindPlain {
		t.emoji = &on
	}
	return t
}

// WithVerbatim sets the verbatim flag (mrkdwn only; ignored on plain_text).
func (t Text) WithVerbatim(on bool) Text {
	if t.kind == KindMrkdwn {
		t.verbatim = &on
	}
	return t
}

func (t Text) Kind() blockkit.Kind { return t.kind }
func (t Text) Text() string        { return t.text }
func (t Text) IsPlain() bool       { return t.kind == KindPlain }

// Emoji returns the emoji flag and whether it is set.
func (t Text) Emoji() (bool, bool) { return deref(t.emoji) }

// Verbatim returns the verbatim flag and whether it is set.
func (t Text) Verbatim() (bool, bool) { return deref(t.verbatim) }

// DefName names the shared definition of both text kinds.
func (Text) DefName() string { return "text" }

var textDef = schema.Register(schema.Object[Text]("text").Tag(KindPlain, KindMrkdwn).
	Doc("Text object (plain_text or mrkdwn).").
	Field("text", schema.String(Text.Text, rules.NonEmpty(), rules.MaxLength(3000))).Required().
	Field("emoji", schema.OptBool(func(t Text) *bool { return t.emoji })).
	Field("verbatim", schema.OptBool(func(t Text) *bool { return t.verbatim })).
	MustBuild())

func (t Text) Check() blockkit.Report { return textDef.Check(t) }

// PlainOnly requires a text field to hold the plain_text variant.
func PlainOnly() rules.Constraint[Text] {
	return rules.RequiredVariant(string(KindPlain), Text.IsPlain)
}

// MaxText limits the length of a text field's text.
func MaxText(n int) rules.Constraint[Text] {
	return rules.On(Text.Text, rules.MaxLength(n))
}

type textWire struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Emoji    *bool  `json:"emoji,omitempty"`
	Verbatim *bool  `json:"verbatim,omitempty"`
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(textWire{Type: string(t.kind), Text: t.text, Emoji: t.emoji, Verbatim: t.verbatim})
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var w textWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode text: %w", err)
	}
	switch blockkit.Kind(w.Type) {
	case KindPlain, KindMrkdwn:
	case "":
		return fmt.Errorf("text: %w", blockkit.ErrMissingKind)
	default:
		return &blockkit.UnknownKindError{Kind: blockkit.Kind(w.Type), Family: "text"}
	}
	*t = Text{kind: blockkit.Kind(w.Type), text: w.Text, emoji: w.Emoji, verbatim: w.Verbatim}
	return nil
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
