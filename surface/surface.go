// Package surface implements the top-level Block Kit documents: messages and
// modal views.
package surface

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/blocks"
	"github.com/reoring/blockkit/build"
	"github.com/reoring/blockkit/compose"
	"github.com/reoring/blockkit/internal/wire"
	"github.com/reoring/blockkit/rules"
	"github.com/reoring/blockkit/schema"
	"github.com/reoring/blockkit/variant"
)

// Surface kinds. A message has no wire discriminant; its kind exists only in
// the API.
const (
	KindMessage blockkit.Kind = "message"
	KindModal   blockkit.Kind = "modal"
)

// Surface is a top-level document.
type Surface interface {
	blockkit.Node
	json.Marshaler
	surface()
}

func init() { schema.RegisterUnion("surface", string(KindMessage), string(KindModal)) }

// Decode parses a surface. An object typed "modal" is a modal; an object
// typed "message" or without a type is a message.
func Decode(data []byte) (Surface, error) {
	kind, err := variant.PeekKind(data)
	switch {
	case errors.Is(err, blockkit.ErrMissingKind), kind == KindMessage:
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	case err != nil:
		return nil, fmt.Errorf("surface: %w", err)
	case kind == KindModal:
		var m Modal
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, &blockkit.UnknownKindError{Kind: kind, Family: "surface"}
}

func blocksField[N any](get func(N) []blocks.Block, max int) schema.Accessor[N] {
	return schema.Children(get).Count(rules.BoundedCount(max)).Ref("block")
}

// blockList decodes a wire array of blocks through the block registry.
type blockList []blocks.Block

func (l *blockList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(blockList, 0, len(raw))
	for i, r := range raw {
		b, err := blocks.Decode(r)
		if err != nil {
			return fmt.Errorf("blocks[%d]: %w", i, err)
		}
		out = append(out, b)
	}
	*l = out
	return nil
}

// Message is a chat message: fallback text, blocks or both.
type Message struct {
	text     *string
	blocks   []blocks.Block
	threadTS *string
	mrkdwn   *bool
}

func (Message) Kind() blockkit.Kind        { return KindMessage }
func (Message) surface()                   {}
func (m Message) Text() (string, bool)     { return optRef(m.text) }
func (m Message) Blocks() []blocks.Block   { return build.Clone(m.blocks) }
func (m Message) ThreadTS() (string, bool) { return optRef(m.threadTS) }
func (m Message) Mrkdwn() (bool, bool)     { return optRef(m.mrkdwn) }
func (m Message) Check() blockkit.Report   { return messageDef.Check(m) }

var messageDef = schema.Register(schema.Object[Message]("message").
	Doc("Chat message payload.").
	Field("text", schema.OptString(func(m Message) *string { return m.text }, rules.MaxLength(40000))).
	Field("blocks", blocksField(func(m Message) []blocks.Block { return m.blocks }, 50)).
	Field("thread_ts", schema.OptString(func(m Message) *string { return m.threadTS }, rules.NonEmpty())).
	Field("mrkdwn", schema.OptBool(func(m Message) *bool { return m.mrkdwn })).
	Refine("text_or_blocks", rules.AnyOf(
		rules.Field("text", func(m Message) bool { return m.text != nil }),
		rules.Field("blocks", func(m Message) bool { return m.blocks != nil }),
	)).
	MustBuild())

// MessageBuilder stages a Message. Nothing is required by type; a message
// with neither text nor blocks is reported by validation.
type MessageBuilder struct{ m Message }

func NewMessage() MessageBuilder { return MessageBuilder{} }

// Text sets the fallback text shown in notifications.
func (b MessageBuilder) Text(s string) MessageBuilder {
	b.m.text = &s
	return b
}

func (b MessageBuilder) Blocks(bs ...blocks.Block) MessageBuilder {
	b.m.blocks = append([]blocks.Block{}, bs...)
	return b
}

func (b MessageBuilder) Block(bl blocks.Block) MessageBuilder {
	b.m.blocks = build.Append(b.m.blocks, bl)
	return b
}

func (b MessageBuilder) ThreadTS(ts string) MessageBuilder {
	b.m.threadTS = &ts
	return b
}

func (b MessageBuilder) Mrkdwn(on bool) MessageBuilder {
	b.m.mrkdwn = &on
	return b
}

func (b MessageBuilder) Build() Message { return b.m }

type messageWire struct {
	Text     *string         `json:"text,omitempty"`
	Blocks   *[]blocks.Block `json:"blocks,omitempty"`
	ThreadTS *string         `json:"thread_ts,omitempty"`
	Mrkdwn   *bool           `json:"mrkdwn,omitempty"`
}

type messageWireIn struct {
	Text     *string    `json:"text"`
	Blocks   *blockList `json:"blocks"`
	ThreadTS *string    `json:"thread_ts"`
	Mrkdwn   *bool      `json:"mrkdwn"`
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageWire{Text: m.text, Blocks: wire.Opt(m.blocks), ThreadTS: m.threadTS, Mrkdwn: m.mrkdwn})
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var w messageWireIn
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	*m = Message{text: w.Text, blocks: fromList(w.Blocks), threadTS: w.ThreadTS, mrkdwn: w.Mrkdwn}
	return nil
}

// Modal is a modal view.
type Modal struct {
	title           compose.Text
	blocks          []blocks.Block
	close           *compose.Text
	submit          *compose.Text
	privateMetadata *string
	callbackID      *string
	clearOnClose    *bool
	notifyOnClose   *bool
	externalID      *string
}

func (Modal) Kind() blockkit.Kind               { return KindModal }
func (Modal) surface()                          {}
func (m Modal) Title() compose.Text             { return m.title }
func (m Modal) Blocks() []blocks.Block          { return build.Clone(m.blocks) }
func (m Modal) Close() (compose.Text, bool)     { return optRef(m.close) }
func (m Modal) Submit() (compose.Text, bool)    { return optRef(m.submit) }
func (m Modal) PrivateMetadata() (string, bool) { return optRef(m.privateMetadata) }
func (m Modal) CallbackID() (string, bool)      { return optRef(m.callbackID) }
func (m Modal) ClearOnClose() (bool, bool)      { return optRef(m.clearOnClose) }
func (m Modal) NotifyOnClose() (bool, bool)     { return optRef(m.notifyOnClose) }
func (m Modal) ExternalID() (string, bool)      { return optRef(m.externalID) }
func (m Modal) Check() blockkit.Report          { return modalDef.Check(m) }

func viewLabel() []rules.Constraint[compose.Text] {
	return []rules.Constraint[compose.Text]{compose.PlainOnly(), compose.MaxText(24)}
}

func hasInput(m Modal) bool {
	for _, b := range m.blocks {
		if b != nil && b.Kind() == blocks.KindInput {
			return true
		}
	}
	return false
}

var modalDef = schema.Register(schema.Object[Modal]("modal").Tag(KindModal).
	Field("title", schema.Child(Modal.Title, viewLabel()...)).Required().
	Field("blocks", blocksField(func(m Modal) []blocks.Block { return m.blocks }, 100)).Required().
	Field("close", schema.OptChild(func(m Modal) *compose.Text { return m.close }, viewLabel()...)).
	Field("submit", schema.OptChild(func(m Modal) *compose.Text { return m.submit }, viewLabel()...)).
	Field("private_metadata", schema.OptString(func(m Modal) *string { return m.privateMetadata }, rules.MaxLength(3000))).
	Field("callback_id", schema.OptString(func(m Modal) *string { return m.callbackID }, rules.MaxLength(255))).
	Field("clear_on_close", schema.OptBool(func(m Modal) *bool { return m.clearOnClose })).
	Field("notify_on_close", schema.OptBool(func(m Modal) *bool { return m.notifyOnClose })).
	Field("external_id", schema.OptString(func(m Modal) *string { return m.externalID }, rules.NonEmpty())).
	Refine("submit_with_inputs", rules.When(hasInput,
		rules.Needed(rules.Field("submit", func(m Modal) bool { return m.submit != nil })))).
	MustBuild())

// ModalBuilder stages a Modal; title and blocks are required.
type ModalBuilder[T, B build.Marker] struct{ m Modal }

func NewModal() ModalBuilder[build.Unset, build.Unset] { return ModalBuilder[build.Unset, build.Unset]{} }

func (b ModalBuilder[T, B]) Title(s string) ModalBuilder[build.Set, B] {
	b.m.title = compose.Plain(s)
	return ModalBuilder[build.Set, B]{m: b.m}
}

// Blocks replaces the blocks.
func (b ModalBuilder[T, B]) Blocks(bs ...blocks.Block) ModalBuilder[T, build.Set] {
	b.m.blocks = append([]blocks.Block{}, bs...)
	return ModalBuilder[T, build.Set]{m: b.m}
}

// Block appends one block.
func (b ModalBuilder[T, B]) Block(bl blocks.Block) ModalBuilder[T, build.Set] {
	b.m.blocks = build.Append(b.m.blocks, bl)
	return ModalBuilder[T, build.Set]{m: b.m}
}

func (b ModalBuilder[T, B]) Close(s string) ModalBuilder[T, B] {
	t := compose.Plain(s)
	b.m.close = &t
	return b
}

// Submit sets the submit button label. Modals containing input blocks need
// one.
func (b ModalBuilder[T, B]) Submit(s string) ModalBuilder[T, B] {
	t := compose.Plain(s)
	b.m.submit = &t
	return b
}

func (b ModalBuilder[T, B]) PrivateMetadata(s string) ModalBuilder[T, B] {
	b.m.privateMetadata = &s
	return b
}

func (b ModalBuilder[T, B]) CallbackID(id string) ModalBuilder[T, B] {
	b.m.callbackID = &id
	return b
}

func (b ModalBuilder[T, B]) ClearOnClose(on bool) ModalBuilder[T, B] {
	b.m.clearOnClose = &on
	return b
}

func (b ModalBuilder[T, B]) NotifyOnClose(on bool) ModalBuilder[T, B] {
	b.m.notifyOnClose = &on
	return b
}

func (b ModalBuilder[T, B]) ExternalID(id string) ModalBuilder[T, B] {
	b.m.externalID = &id
	return b
}

func (b ModalBuilder[T, B]) Missing() []string {
	return build.Missing(build.Field[T]("title"), build.Field[B]("blocks"))
}

func BuildModal[T, B build.Provided](b ModalBuilder[T, B]) Modal { return b.m }

type modalWire struct {
	Type            string         `json:"type"`
	Title           compose.Text   `json:"title"`
	Blocks          []blocks.Block `json:"blocks"`
	Close           *compose.Text  `json:"close,omitempty"`
	Submit          *compose.Text  `json:"submit,omitempty"`
	PrivateMetadata *string        `json:"private_metadata,omitempty"`
	CallbackID      *string        `json:"callback_id,omitempty"`
	ClearOnClose    *bool          `json:"clear_on_close,omitempty"`
	NotifyOnClose   *bool          `json:"notify_on_close,omitempty"`
	ExternalID      *string        `json:"external_id,omitempty"`
}

type modalWireIn struct {
	Type            string        `json:"type"`
	Title           compose.Text  `json:"title"`
	Blocks          *blockList    `json:"blocks"`
	Close           *compose.Text `json:"close"`
	Submit          *compose.Text `json:"submit"`
	PrivateMetadata *string       `json:"private_metadata"`
	CallbackID      *string       `json:"callback_id"`
	ClearOnClose    *bool         `json:"clear_on_close"`
	NotifyOnClose   *bool         `json:"notify_on_close"`
	ExternalID      *string       `json:"external_id"`
}

func (m Modal) MarshalJSON() ([]byte, error) {
	return json.Marshal(modalWire{
		Type:            string(KindModal),
		Title:           m.title,
		Blocks:          wire.Req(m.blocks),
		Close:           m.close,
		Submit:          m.submit,
		PrivateMetadata: m.privateMetadata,
		CallbackID:      m.callbackID,
		ClearOnClose:    m.clearOnClose,
		NotifyOnClose:   m.notifyOnClose,
		ExternalID:      m.externalID,
	})
}

func (m *Modal) UnmarshalJSON(data []byte) error {
	var w modalWireIn
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode modal: %w", err)
	}
	if err := blockkit.ExpectKind(w.Type, KindModal); err != nil {
		return err
	}
	bs := fromList(w.Blocks)
	if bs == nil {
		bs = []blocks.Block{}
	}
	*m = Modal{
		title:           w.Title,
		blocks:          bs,
		close:           w.Close,
		submit:          w.Submit,
		privateMetadata: w.PrivateMetadata,
		callbackID:      w.CallbackID,
		clearOnClose:    w.ClearOnClose,
		notifyOnClose:   w.NotifyOnClose,
		externalID:      w.ExternalID,
	}
	return nil
}

func fromList(l *blockList) []blocks.Block {
	if l == nil {
		return nil
	}
	if *l == nil {
		return []blocks.Block{}
	}
	return []blocks.Block(*l)
}

func optRef[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
