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

// Section displays text, an optional two-column list of fields and an
// optional accessory element. It needs text, fields or both.
type Section struct {
	text      *compose.Text
	fields    []compose.Text
	accessory *SectionAccessory
	blockID   *string
}

func (Section) Kind() blockkit.Kind                   { return KindSection }
func (Section) block()                                {}
func (s Section) Text() (compose.Text, bool)          { return optRef(s.text) }
func (s Section) Fields() []compose.Text              { return build.Clone(s.fields) }
func (s Section) Accessory() (SectionAccessory, bool) { return optRef(s.accessory) }
func (s Section) BlockID() (string, bool)             { return optRef(s.blockID) }
func (s Section) Check() blockkit.Report              { return sectionDef.Check(s) }

var sectionDef = schema.Register(schema.Object[Section]("section").Tag(KindSection).
	Field("text", schema.OptChild(func(s Section) *compose.Text { return s.text }, compose.MaxText(3000))).
	Field("fields", schema.Children(func(s Section) []compose.Text { return s.fields }, compose.MaxText(2000)).
		Count(rules.BoundedCount(10))).
	Field("accessory", schema.OptChild(func(s Section) *SectionAccessory { return s.accessory })).
	Field("block_id", blockIDField(func(s Section) *string { return s.blockID })).
	Refine("text_or_fields", rules.AnyOf(
		rules.Field("text", func(s Section) bool { return s.text != nil }),
		rules.Field("fields", func(s Section) bool { return s.fields != nil }),
	)).
	MustBuild())

// SectionBuilder stages a Section. No field is required by type; a section
// with neither text nor fields is reported by validation.
type SectionBuilder struct{ s Section }

func NewSection() SectionBuilder { return SectionBuilder{} }

func (b SectionBuilder) Text(t compose.Text) SectionBuilder {
	b.s.text = &t
	return b
}

// Fields replaces the field texts.
func (b SectionBuilder) Fields(ts ...compose.Text) SectionBuilder {
	b.s.fields = append([]compose.Text{}, ts...)
	return b
}

// Field appends one field text.
func (b SectionBuilder) Field(t compose.Text) SectionBuilder {
	b.s.fields = build.Append(b.s.fields, t)
	return b
}

func (b SectionBuilder) Accessory(a SectionAccessory) SectionBuilder {
	b.s.accessory = &a
	return b
}

func (b SectionBuilder) BlockID(id string) SectionBuilder {
	b.s.blockID = &id
	return b
}

func (b SectionBuilder) Build() Section { return b.s }

type sectionWire struct {
	Type      string            `json:"type"`
	Text      *compose.Text     `json:"text,omitempty"`
	Fields    *[]compose.Text   `json:"fields,omitempty"`
	Accessory *SectionAccessory `json:"accessory,omitempty"`
	BlockID   *string           `json:"block_id,omitempty"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(sectionWire{
		Type:      string(KindSection),
		Text:      s.text,
		Fields:    wire.Opt(s.fields),
		Accessory: s.accessory,
		BlockID:   s.blockID,
	})
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var w sectionWire
	if err := decode(data, &w, &w.Type, KindSection); err != nil {
		return err
	}
	*s = Section{text: w.Text, fields: wire.FromOpt(w.Fields), accessory: w.Accessory, blockID: w.BlockID}
	return nil
}
