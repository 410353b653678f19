package blocks

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/build"
	"github.com/reoring/blockkit/compose"
	"github.com/reoring/blockkit/rules"
	"github.com/reoring/blockkit/schema"
)

// Divider is a horizontal rule.
//
// The block ID is held by value with a presence flag: goccy/go-json encodes a
// struct whose only field is a nil pointer as null without calling MarshalJSON.
type Divider struct {
	blockID    string
	hasBlockID bool
}

func (Divider) Kind() blockkit.Kind       { return KindDivider }
func (Divider) block()                    {}
func (d Divider) BlockID() (string, bool) { return d.blockID, d.hasBlockID }
func (d Divider) Check() blockkit.Report  { return dividerDef.Check(d) }

func (d Divider) blockIDRef() *string {
	if !d.hasBlockID {
		return nil
	}
	return &d.blockID
}

var dividerDef = schema.Register(schema.Object[Divider]("divider").Tag(KindDivider).
	Field("block_id", blockIDField(Divider.blockIDRef)).
	MustBuild())

type DividerBuilder struct{ d Divider }

func NewDivider() DividerBuilder { return DividerBuilder{} }

func (b DividerBuilder) BlockID(id string) DividerBuilder {
	b.d.blockID, b.d.hasBlockID = id, true
	return b
}

func (b DividerBuilder) Build() Divider { return b.d }

type dividerWire struct {
	Type    string  `json:"type"`
	BlockID *string `json:"block_id,omitempty"`
}

func (d Divider) MarshalJSON() ([]byte, error) {
	return json.Marshal(dividerWire{Type: string(KindDivider), BlockID: d.blockIDRef()})
}

func (d *Divider) UnmarshalJSON(data []byte) error {
	var w dividerWire
	if err := decode(data, &w, &w.Type, KindDivider); err != nil {
		return err
	}
	*d = Divider{}
	if w.BlockID != nil {
		d.blockID, d.hasBlockID = *w.BlockID, true
	}
	return nil
}

// Image is an image block. Its wire type is "image", like the image element;
// its definition is named image_block.
type Image struct {
	imageURL string
	altText  string
	title    *compose.Text
	blockID  *string
}

func (Image) Kind() blockkit.Kind           { return KindImage }
func (Image) block()                        {}
func (i Image) ImageURL() string            { return i.imageURL }
func (i Image) AltText() string             { return i.altText }
func (i Image) Title() (compose.Text, bool) { return optRef(i.title) }
func (i Image) BlockID() (string, bool)     { return optRef(i.blockID) }
func (Image) DefName() string               { return "image_block" }
func (i Image) Check() blockkit.Report      { return imageDef.Check(i) }

var imageDef = schema.Register(schema.Object[Image]("image_block").Tag(KindImage).
	Field("image_url", schema.String(Image.ImageURL, rules.URL(), rules.MaxLength(3000))).Required().
	Field("alt_text", schema.String(Image.AltText, rules.NonEmpty(), rules.MaxLength(2000))).Required().
	Field("title", schema.OptChild(func(i Image) *compose.Text { return i.title }, compose.PlainOnly(), compose.MaxText(2000))).
	Field("block_id", blockIDField(func(i Image) *string { return i.blockID })).
	MustBuild())

// ImageBuilder stages an image block; image_url and alt_text are required.
type ImageBuilder[U, A build.Marker] struct{ i Image }

func NewImage() ImageBuilder[build.Unset, build.Unset] { return ImageBuilder[build.Unset, build.Unset]{} }

func (b ImageBuilder[U, A]) ImageURL(u string) ImageBuilder[build.Set, A] {
	b.i.imageURL = u
	return ImageBuilder[build.Set, A]{i: b.i}
}

func (b ImageBuilder[U, A]) AltText(s string) ImageBuilder[U, build.Set] {
	b.i.altText = s
	return ImageBuilder[U, build.Set]{i: b.i}
}

func (b ImageBuilder[U, A]) Title(s string) ImageBuilder[U, A] {
	t := compose.Plain(s)
	b.i.title = &t
	return b
}

func (b ImageBuilder[U, A]) BlockID(id string) ImageBuilder[U, A] {
	b.i.blockID = &id
	return b
}

func (b ImageBuilder[U, A]) Missing() []string {
	return build.Missing(build.Field[U]("image_url"), build.Field[A]("alt_text"))
}

func BuildImage[U, A build.Provided](b ImageBuilder[U, A]) Image { return b.i }

type imageWire struct {
	Type     string        `json:"type"`
	ImageURL string        `json:"image_url"`
	AltText  string        `json:"alt_text"`
	Title    *compose.Text `json:"title,omitempty"`
	BlockID  *string       `json:"block_id,omitempty"`
}

func (i Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(imageWire{Type: string(KindImage), ImageURL: i.imageURL, AltText: i.altText, Title: i.title, BlockID: i.blockID})
}

func (i *Image) UnmarshalJSON(data []byte) error {
	var w imageWire
	if err := decode(data, &w, &w.Type, KindImage); err != nil {
		return err
	}
	*i = Image{imageURL: w.ImageURL, altText: w.AltText, title: w.Title, blockID: w.BlockID}
	return nil
}

// Header shows a line of large bold plain text.
type Header struct {
	text    compose.Text
	blockID *string
}

func (Header) Kind() blockkit.Kind       { return KindHeader }
func (Header) block()                    {}
func (h Header) Text() compose.Text      { return h.text }
func (h Header) BlockID() (string, bool) { return optRef(h.blockID) }
func (h Header) Check() blockkit.Report  { return headerDef.Check(h) }

var headerDef = schema.Register(schema.Object[Header]("header").Tag(KindHeader).
	Field("text", schema.Child(Header.Text, compose.PlainOnly(), compose.MaxText(150))).Required().
	Field("block_id", blockIDField(func(h Header) *string { return h.blockID })).
	MustBuild())

// HeaderBuilder stages a Header; text is required.
type HeaderBuilder[T build.Marker] struct{ h Header }

func NewHeader() HeaderBuilder[build.Unset] { return HeaderBuilder[build.Unset]{} }

func (b HeaderBuilder[T]) Text(s string) HeaderBuilder[build.Set] {
	b.h.text = compose.Plain(s)
	return HeaderBuilder[build.Set]{h: b.h}
}

func (b HeaderBuilder[T]) BlockID(id string) HeaderBuilder[T] {
	b.h.blockID = &id
	return b
}

func (b HeaderBuilder[T]) Missing() []string { return build.Missing(build.Field[T]("text")) }

func BuildHeader[T build.Provided](b HeaderBuilder[T]) Header { return b.h }

type headerWire struct {
	Type    string       `json:"type"`
	Text    compose.Text `json:"text"`
	BlockID *string      `json:"block_id,omitempty"`
}

func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(headerWire{Type: string(KindHeader), Text: h.text, BlockID: h.blockID})
}

func (h *Header) UnmarshalJSON(data []byte) error {
	var w headerWire
	if err := decode(data, &w, &w.Type, KindHeader); err != nil {
		return err
	}
	*h = Header{text: w.Text, blockID: w.BlockID}
	return nil
}

// SourceRemote is the only file source Block Kit supports.
const SourceRemote = "remote"

// File shows a remote file. It appears only in messages retrieved from the
// platform; apps cannot post it.
type File struct {
	externalID string
	source     string
	blockID    *string
}

func (File) Kind() blockkit.Kind       { return KindFile }
func (File) block()                    {}
func (f File) ExternalID() string      { return f.externalID }
func (f File) Source() string          { return f.source }
func (f File) BlockID() (string, bool) { return optRef(f.blockID) }
func (f File) Check() blockkit.Report  { return fileDef.Check(f) }

var fileDef = schema.Register(schema.Object[File]("file").Tag(KindFile).
	Field("external_id", schema.String(File.ExternalID, rules.NonEmpty())).Required().
	Field("source", schema.String(File.Source, rules.OneOf(SourceRemote))).Required().
	Field("block_id", blockIDField(func(f File) *string { return f.blockID })).
	MustBuild())

// FileBuilder stages a File; external_id is required. The source is always
// remote.
type FileBuilder[X build.Marker] struct{ f File }

func NewFile() FileBuilder[build.Unset] {
	return FileBuilder[build.Unset]{f: File{source: SourceRemote}}
}

func (b FileBuilder[X]) ExternalID(id string) FileBuilder[build.Set] {
	b.f.externalID = id
	return FileBuilder[build.Set]{f: b.f}
}

func (b FileBuilder[X]) BlockID(id string) FileBuilder[X] {
	b.f.blockID = &id
	return b
}

func (b FileBuilder[X]) Missing() []string { return build.Missing(build.Field[X]("external_id")) }

func BuildFile[X build.Provided](b FileBuilder[X]) File { return b.f }

type fileWire struct {
	Type       string  `json:"type"`
	ExternalID string  `json:"external_id"`
	Source     string  `json:"source"`
	BlockID    *string `json:"block_id,omitempty"`
}

func (f File) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileWire{Type: string(KindFile), ExternalID: f.externalID, Source: f.source, BlockID: f.blockID})
}

func (f *File) UnmarshalJSON(data []byte) error {
	var w fileWire
	if err := decode(data, &w, &w.Type, KindFile); err != nil {
		return err
	}
	*f = File{externalID: w.ExternalID, source: w.Source, blockID: w.BlockID}
	return nil
}
