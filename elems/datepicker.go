package elems

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/build"
	"github.com/reoring/blockkit/compose"
	"github.com/reoring/blockkit/rules"
	"github.com/reoring/blockkit/schema"
)

// DatePicker lets the user pick a calendar date.
type DatePicker struct {
	actionID    string
	placeholder *compose.Text
	initialDate *string
	confirm     *compose.Confirm
}

func (DatePicker) Kind() blockkit.Kind                 { return KindDatePicker }
func (DatePicker) element()                            {}
func (d DatePicker) ActionID() string                  { return d.actionID }
func (d DatePicker) Placeholder() (compose.Text, bool) { return optRef(d.placeholder) }
func (d DatePicker) InitialDate() (string, bool)       { return optRef(d.initialDate) }
func (d DatePicker) Confirm() (compose.Confirm, bool)  { return optRef(d.confirm) }
func (d DatePicker) Check() blockkit.Report            { return datePickerDef.Check(d) }

var datePickerDef = schema.Register(schema.Object[DatePicker]("datepicker").Tag(KindDatePicker).
	Field("action_id", schema.String(DatePicker.ActionID, actionID())).Required().
	Field("placeholder", schema.OptChild(func(d DatePicker) *compose.Text { return d.placeholder }, placeholder()...)).
	Field("initial_date", schema.OptString(func(d DatePicker) *string { return d.initialDate }, rules.DateFormat())).
	Field("confirm", confirmField(func(d DatePicker) *compose.Confirm { return d.confirm })).
	MustBuild())

// DatePickerBuilder stages a DatePicker; action_id is required.
type DatePickerBuilder[A build.Marker] struct{ d DatePicker }

func NewDatePicker() DatePickerBuilder[build.Unset] { return DatePickerBuilder[build.Unset]{} }

func (b DatePickerBuilder[A]) ActionID(id string) DatePickerBuilder[build.Set] {
	b.d.actionID = id
	return DatePickerBuilder[build.Set]{d: b.d}
}

func (b DatePickerBuilder[A]) Placeholder(s string) DatePickerBuilder[A] {
	p := compose.Plain(s)
	b.d.placeholder = &p
	return b
}

// InitialDate sets the preselected date, formatted YYYY-MM-DD.
func (b DatePickerBuilder[A]) InitialDate(date string) DatePickerBuilder[A] {
	b.d.initialDate = &date
	return b
}

func (b DatePickerBuilder[A]) Confirm(c compose.Confirm) DatePickerBuilder[A] {
	b.d.confirm = &c
	return b
}

func (b DatePickerBuilder[A]) Missing() []string {
	return build.Missing(build.Field[A]("action_id"))
}

func BuildDatePicker[A build.Provided](b DatePickerBuilder[A]) DatePicker { return b.d }

type datePickerWire struct {
	Type        string           `json:"type"`
	ActionID    string           `json:"action_id"`
	Placeholder *compose.Text    `json:"placeholder,omitempty"`
	InitialDate *string          `json:"initial_date,omitempty"`
	Confirm     *compose.Confirm `json:"confirm,omitempty"`
}

func (d DatePicker) MarshalJSON() ([]byte, error) {
	return json.Marshal(datePickerWire{
		Type:        string(KindDatePicker),
		ActionID:    d.actionID,
		Placeholder: d.placeholder,
		InitialDate: d.initialDate,
		Confirm:     d.confirm,
	})
}

func (d *DatePicker) UnmarshalJSON(data []byte) error {
	var w datePickerWire
	if err := decode(data, &w, &w.Type, KindDatePicker); err != nil {
		return err
	}
	*d = DatePicker{actionID: w.ActionID, placeholder: w.Placeholder, initialDate: w.InitialDate, confirm: w.Confirm}
	return nil
}

// Image is an image element, usable in sections and context blocks.
type Image struct {
	imageURL string
	altText  string
}

func (Image) Kind() blockkit.Kind      { return KindImage }
func (Image) element()                 {}
func (i Image) ImageURL() string       { return i.imageURL }
func (i Image) AltText() string        { return i.altText }
func (i Image) Check() blockkit.Report { return imageDef.Check(i) }

var imageDef = schema.Register(schema.Object[Image]("image").Tag(KindImage).
	Field("image_url", schema.String(Image.ImageURL, rules.URL(), rules.MaxLength(3000))).Required().
	Field("alt_text", schema.String(Image.AltText, rules.NonEmpty(), rules.MaxLength(2000))).Required().
	MustBuild())

// ImageBuilder stages an Image; image_url and alt_text are required.
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

func (b ImageBuilder[U, A]) Missing() []string {
	return build.Missing(build.Field[U]("image_url"), build.Field[A]("alt_text"))
}

func BuildImage[U, A build.Provided](b ImageBuilder[U, A]) Image { return b.i }

type imageWire struct {
	Type     string `json:"type"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text"`
}

func (i Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(imageWire{Type: string(KindImage), ImageURL: i.imageURL, AltText: i.altText})
}

func (i *Image) UnmarshalJSON(data []byte) error {
	var w imageWire
	if err := decode(data, &w, &w.Type, KindImage); err != nil {
		return err
	}
	*i = Image{imageURL: w.ImageURL, altText: w.AltText}
	return nil
}
