// Package blocks implements Block Kit layout blocks and the restricted element
// families each container accepts.
//
// A container never holds a bare elems.Element: actions blocks hold
// ActionsElement, input blocks hold InputElement and so on. Each of those is a
// variant.Member tagged with the container's family, so an out-of-family
// element is rejected when it is narrowed (ActionsOf, InputOf, ...), before a
// block can be built from it.
package blocks

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/compose"
	"github.com/reoring/blockkit/elems"
	"github.com/reoring/blockkit/rules"
	"github.com/reoring/blockkit/schema"
	"github.com/reoring/blockkit/variant"
)

// Block kinds.
const (
	KindSection blockkit.Kind = "section"
	KindDivider blockkit.Kind = "divider"
	KindImage   blockkit.Kind = "image"
	KindActions blockkit.Kind = "actions"
	KindContext blockkit.Kind = "context"
	KindInput   blockkit.Kind = "input"
	KindFile    blockkit.Kind = "file"
	KindHeader  blockkit.Kind = "header"
)

// Block is the general family of layout blocks.
type Block interface {
	blockkit.Node
	json.Marshaler
	block()
}

var registry = variant.NewRegistry[Block]("block")

func init() {
	register[Section](KindSection)
	register[Divider](KindDivider)
	register[Image](KindImage)
	register[Actions](KindActions)
	register[Context](KindContext)
	register[Input](KindInput)
	register[File](KindFile)
	register[Header](KindHeader)

	schema.RegisterUnion("block", "section", "divider", "image_block", "actions", "context", "input", "file", "header")
	for _, f := range []variant.Family[elems.Element]{actionsFamily, inputFamily, accessoryFamily} {
		names := make([]string, 0, len(f.Kinds()))
		for _, k := range f.Kinds() {
			names = append(names, string(k))
		}
		schema.RegisterUnion(f.Name(), names...)
	}
	schema.RegisterUnion(contextFamily.Name(), "text", "image")
}

func register[N Block, P interface {
	*N
	json.Unmarshaler
}](kind blockkit.Kind) {
	registry.Register(kind, func(data []byte) (Block, error) {
		var n N
		if err := P(&n).UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return n, nil
	})
}

// Decode parses any block from its wire form.
func Decode(data []byte) (Block, error) { return registry.Decode(data) }

// Kinds lists every block kind.
func Kinds() []blockkit.Kind { return registry.Kinds() }

// Restricted element families.

var (
	actionsFamily = variant.Declare[elems.Element]("actions_element", elems.Decode,
		elems.KindButton, elems.KindCheckboxes, elems.KindDatePicker, elems.KindOverflow,
		elems.KindTextInput, elems.KindRadioButtons,
		elems.KindStaticSelect, elems.KindExternalSelect, elems.KindUsersSelect,
		elems.KindConversationsSelect, elems.KindChannelsSelect,
		elems.KindMultiStaticSelect, elems.KindMultiUsersSelect, elems.KindMultiConversationsSelect)

	inputFamily = variant.Declare[elems.Element]("input_element", elems.Decode,
		elems.KindCheckboxes, elems.KindDatePicker, elems.KindTextInput, elems.KindRadioButtons,
		elems.KindStaticSelect, elems.KindExternalSelect, elems.KindUsersSelect,
		elems.KindConversationsSelect, elems.KindChannelsSelect,
		elems.KindMultiStaticSelect, elems.KindMultiUsersSelect, elems.KindMultiConversationsSelect)

	accessoryFamily = variant.Declare[elems.Element]("section_accessory", elems.Decode,
		elems.KindButton, elems.KindCheckboxes, elems.KindDatePicker, elems.KindImage,
		elems.KindOverflow, elems.KindRadioButtons,
		elems.KindStaticSelect, elems.KindExternalSelect, elems.KindUsersSelect,
		elems.KindConversationsSelect, elems.KindChannelsSelect,
		elems.KindMultiStaticSelect, elems.KindMultiUsersSelect, elems.KindMultiConversationsSelect)

	// Context blocks mix text objects and image elements, so their general
	// family is any node.
	contextFamily = variant.Declare[blockkit.Node]("context_element", decodeContextElement,
		compose.KindPlain, compose.KindMrkdwn, elems.KindImage)
)

// ActionsTag tags the elements accepted by actions blocks.
type ActionsTag struct{}

func (ActionsTag) Family() variant.Family[elems.Element] { return actionsFamily }

// InputTag tags the elements accepted by input blocks.
type InputTag struct{}

func (InputTag) Family() variant.Family[elems.Element] { return inputFamily }

// AccessoryTag tags the elements accepted as a section accessory.
type AccessoryTag struct{}

func (AccessoryTag) Family() variant.Family[elems.Element] { return accessoryFamily }

// ContextTag tags the nodes accepted by context blocks.
type ContextTag struct{}

func (ContextTag) Family() variant.Family[blockkit.Node] { return contextFamily }

type (
	ActionsElement   = variant.Member[elems.Element, ActionsTag]
	InputElement     = variant.Member[elems.Element, InputTag]
	SectionAccessory = variant.Member[elems.Element, AccessoryTag]
	ContextElement   = variant.Member[blockkit.Node, ContextTag]
)

// ActionsOf narrows e to the actions family.
func ActionsOf(e elems.Element) (ActionsElement, error) {
	return variant.Narrow[elems.Element, ActionsTag](e)
}

// ActionsOfAll narrows every element; it fails on the first element outside
// the family.
func ActionsOfAll(es ...elems.Element) ([]ActionsElement, error) {
	return variant.NarrowAll[elems.Element, ActionsTag](es)
}

// InputOf narrows e to the input family.
func InputOf(e elems.Element) (InputElement, error) {
	return variant.Narrow[elems.Element, InputTag](e)
}

// AccessoryOf narrows e to the section accessory family.
func AccessoryOf(e elems.Element) (SectionAccessory, error) {
	return variant.Narrow[elems.Element, AccessoryTag](e)
}

// ContextOf narrows n to the context family: a text object or an image
// element.
func ContextOf(n blockkit.Node) (ContextElement, error) {
	return variant.Narrow[blockkit.Node, ContextTag](n)
}

// ContextOfAll narrows every node; it fails on the first node outside the
// family.
func ContextOfAll(ns ...blockkit.Node) ([]ContextElement, error) {
	return variant.NarrowAll[blockkit.Node, ContextTag](ns)
}

func decodeContextElement(data []byte) (blockkit.Node, error) {
	kind, err := variant.PeekKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case compose.KindPlain, compose.KindMrkdwn:
		var t compose.Text
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return t, nil
	}
	return elems.Decode(data)
}

// Shared field constraints.

func blockID() rules.Constraint[string] { return rules.MaxLength(255) }

func blockIDField[N any](get func(N) *string) schema.Accessor[N] {
	return schema.OptString(get, blockID())
}

func optRef[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// decode unmarshals a block's wire struct and checks its discriminant.
func decode(data []byte, w any, typ *string, want blockkit.Kind) error {
	if err := json.Unmarshal(data, w); err != nil {
		return fmt.Errorf("decode %s: %w", want, err)
	}
	return blockkit.ExpectKind(*typ, want)
}
