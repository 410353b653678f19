// Package blockkit provides:
//
// - A typed document model for Slack Block Kit (blocks, elements, composition objects)
// - Staged builders whose finalizers only compile once every required field is set
// - A stable violation model via Report (JSON Pointer path, kind, message)
// - Variant families with fallible narrowing into the element sets a container accepts
//
// Design policy:
// - Keep only the error model and the Node contract in the root package.
// - Place constraint primitives under rules/, definitions under schema/, the node
//   catalog under compose/, elems/, blocks/ and surface/, and the CLI under cmd/blockkit.
// - Validation never mutates and never stops at the first violation.
//
// Typical usage:
//
//	btn := elems.BuildButton(elems.NewButton().Text("Approve").ActionID("approve"))
//	el, err := blocks.ActionsOf(btn)
//	actions := blocks.BuildActions(blocks.NewActions().Element(el))
//
//	if err := blockkit.Validate(actions); err != nil {
//	    report, _ := blockkit.AsReport(err)
//	    ...
//	}
//
//	wire, err := codec.Encode(actions)
package blockkit
