// Package protocol implements the binary wire format of the live server.
//
// Mutations applied to a document flow from server to viewers; interaction
// events flow back. Both travel as frames over a WebSocket connection.
//
// # Frames
//
//	┌─────────────┬──────────────────────┬───────────────────┐
//	│ Frame Type  │ Payload Length       │ Payload           │
//	│ (1 byte)    │ (uvarint)            │ (length bytes)    │
//	└─────────────┴──────────────────────┴───────────────────┘
//
// Frame types:
//
//   - FrameEvent (0x01): viewer → server interaction event
//   - FrameMutations (0x02): server → viewer mutation batch
//   - FrameError (0x05): server → viewer error message
//
// # Mutation batches
//
//	[Seq: uvarint][Count: uvarint] then Count times:
//	[Op: byte][Target: uvarint][op-specific fields]
//
// Op-specific fields:
//
//	Create                          Key (tag or "#text"), Value if text
//	Append, Insert, Remove, Move    Parent, Index
//	Replace                         Parent, Index, Node
//	SetAttr, SetProp, SetStyle      Key, Value
//	RemoveAttr, RemoveStyle,
//	SetHandler, RemoveHandler       Key
//
// Strings are uvarint-length-prefixed UTF-8. Op bytes are the values of
// dom.MutationOp.
//
// # Events
//
//	[Seq: uvarint][Target: uvarint][Type: string][Value: string]
//	[DataCount: uvarint] then DataCount times [Key: string][Value: string]
//
// Decoding failures are *errors.FeatherError values with code E301.
package protocol
