// Package reconcile moves a live dom tree from one vdom description to the
// next with as few mutations as it can.
//
// Patch follows a fixed decision table: create when there is no previous
// node, delete when there is no next node, replace when the node type
// changed (a different tag, or text with a different value), and otherwise
// reuse the live node, diff its attributes and recurse into children.
//
// PatchChildren matches children by their "key" attribute first and by
// position otherwise. A keyed child whose position changed is moved, not
// recreated, so it keeps its live node.
//
// Descriptions are never mutated. The Refs table records which live node
// each description node produced and hands the entry over when an update
// reuses the node.
package reconcile
