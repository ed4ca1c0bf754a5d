// Package dom is Feather's live element model.
//
// A Document owns a tree of Nodes: elements with literal attributes, live
// properties, a live style and a handler table, and text nodes. Every
// structural or attribute change is reported to the document's observers as
// a Mutation, which is how tests count reconciler work and how the live
// server streams changes to remote viewers.
//
// # Event routing
//
// Each Document has exactly one Router. The router is subscribed once per
// event kind and dispatches by walking from the event target toward the
// root, invoking the first handler registered for the kind. Nodes never get
// their own listeners; the reconciler only edits handler tables.
//
// # Thread Safety
//
// A Document is not safe for concurrent use. Callers that share one across
// goroutines (the live server does) must serialize access.
package dom
