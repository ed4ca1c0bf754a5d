// Package server serves a mounted root over HTTP and streams its live tree
// to viewers over WebSocket.
//
// Routes:
//
//	GET  /                   HTML snapshot; elements carry data-fid node ids
//	GET  /tree               JSON snapshot of the live tree
//	POST /events/{id}/{type} dispatch an event at node id (form field "value")
//	GET  /ws                 binary frame stream (see package protocol)
//	GET  /metrics            Prometheus metrics, when a gatherer is set
//	GET  /healthz            liveness probe
//
// A viewer connecting to /ws first receives one mutation batch that builds
// the current tree from nothing, then one batch per update cycle. Viewers
// send event frames back; their effect reaches every viewer as a batch.
//
// The root is single-goroutine. The server serializes every access to it
// behind one mutex; use Do to touch the root from other goroutines.
package server
