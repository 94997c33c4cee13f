// Package inspect serves a live view of a document's components for development.
//
// Endpoints:
//
//	GET  /instances          live instances with their reactive properties
//	GET  /document           the current document as HTML
//	POST /remove?selector=   detach matching elements, then run liveness
//	GET  /metrics            Prometheus metrics
//	GET  /events             websocket stream of lifecycle events
//
// Every handler touching the document goes through the UI loop, so the
// server can run next to widgets driven from other goroutines.
package inspect
