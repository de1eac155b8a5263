// Package echoserver implements the TLS-terminating HTTP echo server.
//
// The server owns the listening socket and runs an accept loop; every
// accepted connection gets its own goroutine which performs the server-side
// TLS handshake and then serves HTTP/1.1 requests against a small fixed
// routing table:
//
//   - GET  /      help text
//   - POST /echo  body drained, fixed acknowledgement
//   - anything else: 404 with an empty body
//
// A failed TLS handshake on any connection is fatal for the whole server:
// the accept loop terminates and ListenAndServe returns the handshake
// error. Callers that want to survive a bad client must restart the
// process; see DESIGN.md before changing this.
//
// The only mutable state shared across connections is the request counter,
// an atomic incremented once per request parsed off the wire.
//
// @req RQ-0101
// @design DS-0104
package echoserver
