// Package echoserver implements the TLS-terminating HTTP echo server.
package echoserver

import (
	"io"
	"net/http"
	"unicode/utf8"
)

// response is the wire-level reply produced by the route table.
type response struct {
	status int
	body   []byte
}

// route matches a request by method and path. Empty method or path match
// anything.
type route struct {
	method string
	path   string
	handle func(req *http.Request, id string) *response
}

func (r *route) matches(method, path string) bool {
	if r.method != "" && r.method != method {
		return false
	}
	if r.path != "" && r.path != path {
		return false
	}
	return true
}

// routeTable builds the ordered routing table. Evaluation is top to bottom,
// first match wins; the catch-all 404 entry must stay last.
func routeTable(s *Server) []route {
	return []route{
		{http.MethodGet, "/", s.handleHelp},
		{http.MethodPost, "/echo", s.handleEcho},
		{"", "", s.handleNotFound},
	}
}

// route dispatches a parsed request through the table. The query string is
// ignored for matching.
func (s *Server) route(req *http.Request, id string) *response {
	for i := range s.routes {
		if s.routes[i].matches(req.Method, req.URL.Path) {
			return s.routes[i].handle(req, id)
		}
	}
	// Unreachable while the catch-all entry is in place.
	return &response{status: http.StatusNotFound}
}

func (s *Server) handleHelp(*http.Request, string) *response {
	return &response{status: http.StatusOK, body: []byte("Try POST /echo\n")}
}

// handleEcho buffers the whole request body, logs it when it decodes as
// UTF-8 (non-UTF-8 bodies are skipped, never an error) and returns a fixed
// acknowledgement. The body itself is discarded.
func (s *Server) handleEcho(req *http.Request, id string) *response {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		// A torn body read shows up again when the response write
		// fails; the reply itself is unaffected.
		s.logger.Debug("echo body read", "conn", id, "error", err)
	}
	if utf8.Valid(body) {
		s.logger.Debug("echo body", "conn", id, "body", string(body))
	}
	return &response{status: http.StatusOK, body: []byte("/echo\n")}
}

func (s *Server) handleNotFound(*http.Request, string) *response {
	return &response{status: http.StatusNotFound}
}
