// Package echoserver implements the TLS-terminating HTTP echo server.
package echoserver

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
)

// Config holds the echo server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// TLSConfig is the server TLS configuration, shared by reference
	// across all accepted connections (required).
	TLSConfig *tls.Config
}

// Server accepts TCP connections, terminates TLS and serves the fixed HTTP
// routing table on each connection.
//
// Error policy: a failed TLS handshake on any single connection stops the
// whole server, not just that connection. I/O or framing errors after an
// established handshake end only the affected connection.
type Server struct {
	cfg    *Config
	logger *slog.Logger
	routes []route

	mu      sync.Mutex
	ln      net.Listener
	stopped bool
	stopErr error

	wg sync.WaitGroup

	requests          atomic.Uint64
	connsAccepted     atomic.Uint64
	handshakeFailures atomic.Uint64
	activeConns       atomic.Int64
}

// New creates a new echo server.
func New(cfg *Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
	}
	s.routes = routeTable(s)

	return s
}

// ListenAndServe binds the configured address and runs the accept loop.
// It returns the fatal error that stopped the server, or an error binding
// the listener.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ln)
}

// Serve runs the accept loop on ln. Each accepted connection gets its own
// goroutine for the TLS handshake and the request-serving loop, so a slow
// peer never blocks the others. Serve returns when the server is stopped,
// either by Close or by the fatal error policy.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.stopped {
		stopErr := s.stopErr
		s.mu.Unlock()
		ln.Close()
		return stopErr
	}
	s.ln = ln
	s.mu.Unlock()

	s.logger.Info("accepting connections", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			stopped, stopErr := s.stopped, s.stopErr
			s.mu.Unlock()
			if stopped || errors.Is(err, net.ErrClosed) {
				return stopErr
			}
			// Accept errors take down the whole server.
			return fmt.Errorf("accept: %w", err)
		}

		s.connsAccepted.Add(1)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

// Close stops accepting new connections. Connections already being served
// are not drained; this is not a graceful shutdown.
func (s *Server) Close() error {
	s.stop(nil)
	return nil
}

// Addr returns the bound listener address, or "" before Serve.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return ""
}

// stop records the first stop reason and unblocks the accept loop by
// closing the listener. Later calls are no-ops.
func (s *Server) stop(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	s.stopErr = err
	if s.ln != nil {
		s.ln.Close()
	}
}

// handleConn performs the server-side TLS handshake and, on success, runs
// the serving loop. A handshake failure stops the entire server.
func (s *Server) handleConn(raw net.Conn) {
	id := ulid.Make().String()

	tc := tls.Server(raw, s.cfg.TLSConfig)
	if err := tc.HandshakeContext(context.Background()); err != nil {
		s.handshakeFailures.Add(1)
		raw.Close()
		s.logger.Error("tls handshake failed, stopping server",
			"conn", id,
			"remote", raw.RemoteAddr().String(),
			"error", err,
		)
		s.stop(fmt.Errorf("tls handshake with %s: %w", raw.RemoteAddr(), err))
		return
	}

	s.activeConns.Add(1)
	defer s.activeConns.Add(-1)

	s.logger.Debug("connection established",
		"conn", id,
		"remote", raw.RemoteAddr().String(),
	)
	s.serveConn(tc, id)
}

// serveConn parses HTTP requests off conn and writes one response per
// request, in receipt order, until the peer disconnects or the framing
// breaks. Errors here end only this connection.
func (s *Server) serveConn(conn net.Conn, id string) {
	defer conn.Close()

	br := bufio.NewReader(conn)
	bw := bufio.NewWriter(conn)

	for {
		req, err := http.ReadRequest(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("connection closed by peer", "conn", id)
			} else {
				s.logger.Debug("connection error", "conn", id, "error", err)
			}
			return
		}

		// Counted as received before routing happens.
		n := s.requests.Add(1)
		s.logger.Info("request",
			"count", n,
			"conn", id,
			"method", req.Method,
			"uri", req.RequestURI,
			"proto", req.Proto,
			"headers", fmt.Sprintf("%v", req.Header),
		)

		resp := s.route(req, id)

		// Drain whatever the handler left unread so the next request
		// parses cleanly off the same connection.
		_, _ = io.Copy(io.Discard, req.Body)
		req.Body.Close()

		if err := resp.write(bw); err != nil {
			s.logger.Debug("write response", "conn", id, "error", err)
			return
		}
		if err := bw.Flush(); err != nil {
			return
		}

		if req.Close {
			return
		}
	}
}

// Requests returns the total number of requests parsed across all
// connections since startup.
func (s *Server) Requests() uint64 {
	return s.requests.Load()
}

// ConnsAccepted returns the total number of accepted TCP connections.
func (s *Server) ConnsAccepted() uint64 {
	return s.connsAccepted.Load()
}

// HandshakeFailures returns the number of failed TLS handshakes.
func (s *Server) HandshakeFailures() uint64 {
	return s.handshakeFailures.Load()
}

// ActiveConns returns the number of connections currently being served.
func (s *Server) ActiveConns() int64 {
	return s.activeConns.Load()
}
