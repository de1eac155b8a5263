// Package echoserver implements the TLS-terminating HTTP echo server.
package echoserver

import (
	"bufio"
	"fmt"
	"net/http"
)

// write serializes the response with explicit framing. Content-Length is
// always sent, including zero, so keep-alive clients can delimit empty
// bodies.
func (r *response) write(bw *bufio.Writer) error {
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", r.status, http.StatusText(r.status)); err != nil {
		return err
	}
	if len(r.body) > 0 {
		if _, err := bw.WriteString("Content-Type: text/plain; charset=utf-8\r\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "Content-Length: %d\r\n\r\n", len(r.body)); err != nil {
		return err
	}
	_, err := bw.Write(r.body)
	return err
}
