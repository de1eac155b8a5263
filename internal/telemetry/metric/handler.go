// Package metric provides Prometheus metrics for echotls-server.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns an HTTP handler serving the exposition format for stats.
// The registry is private, nothing else is exported through it.
func Handler(stats Stats) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(stats))
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve blocks serving /metrics on addr over plain HTTP. It is meant for a
// loopback or otherwise shielded address.
func Serve(addr string, stats Stats) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(stats))
	return http.ListenAndServe(addr, mux)
}
