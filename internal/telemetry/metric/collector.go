// Package metric provides Prometheus metrics for echotls-server.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Stats is the read side of the server's counters. The echoserver package
// satisfies it.
type Stats interface {
	Requests() uint64
	ConnsAccepted() uint64
	HandshakeFailures() uint64
	ActiveConns() int64
}

// Collector exports server counters as Prometheus metrics. Values are read
// on scrape, no sampling loop runs.
type Collector struct {
	stats Stats

	requests          *prometheus.Desc
	connsAccepted     *prometheus.Desc
	handshakeFailures *prometheus.Desc
	activeConns       *prometheus.Desc
}

// NewCollector creates a collector backed by stats.
func NewCollector(stats Stats) *Collector {
	return &Collector{
		stats: stats,
		requests: prometheus.NewDesc(
			"echotls_requests_total",
			"Total HTTP requests parsed across all connections.",
			nil, nil,
		),
		connsAccepted: prometheus.NewDesc(
			"echotls_connections_accepted_total",
			"Total TCP connections accepted.",
			nil, nil,
		),
		handshakeFailures: prometheus.NewDesc(
			"echotls_handshake_failures_total",
			"Total failed TLS handshakes.",
			nil, nil,
		),
		activeConns: prometheus.NewDesc(
			"echotls_active_connections",
			"Connections currently past the TLS handshake.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.requests
	ch <- c.connsAccepted
	ch <- c.handshakeFailures
	ch <- c.activeConns
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.requests, prometheus.CounterValue, float64(c.stats.Requests()))
	ch <- prometheus.MustNewConstMetric(c.connsAccepted, prometheus.CounterValue, float64(c.stats.ConnsAccepted()))
	ch <- prometheus.MustNewConstMetric(c.handshakeFailures, prometheus.CounterValue, float64(c.stats.HandshakeFailures()))
	ch <- prometheus.MustNewConstMetric(c.activeConns, prometheus.GaugeValue, float64(c.stats.ActiveConns()))
}
