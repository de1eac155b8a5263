// Package metric exports the server's connection and request counters in
// Prometheus exposition format.
//
// The exporter is pull-only: a Collector reads the live counters at scrape
// time through the Stats interface, so the serving path never touches a
// metrics library. Exposition runs on its own listener and is disabled
// unless an address is configured.
//
// @design DS-0105
package metric
