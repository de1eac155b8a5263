// Package main provides the entry point for echotls-server.
//
// The server terminates TLS on a single listening port and answers a
// fixed set of HTTP/1.1 routes over it:
//
//   - GET  /      help text
//   - POST /echo  body drained, fixed acknowledgement
//   - anything else: 404 with an empty body
//
// Usage:
//
//	echotls-server [port]
//
// The port defaults to 1338. Everything else (credential paths, log
// level and format, the optional metrics listener) is configured via
// ECHOTLS_* environment variables or a YAML file named by ECHOTLS_CONFIG.
//
// Startup failures and the fatal serving errors print FAILED: <error>
// on stderr and exit with status 1.
//
// @design DS-0501
package main
