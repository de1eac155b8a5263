// Package tlscreds provides TLS server credential management.
//
// It loads a PEM-encoded certificate chain and exactly one PKCS#1 RSA
// private key from disk, verifies they belong together, and builds the
// immutable server tls.Config shared by all accepted connections.
//
// An optional Watcher reloads the key pair when the files change on disk;
// when enabled, the tls.Config resolves the certificate per handshake
// through GetCertificate so the config object itself never changes.
//
// @req RQ-0102
// @design DS-0103
package tlscreds
