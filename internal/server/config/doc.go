// Package config provides server configuration for echotls-server.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation (address syntax, credential paths, log settings)
//
// Configuration is loaded via internal/infra/confloader. The listening
// port may be overridden afterwards through SetPort, which carries the
// single positional command-line argument.
//
// @req RQ-0103
// @design DS-0102
package config
