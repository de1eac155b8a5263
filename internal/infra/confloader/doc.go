// Package confloader provides configuration loading for echotls-server.
//
// Configuration is assembled from three sources, later sources taking
// precedence:
//
//   - Defaults from the config package
//   - An optional YAML file
//   - ECHOTLS_* environment variables
//
// The listening port itself comes from the command line (a single
// positional argument); this package covers the ambient settings only
// (certificate paths, log level, metrics address).
package confloader
