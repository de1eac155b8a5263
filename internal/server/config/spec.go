// Package config provides server configuration for echotls-server.
package config

import (
	"fmt"
	"net"
	"strconv"
)

// ServerConfig is the root configuration for echotls-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Metrics MetricsSection `koanf:"metrics"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the listening endpoint.
type ServerSection struct {
	// Addr is the TCP listen address (host:port).
	Addr string    `koanf:"addr"`
	TLS  TLSConfig `koanf:"tls"`
}

// TLSConfig configures the server credentials.
type TLSConfig struct {
	// CertFile is the PEM certificate chain file.
	CertFile string `koanf:"cert_file"`
	// KeyFile is the PEM private key file (exactly one RSA key).
	KeyFile string `koanf:"key_file"`
	// Reload enables reloading the key pair when the files change.
	Reload bool `koanf:"reload"`
}

// MetricsSection configures the optional Prometheus endpoint.
type MetricsSection struct {
	// Addr is the metrics listen address; empty disables the endpoint.
	Addr string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// SetPort replaces the port part of the listen address. It is used for the
// single positional port argument on the command line.
func (c *ServerConfig) SetPort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid port %q", port)
	}

	host, _, err := net.SplitHostPort(c.Server.Addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", c.Server.Addr, err)
	}

	c.Server.Addr = net.JoinHostPort(host, port)
	return nil
}
