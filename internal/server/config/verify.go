// Package config provides server configuration for echotls-server.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyAddr(cfg.Server.Addr); err != nil {
		return err
	}
	if cfg.Server.TLS.CertFile == "" {
		return errors.New("server.tls.cert_file is required")
	}
	if cfg.Server.TLS.KeyFile == "" {
		return errors.New("server.tls.key_file is required")
	}
	if cfg.Metrics.Addr != "" {
		if err := verifyAddr(cfg.Metrics.Addr); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}
	return verifyLog(&cfg.Log)
}

func verifyAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid port in address %q", addr)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.Level)
	}
	switch cfg.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}
	return nil
}
