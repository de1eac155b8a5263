package config

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != "127.0.0.1:1338" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:1338")
	}
	if cfg.Server.TLS.CertFile != "cert_util/localhost.pem" {
		t.Errorf("TLS.CertFile = %q", cfg.Server.TLS.CertFile)
	}
	if cfg.Server.TLS.KeyFile != "cert_util/localhost.key" {
		t.Errorf("TLS.KeyFile = %q", cfg.Server.TLS.KeyFile)
	}
	if cfg.Server.TLS.Reload {
		t.Error("TLS.Reload should be disabled by default")
	}
	if cfg.Metrics.Addr != "" {
		t.Error("Metrics.Addr should be empty (disabled) by default")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, want info/text", cfg.Log)
	}
}

func TestVerify_Default(t *testing.T) {
	if err := Verify(Default()); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{
			name:    "missing port",
			mutate:  func(c *ServerConfig) { c.Server.Addr = "127.0.0.1" },
			wantErr: "invalid listen address",
		},
		{
			name:    "port out of range",
			mutate:  func(c *ServerConfig) { c.Server.Addr = "127.0.0.1:99999" },
			wantErr: "invalid port",
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *ServerConfig) { c.Server.Addr = "127.0.0.1:http" },
			wantErr: "invalid port",
		},
		{
			name:    "empty cert file",
			mutate:  func(c *ServerConfig) { c.Server.TLS.CertFile = "" },
			wantErr: "cert_file",
		},
		{
			name:    "empty key file",
			mutate:  func(c *ServerConfig) { c.Server.TLS.KeyFile = "" },
			wantErr: "key_file",
		},
		{
			name:    "bad metrics addr",
			mutate:  func(c *ServerConfig) { c.Metrics.Addr = "nope" },
			wantErr: "metrics",
		},
		{
			name:    "bad log level",
			mutate:  func(c *ServerConfig) { c.Log.Level = "loud" },
			wantErr: "log level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *ServerConfig) { c.Log.Format = "xml" },
			wantErr: "log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if err == nil {
				t.Fatal("Verify() should return error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestSetPort(t *testing.T) {
	cfg := Default()
	if err := cfg.SetPort("8443"); err != nil {
		t.Fatalf("SetPort() error = %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:8443" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:8443")
	}
}

func TestSetPort_Invalid(t *testing.T) {
	tests := []string{"", "abc", "0", "-1", "65536"}
	for _, port := range tests {
		t.Run(port, func(t *testing.T) {
			cfg := Default()
			if err := cfg.SetPort(port); err == nil {
				t.Errorf("SetPort(%q) should return error", port)
			}
		})
	}
}
