package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Server struct {
		Addr string `koanf:"addr"`
		TLS  struct {
			CertFile string `koanf:"cert_file"`
			KeyFile  string `koanf:"key_file"`
		} `koanf:"tls"`
	} `koanf:"server"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/path/to/config.yaml" {
		t.Errorf("filePath = %q, want %q", l.filePath, "/path/to/config.yaml")
	}
}

func TestLoader_LoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  addr: "127.0.0.1:8443"
  tls:
    cert_file: "certs/server.pem"
log:
  level: "debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	l := NewLoader()
	if err := l.LoadFile(configPath); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if addr := l.GetString("server.addr"); addr != "127.0.0.1:8443" {
		t.Errorf("server.addr = %q, want %q", addr, "127.0.0.1:8443")
	}
	if cert := l.GetString("server.tls.cert_file"); cert != "certs/server.pem" {
		t.Errorf("server.tls.cert_file = %q, want %q", cert, "certs/server.pem")
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
}

func TestLoader_LoadFile_Empty(t *testing.T) {
	l := NewLoader()
	// Empty path should not error
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("ECHOTLS_LOG_LEVEL", "debug")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if level := l.GetString("log.level"); level != "debug" {
		t.Errorf("log.level = %q, want %q", level, "debug")
	}
}

func TestLoader_LoadEnv_CredentialFiles(t *testing.T) {
	t.Setenv("ECHOTLS_SERVER_TLS_CERT_FILE", "/etc/echotls/server.pem")
	t.Setenv("ECHOTLS_SERVER_TLS_KEY_FILE", "/etc/echotls/server.key")

	var cfg testConfig
	cfg.Server.TLS.CertFile = "default.pem"
	cfg.Server.TLS.KeyFile = "default.key"

	l := NewLoader()
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Keys whose last segment holds a literal underscore must still be
	// reachable from the environment.
	if cfg.Server.TLS.CertFile != "/etc/echotls/server.pem" {
		t.Errorf("Server.TLS.CertFile = %q, want %q", cfg.Server.TLS.CertFile, "/etc/echotls/server.pem")
	}
	if cfg.Server.TLS.KeyFile != "/etc/echotls/server.key" {
		t.Errorf("Server.TLS.KeyFile = %q, want %q", cfg.Server.TLS.KeyFile, "/etc/echotls/server.key")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{
		"server.addr": "127.0.0.1:9999",
	}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	if addr := l.GetString("server.addr"); addr != "127.0.0.1:9999" {
		t.Errorf("server.addr = %q, want %q", addr, "127.0.0.1:9999")
	}
}

func TestLoader_Load_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
log:
  level: "info"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("ECHOTLS_LOG_LEVEL", "error")

	var cfg testConfig
	l := NewLoader(WithConfigFile(configPath))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want %q (env should override file)", cfg.Log.Level, "error")
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load()")
	}
}

func TestLoader_Unmarshal(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{
		"server.addr":          "127.0.0.1:1338",
		"server.tls.cert_file": "cert_util/localhost.pem",
		"log.level":            "warn",
	}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:1338" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:1338")
	}
	if cfg.Server.TLS.CertFile != "cert_util/localhost.pem" {
		t.Errorf("Server.TLS.CertFile = %q", cfg.Server.TLS.CertFile)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}
