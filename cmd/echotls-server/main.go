// Package main provides the entry point for echotls-server.
//
// echotls-server terminates TLS on a single port and answers a fixed set
// of HTTP/1.1 routes over it.
//
// @design DS-0501
package main

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/echotls-go/internal/infra/buildinfo"
	"github.com/yndnr/echotls-go/internal/infra/confloader"
	"github.com/yndnr/echotls-go/internal/infra/tlscreds"
	"github.com/yndnr/echotls-go/internal/server/config"
	"github.com/yndnr/echotls-go/internal/server/echoserver"
	"github.com/yndnr/echotls-go/internal/telemetry/logger"
	"github.com/yndnr/echotls-go/internal/telemetry/metric"
)

// configEnvVar names an optional YAML config file. Everything beyond the
// listening port is configured through it or ECHOTLS_* variables, the
// command line carries the port alone.
const configEnvVar = "ECHOTLS_CONFIG"

func main() {
	app := &cli.App{
		Name:            "echotls-server",
		Usage:           "TLS-terminating HTTP echo server",
		ArgsUsage:       "[port]",
		Version:         buildinfo.String(),
		HideHelpCommand: true,
		Action:          run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("expected at most one argument, got %d", c.NArg())
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port := c.Args().First(); port != "" {
		if err := cfg.SetPort(port); err != nil {
			return err
		}
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	slogger := logger.Slog(log)

	tlsConfig, cleanup, err := buildTLSConfig(cfg, slogger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := echoserver.New(&echoserver.Config{
		Addr:      cfg.Server.Addr,
		TLSConfig: tlsConfig,
	}, slogger)

	if cfg.Metrics.Addr != "" {
		go func() {
			slogger.Info("metrics listening", "addr", cfg.Metrics.Addr)
			if err := metric.Serve(cfg.Metrics.Addr, srv); err != nil {
				slogger.Error("metrics server", "error", err)
			}
		}()
	}

	log.Info("starting to serve",
		"addr", "https://"+cfg.Server.Addr,
		"version", buildinfo.Get().Version)

	return srv.ListenAndServe()
}

// loadConfig assembles the effective configuration: defaults, then the
// optional file named by ECHOTLS_CONFIG, then ECHOTLS_* variables.
func loadConfig() (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if path := os.Getenv(configEnvVar); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildTLSConfig loads the server credentials, either once or behind a
// reloading watcher. The returned cleanup stops the watcher.
func buildTLSConfig(cfg *config.ServerConfig, log *slog.Logger) (*tls.Config, func(), error) {
	if cfg.Server.TLS.Reload {
		w, err := tlscreds.NewWatcher(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile,
			tlscreds.WithLogger(log))
		if err != nil {
			return nil, nil, err
		}
		w.StartAsync()
		return w.ServerConfig(), w.Stop, nil
	}

	cert, err := tlscreds.LoadKeyPair(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
	if err != nil {
		return nil, nil, err
	}
	return tlscreds.ServerConfig(cert), func() {}, nil
}
