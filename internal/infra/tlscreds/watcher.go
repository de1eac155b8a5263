// Package tlscreds provides TLS server credential management.
package tlscreds

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches certificate files and reloads on changes.
type Watcher struct {
	certFile string
	keyFile  string
	cert     *tls.Certificate
	mu       sync.RWMutex
	done     chan struct{}
	stopOnce sync.Once
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// Debounce settings to avoid multiple reloads
	debounce    time.Duration
	reloadTimer *time.Timer
	reloadMu    sync.Mutex
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the logger for the watcher.
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounce sets the debounce duration.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a new certificate watcher.
func NewWatcher(certFile, keyFile string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		certFile: certFile,
		keyFile:  keyFile,
		done:     make(chan struct{}),
		logger:   slog.Default(),
		debounce: 500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(w)
	}

	// Load initial certificate
	if err := w.reload(); err != nil {
		return nil, err
	}

	return w, nil
}

// Start starts watching for certificate changes.
// This function blocks until Stop() is called.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("tlscreds: create watcher: %w", err)
	}
	w.watcher = watcher

	// Watch the directories containing the cert and key files.
	// This handles vim-style renames better.
	certDir := filepath.Dir(w.certFile)
	keyDir := filepath.Dir(w.keyFile)

	if err := watcher.Add(certDir); err != nil {
		w.watcher.Close()
		return fmt.Errorf("tlscreds: watch cert dir %s: %w", certDir, err)
	}

	if keyDir != certDir {
		if err := watcher.Add(keyDir); err != nil {
			w.watcher.Close()
			return fmt.Errorf("tlscreds: watch key dir %s: %w", keyDir, err)
		}
	}

	w.logger.Info("certificate watcher started",
		"cert_file", w.certFile,
		"key_file", w.keyFile,
	)

	certBase := filepath.Base(w.certFile)
	keyBase := filepath.Base(w.keyFile)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			changedBase := filepath.Base(event.Name)
			if changedBase != certBase && changedBase != keyBase {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			w.logger.Debug("certificate file changed",
				"file", event.Name,
				"op", event.Op.String(),
			)

			w.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("certificate watcher error",
				"error", err,
				"cert_file", w.certFile,
			)

		case <-w.done:
			return watcher.Close()
		}
	}
}

// StartAsync starts watching in a goroutine.
func (w *Watcher) StartAsync() {
	go func() {
		if err := w.Start(); err != nil {
			w.logger.Error("certificate watcher stopped with error",
				"error", err,
			)
		}
	}()
}

// Stop stops watching. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.reloadMu.Lock()
		if w.reloadTimer != nil {
			w.reloadTimer.Stop()
		}
		w.reloadMu.Unlock()
	})
}

// GetCertificate returns the current certificate.
// This implements tls.Config.GetCertificate.
func (w *Watcher) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cert, nil
}

// ServerConfig builds a server TLS configuration that resolves the
// certificate through this watcher on every handshake.
func (w *Watcher) ServerConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: w.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}
}

// scheduleReload arms the debounce timer, replacing any pending one, so
// the reload runs once after the last change in a burst. Waiting out the
// burst also keeps a rewritten cert/key pair from being loaded half-old.
func (w *Watcher) scheduleReload() {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	if w.reloadTimer != nil {
		w.reloadTimer.Stop()
	}
	w.reloadTimer = time.AfterFunc(w.debounce, func() {
		if err := w.reload(); err != nil {
			w.logger.Error("certificate reload failed",
				"error", err,
				"cert_file", w.certFile,
				"key_file", w.keyFile,
			)
		}
	})
}

func (w *Watcher) reload() error {
	cert, err := LoadKeyPair(w.certFile, w.keyFile)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.cert = &cert
	w.mu.Unlock()

	w.logger.Info("certificate loaded",
		"cert_file", w.certFile,
	)

	return nil
}
