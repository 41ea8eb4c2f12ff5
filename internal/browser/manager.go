// Package browser owns the Chrome side of a session: launching or attaching
// to Chrome through Rod, opening the working tab, and exposing it as a
// dom.Document.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

const closeTimeout = 10 * time.Second

// Options configures the manager. Mirrors config.RodConfig.
type Options struct {
	// RemoteURL is the DevTools WebSocket URL of an already running Chrome.
	// Empty = launch a local Chrome.
	RemoteURL string

	ChromePath string
	Headless   bool

	// UserDataDir keeps cookies between runs so a manual login survives.
	UserDataDir string

	Logger *slog.Logger
}

// Manager manages the Chrome lifecycle for one session.
type Manager struct {
	opts    Options
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

func NewManager(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Manager{opts: opts}
}

// Start launches Chrome (or connects to RemoteURL) and returns the Rod
// browser bound to ctx.
func (m *Manager) Start(ctx context.Context) (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("browser: manager is closed")
	}
	if m.browser != nil {
		return m.browser, nil
	}

	log := m.opts.Logger
	wsURL := m.opts.RemoteURL

	if wsURL != "" {
		log.Info("Connecting to remote Chrome", "url", wsURL)
	} else {
		l := launcher.New().
			Context(ctx).
			Headless(m.opts.Headless).
			Set("disable-blink-features", "AutomationControlled")
		if m.opts.ChromePath != "" {
			l = l.Bin(m.opts.ChromePath)
		}
		if m.opts.UserDataDir != "" {
			l = l.UserDataDir(m.opts.UserDataDir)
		}

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		m.lnch = l
		log.Info("Launched local Chrome", "url", wsURL, "headless", m.opts.Headless)
	}

	b := rod.New().Context(ctx).ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		m.cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	m.browser = b

	return b, nil
}

// Close shuts down Chrome. A remote Chrome is only disconnected from.
// A configured UserDataDir is left on disk.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return m.cleanup()
}

func (m *Manager) cleanup() error {
	var err error
	exited := false
	if m.browser != nil {
		if m.lnch != nil {
			// Сессионный ctx к этому моменту обычно уже отменён
			ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			err = m.browser.Context(ctx).Close()
			cancel()
			exited = err == nil
		}
		m.browser = nil
	}
	if m.lnch != nil {
		if !exited {
			m.lnch.Kill()
		}
		// Cleanup removes the user-data dir: only the launcher's own temp
		// profile may go, a configured one holds the login.
		if m.opts.UserDataDir == "" {
			m.lnch.Cleanup()
		}
		m.lnch = nil
	}
	return err
}
