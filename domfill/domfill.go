// Package domfill drives the fill engine against a live browser page.
//
// It manages a Chrome instance through Rod (launched locally or attached
// via a remote WebSocket URL), opens pages with stealth applied, discovers
// the fillable controls, and adapts them to the fill engine's contracts.
// Writes go through the page's JavaScript context so framework listeners
// observe them the same way they observe typing.
package domfill

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// Config configures the browser handle.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string `yaml:"remote_url"`

	// Headful runs Chrome with a visible window. Default: headless.
	Headful bool `yaml:"headful"`

	// NavigateTimeout bounds navigation plus load wait. Default: 30s.
	NavigateTimeout time.Duration `yaml:"navigate_timeout"`

	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.NavigateTimeout <= 0 {
		c.NavigateTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Browser owns one Chrome connection. Pages opened from it share the
// process; Close tears everything down.
type Browser struct {
	cfg Config

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewBrowser creates a Browser. Call Connect before opening pages.
func NewBrowser(cfg Config) *Browser {
	cfg.defaults()
	return &Browser{cfg: cfg}
}

// Connect launches Chrome (or attaches to a remote instance).
func (b *Browser) Connect() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("domfill: browser is closed")
	}
	if b.browser != nil {
		return nil
	}

	wsURL := b.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().
			Headless(!b.cfg.Headful).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("domfill: launch: %w", err)
		}
		wsURL = u
		b.lnch = l
		b.cfg.Logger.Info("domfill: launched local chrome", "url", wsURL, "headful", b.cfg.Headful)
	} else {
		b.cfg.Logger.Info("domfill: connecting to remote chrome", "url", wsURL)
	}

	br := rod.New().ControlURL(wsURL)
	if err := br.Connect(); err != nil {
		return fmt.Errorf("domfill: connect: %w", err)
	}
	if err := br.IgnoreCertErrors(true); err != nil {
		b.cfg.Logger.Warn("domfill: ignore cert errors failed", "error", err)
	}

	b.browser = br
	return nil
}

// Open creates a stealth page, navigates to pageURL, waits for load, and
// discovers the fillable controls. The returned Page implements the fill
// engine's Walker contract.
func (b *Browser) Open(ctx context.Context, pageURL string) (*Page, error) {
	b.mu.Lock()
	br := b.browser
	b.mu.Unlock()
	if br == nil {
		return nil, fmt.Errorf("domfill: not connected")
	}

	page, err := stealth.Page(br)
	if err != nil {
		return nil, fmt.Errorf("domfill: create page: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, b.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()
		return nil, fmt.Errorf("domfill: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		b.cfg.Logger.Warn("domfill: wait load timeout", "url", pageURL, "error", err)
	}

	p := &Page{page: page, logger: b.cfg.Logger}
	if err := p.Discover(ctx); err != nil {
		page.Close()
		return nil, err
	}
	return p, nil
}

// Close shuts down Chrome.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.browser != nil {
		b.browser.Close()
		b.browser = nil
	}
	if b.lnch != nil {
		b.lnch.Cleanup()
		b.lnch = nil
	}
	return nil
}
