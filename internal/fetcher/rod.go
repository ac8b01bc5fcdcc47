package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/internal/extraction"
	"github.com/williampepple1/index-scraper/internal/proxy"
	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
)

// RodBrowser launches Chrome through go-rod
type RodBrowser struct {
	Config *config.BrowserConfig
	Proxy  *proxy.Manager
}

// NewRodBrowser creates a new rod-backed browser
func NewRodBrowser(config *config.BrowserConfig, proxies *proxy.Manager) *RodBrowser {
	return &RodBrowser{
		Config: config,
		Proxy:  proxies,
	}
}

func (b *RodBrowser) launcher(ctx context.Context) (*launcher.Launcher, error) {
	l := launcher.New().Context(ctx).Headless(b.Config.Headless).NoSandbox(b.Config.NoSandbox)

	if b.Config.DisableDevShm {
		l = l.Set("disable-dev-shm-usage")
	}
	if b.Config.ExecPath != "" {
		l = l.Bin(b.Config.ExecPath)
	}

	server, err := b.Proxy.ServerAddress()
	if err != nil {
		return nil, err
	}
	if server != "" {
		l = l.Proxy(server)
	}
	return l, nil
}

// Open launches Chrome and connects to it
func (b *RodBrowser) Open(ctx context.Context) (Session, error) {
	l, err := b.launcher(ctx)
	if err != nil {
		return nil, err
	}

	controlURL, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, scrapeerrors.NewFetch("", "failed to launch chrome", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, scrapeerrors.NewFetch("", "failed to connect to chrome", err)
	}

	return &rodSession{
		browser:   browser,
		launcher:  l,
		userAgent: b.Config.UserAgent,
	}, nil
}

type rodSession struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	userAgent string
	closed    bool
}

func (s *rodSession) Render(ctx context.Context, url, classSelector string, wait time.Duration) (string, error) {
	if s.closed {
		return "", scrapeerrors.NewFetch(url, "browser session already closed", nil)
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fetchError(url, "failed to create page", err)
	}
	defer page.Close()

	if s.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: s.userAgent}); err != nil {
			return "", fetchError(url, "failed to set user agent", err)
		}
	}

	p := page.Context(ctx).Timeout(wait)
	if err := p.Navigate(url); err != nil {
		return "", rodError(url, classSelector, wait, err)
	}
	if _, err := p.Element(extraction.ClassQuery(classSelector)); err != nil {
		return "", rodError(url, classSelector, wait, err)
	}

	html, err := p.HTML()
	if err != nil {
		return "", rodError(url, classSelector, wait, err)
	}
	return html, nil
}

func (s *rodSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

func rodError(url, classSelector string, wait time.Duration, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fetchError(url, fmt.Sprintf("timed out after %s waiting for .%s", wait, classSelector), err)
	}
	return fetchError(url, "failed to fetch page content", err)
}
