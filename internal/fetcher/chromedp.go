package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/internal/extraction"
	"github.com/williampepple1/index-scraper/internal/proxy"
	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
)

// ChromedpBrowser launches headless Chrome through chromedp
type ChromedpBrowser struct {
	Config *config.BrowserConfig
	Proxy  *proxy.Manager
}

// NewChromedpBrowser creates a new chromedp-backed browser
func NewChromedpBrowser(config *config.BrowserConfig, proxies *proxy.Manager) *ChromedpBrowser {
	return &ChromedpBrowser{
		Config: config,
		Proxy:  proxies,
	}
}

// allocatorOptions builds the exec allocator flags for one launch
func (b *ChromedpBrowser) allocatorOptions() ([]chromedp.ExecAllocatorOption, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.Config.Headless),
	)
	if b.Config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.Config.UserAgent))
	}
	if b.Config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if b.Config.DisableDevShm {
		opts = append(opts, chromedp.Flag("disable-dev-shm-usage", true))
	}
	if b.Config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.Config.ExecPath))
	}

	server, err := b.Proxy.ServerAddress()
	if err != nil {
		return nil, err
	}
	if server != "" {
		opts = append(opts, chromedp.ProxyServer(server))
	}
	return opts, nil
}

// Open starts a Chrome process and returns a session bound to it
func (b *ChromedpBrowser) Open(ctx context.Context) (Session, error) {
	opts, err := b.allocatorOptions()
	if err != nil {
		return nil, err
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// An empty run launches the browser so later timeouts only bound actions.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, scrapeerrors.NewFetch("", "failed to start chrome", err)
	}

	return &chromedpSession{
		ctx:         browserCtx,
		cancel:      browserCancel,
		allocCancel: allocCancel,
	}, nil
}

type chromedpSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	closed      bool
}

func (s *chromedpSession) Render(ctx context.Context, url, classSelector string, wait time.Duration) (string, error) {
	if s.closed {
		return "", scrapeerrors.NewFetch(url, "browser session already closed", nil)
	}

	runCtx, cancel := context.WithTimeout(s.ctx, wait)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(extraction.ClassQuery(classSelector), chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return "", fetchError(url, fmt.Sprintf("timed out after %s waiting for .%s", wait, classSelector), err)
		}
		return "", fetchError(url, "failed to fetch page content", err)
	}

	return html, nil
}

func (s *chromedpSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := chromedp.Cancel(s.ctx)
	s.cancel()
	s.allocCancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
