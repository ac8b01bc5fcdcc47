package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/internal/proxy"
	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
)

// Browser hands out fresh sessions. Every session returned by Open must be
// closed by the caller.
type Browser interface {
	Open(ctx context.Context) (Session, error)
}

// Session renders pages until it is closed
type Session interface {
	// Render navigates to url, waits up to wait for an element carrying
	// classSelector and returns the serialised HTML of the page.
	Render(ctx context.Context, url, classSelector string, wait time.Duration) (string, error)
	// Close releases the browser process or connections behind the session.
	Close() error
}

// New creates a browser for the configured engine
func New(cfg *config.AppConfig) (Browser, error) {
	proxies := proxy.NewManager(&cfg.Proxies)

	switch cfg.Browser.Engine {
	case config.EngineChromedp, "":
		return NewChromedpBrowser(&cfg.Browser, proxies), nil
	case config.EngineRod:
		return NewRodBrowser(&cfg.Browser, proxies), nil
	case config.EngineHTTP:
		return NewHTTPBrowser(&cfg.Scraper, proxies), nil
	default:
		return nil, scrapeerrors.NewConfiguration(fmt.Sprintf("unknown browser engine %q", cfg.Browser.Engine), nil)
	}
}

func fetchError(url, message string, err error) error {
	if scrapeerrors.KindOf(err) != "" {
		return err
	}
	return scrapeerrors.NewFetch(url, message, err)
}
