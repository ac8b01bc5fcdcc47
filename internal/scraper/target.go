package scraper

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/williampepple1/index-scraper/internal/config"
	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
)

// Target is the immutable description of what to scrape
type Target struct {
	URL           string
	ClassSelector string
	WaitTimeout   time.Duration
	CacheTimeout  time.Duration
}

// TargetFromConfig builds a target from the scraper configuration
func TargetFromConfig(cfg *config.ScraperConfig) Target {
	return Target{
		URL:           cfg.URL,
		ClassSelector: cfg.ClassSelector,
		WaitTimeout:   cfg.EffectiveWaitTimeout(),
		CacheTimeout:  cfg.CacheTimeout,
	}
}

// Validate reports whether the target can be scraped
func (t Target) Validate() error {
	if t.URL == "" {
		return scrapeerrors.NewConfiguration("target URL is required", nil)
	}
	u, err := url.Parse(t.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return scrapeerrors.NewConfiguration(fmt.Sprintf("target URL %q is not absolute", t.URL), err)
	}
	if t.ClassSelector == "" {
		return scrapeerrors.NewConfiguration("class selector is required", nil)
	}
	if strings.ContainsAny(t.ClassSelector, " \t\r\n\f") {
		return scrapeerrors.NewConfiguration(fmt.Sprintf("class selector %q must be a single class name", t.ClassSelector), nil)
	}
	if t.WaitTimeout <= 0 {
		return scrapeerrors.NewConfiguration("wait timeout must be positive", nil)
	}
	if t.CacheTimeout < 0 {
		return scrapeerrors.NewConfiguration("cache timeout must not be negative", nil)
	}
	return nil
}
