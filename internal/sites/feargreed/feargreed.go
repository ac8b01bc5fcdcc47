// Package feargreed reads the Cardano Fear and Greed Index published on
// CFGI.io. The site renders the gauge with ApexCharts, so the value only
// exists after JavaScript has run; the chromedp or rod engines are needed.
//
// Scraping depends on the page keeping its current markup and is subject to
// the site's terms of service. Keep the cache timeout generous.
package feargreed

import (
	"github.com/williampepple1/index-scraper/internal/cleanup"
	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/internal/fetcher"
	"github.com/williampepple1/index-scraper/internal/scraper"
	"github.com/williampepple1/index-scraper/internal/sites"
)

func init() {
	sites.Register(sites.Site{
		Name:          Name,
		Description:   "Cardano Fear and Greed Index (cfgi.io)",
		URL:           URL,
		ClassSelector: ClassSelector,
		New:           New,
		Label:         Sentiment,
	})
}

const (
	// Name is the site key used on the command line
	Name = "fear-greed"

	URL           = "https://cfgi.io/cardano-fear-greed-index/"
	ClassSelector = "apexcharts-datalabel-value"
)

// ExtractNumber reads the index value, which is always within 0-100
var ExtractNumber cleanup.Func = cleanup.InRange(0, 100, cleanup.FirstInteger)

// Target returns the index target using the timeouts from cfg
func Target(cfg *config.ScraperConfig) scraper.Target {
	return scraper.Target{
		URL:           URL,
		ClassSelector: ClassSelector,
		WaitTimeout:   cfg.EffectiveWaitTimeout(),
		CacheTimeout:  cfg.CacheTimeout,
	}
}

// New creates a scraper for the index
func New(cfg *config.ScraperConfig, browser fetcher.Browser, opts ...scraper.Option) (*scraper.Scraper, error) {
	opts = append([]scraper.Option{scraper.WithCleanup(ExtractNumber)}, opts...)
	return scraper.New(Target(cfg), browser, opts...)
}

// Sentiment names the band an index value falls in
func Sentiment(value int) string {
	switch {
	case value < 0 || value > 100:
		return "Unknown"
	case value < 25:
		return "Extreme Fear"
	case value < 45:
		return "Fear"
	case value <= 55:
		return "Neutral"
	case value <= 75:
		return "Greed"
	default:
		return "Extreme Greed"
	}
}
