package sites

import (
	"sort"
	"strings"

	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/internal/fetcher"
	"github.com/williampepple1/index-scraper/internal/scraper"
)

// Site is a preset scrape target with its own cleanup
type Site struct {
	Name          string
	Description   string
	URL           string
	ClassSelector string
	New           func(cfg *config.ScraperConfig, browser fetcher.Browser, opts ...scraper.Option) (*scraper.Scraper, error)
	// Label optionally describes a value, e.g. a sentiment band
	Label func(value int) string
}

var registry = map[string]Site{}

// Register adds a site, replacing any site with the same name
func Register(s Site) {
	registry[strings.ToLower(s.Name)] = s
}

// Get looks a site up by name, case-insensitively
func Get(name string) (Site, bool) {
	s, ok := registry[strings.ToLower(name)]
	return s, ok
}

// All returns the registered sites sorted by name
func All() []Site {
	all := make([]Site, 0, len(registry))
	for _, s := range registry {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}
