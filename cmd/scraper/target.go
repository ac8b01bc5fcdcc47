package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/williampepple1/index-scraper/internal/fetcher"
	"github.com/williampepple1/index-scraper/internal/logging"
	"github.com/williampepple1/index-scraper/internal/scraper"
	"github.com/williampepple1/index-scraper/internal/sites"
	"github.com/williampepple1/index-scraper/internal/worker"
)

// targetFlags selects what get and watch read
type targetFlags struct {
	site         string
	url          string
	class        string
	waitTimeout  time.Duration
	cacheTimeout time.Duration
}

func (t *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&t.site, "site", "s", "", "Built-in site to read (see 'sites')")
	cmd.Flags().StringVarP(&t.url, "url", "u", "", "Page URL")
	cmd.Flags().StringVar(&t.class, "class", "", "CSS class of the element holding the number")
	cmd.Flags().DurationVar(&t.waitTimeout, "wait-timeout", 0, "How long to wait for the element (default 15s)")
	cmd.Flags().DurationVar(&t.cacheTimeout, "cache-timeout", 0, "How long a value is served from memory (default 1h)")
	cmd.MarkFlagsMutuallyExclusive("site", "url")
	cmd.MarkFlagsMutuallyExclusive("site", "class")
}

// newPoller builds the scraper for the selected target and wraps it in a
// poller. The caller must close the returned scraper.
func (t *targetFlags) newPoller(cmd *cobra.Command, opts *rootOptions) (*worker.Poller, error) {
	cfg := opts.cfg
	if cmd.Flags().Changed("url") {
		cfg.Scraper.URL = t.url
	}
	if cmd.Flags().Changed("class") {
		cfg.Scraper.ClassSelector = t.class
	}
	if cmd.Flags().Changed("wait-timeout") {
		cfg.Scraper.WaitTimeout = t.waitTimeout
	}
	if cmd.Flags().Changed("cache-timeout") {
		cfg.Scraper.CacheTimeout = t.cacheTimeout
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	browser, err := fetcher.New(cfg)
	if err != nil {
		return nil, err
	}
	logger := logging.For(opts.logger, "scraper")

	var (
		s    *scraper.Scraper
		site sites.Site
	)
	if t.site != "" {
		var ok bool
		site, ok = sites.Get(t.site)
		if !ok {
			return nil, fmt.Errorf("unknown site: %s", t.site)
		}
		s, err = site.New(&cfg.Scraper, browser, scraper.WithLogger(logger))
	} else {
		s, err = scraper.New(scraper.TargetFromConfig(&cfg.Scraper), browser, scraper.WithLogger(logger))
	}
	if err != nil {
		return nil, err
	}

	p := worker.NewPoller(s, &cfg.Watch, logging.For(opts.logger, "watch"))
	p.Site = site.Name
	p.Label = site.Label
	return p, nil
}
