package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/internal/scraper"
	"github.com/williampepple1/index-scraper/pkg/models"
)

// Poller reads one scraper on a fixed interval. Reads happen one after
// another on the calling goroutine.
type Poller struct {
	Scraper  *scraper.Scraper
	Site     string
	Label    func(int) string
	Interval time.Duration
	// Count is the number of reads; 0 polls until the context is done.
	Count  int
	Logger zerolog.Logger
	Now    func() time.Time
}

// NewPoller creates a poller from the watch configuration
func NewPoller(s *scraper.Scraper, cfg *config.WatchConfig, logger zerolog.Logger) *Poller {
	return &Poller{
		Scraper:  s,
		Interval: cfg.Interval,
		Count:    cfg.Count,
		Logger:   logger,
		Now:      time.Now,
	}
}

// Read performs a single lookup and converts it into a reading
func (p *Poller) Read(ctx context.Context) models.Reading {
	result := p.Scraper.Lookup(ctx)
	reading := result.Reading(p.Scraper.Target(), p.now())
	reading.Site = p.Site
	if reading.HasValue() && p.Label != nil {
		reading.Label = p.Label(*reading.Value)
	}
	return reading
}

// Run reads until Count readings were emitted or ctx is done. It returns the
// first error from emit, or ctx.Err() when cancelled early.
func (p *Poller) Run(ctx context.Context, emit func(models.Reading) error) error {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		reading := p.Read(ctx)
		p.Logger.Debug().
			Int("round", n).
			Str("status", reading.Status).
			Bool("cached", reading.Cached).
			Msg("Poll completed")

		if err := emit(reading); err != nil {
			return err
		}
		if p.Count > 0 && n >= p.Count {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poller) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
