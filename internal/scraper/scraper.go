package scraper

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/williampepple1/index-scraper/internal/cache"
	"github.com/williampepple1/index-scraper/internal/cleanup"
	"github.com/williampepple1/index-scraper/internal/extraction"
	"github.com/williampepple1/index-scraper/internal/fetcher"
	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
	"github.com/williampepple1/index-scraper/pkg/models"
)

// Scraper reads one value from one page, serving it from memory while it is
// fresh. A Scraper is not safe for concurrent use; callers must serialise
// calls to GetValue and Lookup.
type Scraper struct {
	target  Target
	browser fetcher.Browser
	clean   cleanup.Func
	logger  zerolog.Logger
	clock   func() time.Time

	cache cache.Slot
	state State
}

// Option configures a Scraper
type Option func(*Scraper)

// WithCleanup sets the function turning raw text into a value
func WithCleanup(fn cleanup.Func) Option {
	return func(s *Scraper) {
		if fn != nil {
			s.clean = fn
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(clock func() time.Time) Option {
	return func(s *Scraper) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Result is the detailed outcome of a lookup
type Result struct {
	Value      int
	OK         bool
	Raw        string
	Status     Status
	Cached     bool
	CapturedAt time.Time
	Duration   time.Duration
	Err        error
}

// New creates a scraper for target using browser for page rendering
func New(target Target, browser fetcher.Browser, opts ...Option) (*Scraper, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if browser == nil {
		return nil, scrapeerrors.NewConfiguration("browser is required", nil)
	}

	s := &Scraper{
		target:  target,
		browser: browser,
		clean:   cleanup.FirstInteger,
		logger:  zerolog.Nop(),
		clock:   time.Now,
		state:   StateUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("url", target.URL).Str("selector", target.ClassSelector).Logger()
	s.state = StateReady

	return s, nil
}

// Target returns the scrape target
func (s *Scraper) Target() Target {
	return s.target
}

// State returns the lifecycle state after the last call
func (s *Scraper) State() State {
	return s.state
}

// GetValue returns the cleaned value, or false when no value could be
// produced for any reason. Failures are logged, never returned.
func (s *Scraper) GetValue(ctx context.Context) (int, bool) {
	r := s.Lookup(ctx)
	return r.Value, r.OK
}

// Lookup is GetValue with the reason for a missing value attached
func (s *Scraper) Lookup(ctx context.Context) Result {
	if s.state == StateTerminated {
		s.logger.Error().Msg("Scraper is closed")
		return Result{Status: StatusTerminated, Err: stderrors.New("scraper is closed")}
	}

	now := s.clock()
	if s.cache.IsFresh(now, s.target.CacheTimeout) {
		s.state = StateCachedFresh
		raw, _ := s.cache.Raw()
		s.logger.Info().Dur("age", s.cache.Age(now)).Msg("Returning cached value")
		return s.result(raw, true, 0)
	}

	s.state = StateFetching
	start := time.Now()
	raw, err := s.scrape(ctx)
	elapsed := time.Since(start)
	if err != nil {
		status := statusFor(err)
		if status == StatusFetchFailed {
			s.state = StateFetchFailed
		} else {
			s.state = StateParseFailed
		}
		s.logger.Error().Err(err).Str("status", string(status)).Msg("Scraper error")
		return Result{Status: status, Duration: elapsed, Err: err}
	}

	s.cache.Store(raw, now)
	s.state = StateCachedFresh
	return s.result(raw, false, elapsed)
}

// Close terminates the scraper. Later lookups return no value.
func (s *Scraper) Close() error {
	s.state = StateTerminated
	return nil
}

// scrape acquires a session, renders the page and extracts the element text.
// The session is released before scrape returns on every path.
func (s *Scraper) scrape(ctx context.Context) (string, error) {
	s.logger.Info().Msg("Opening browser session")
	session, err := s.browser.Open(ctx)
	if err != nil {
		return "", withTarget(err, s.target, "failed to open browser session")
	}
	s.logger.Debug().Msg("Browser session opened")

	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Failed to close browser session")
			return
		}
		s.logger.Info().Msg("Browser session closed")
	}()

	html, err := session.Render(ctx, s.target.URL, s.target.ClassSelector, s.target.WaitTimeout)
	if err != nil {
		return "", withTarget(err, s.target, "failed to fetch page content")
	}
	if html == "" {
		return "", scrapeerrors.NewFetch(s.target.URL, "browser returned an empty document", nil)
	}

	raw, err := extraction.ExtractText(html, s.target.ClassSelector)
	if err != nil {
		return "", withTarget(err, s.target, "failed to parse HTML content")
	}

	s.logger.Info().Str("raw", raw).Msg("Successfully parsed element value")
	return raw, nil
}

func (s *Scraper) result(raw string, cached bool, elapsed time.Duration) Result {
	capturedAt, _ := s.cache.CapturedAt()
	value, ok := s.clean(raw)

	status := StatusOK
	if !ok {
		value = 0
		status = StatusNoValue
	}
	return Result{
		Value:      value,
		OK:         ok,
		Raw:        raw,
		Status:     status,
		Cached:     cached,
		CapturedAt: capturedAt,
		Duration:   elapsed,
	}
}

func statusFor(err error) Status {
	switch scrapeerrors.KindOf(err) {
	case scrapeerrors.KindNotFound:
		return StatusNotFound
	case scrapeerrors.KindParse:
		return StatusParseFailed
	default:
		return StatusFetchFailed
	}
}

// withTarget makes sure err is a ScrapeError that names the target
func withTarget(err error, target Target, message string) error {
	var se *scrapeerrors.ScrapeError
	if !stderrors.As(err, &se) {
		return scrapeerrors.NewFetch(target.URL, message, err)
	}
	if se.URL == "" {
		se.URL = target.URL
	}
	if se.Kind == scrapeerrors.KindNotFound && se.Selector == "" {
		se.Selector = target.ClassSelector
	}
	return err
}

// Reading converts the result into the output record for target
func (r Result) Reading(target Target, now time.Time) models.Reading {
	reading := models.Reading{
		URL:       target.URL,
		Selector:  target.ClassSelector,
		Raw:       r.Raw,
		Status:    string(r.Status),
		Cached:    r.Cached,
		Duration:  r.Duration,
		Timestamp: now,
	}
	if r.OK {
		value := r.Value
		reading.Value = &value
	}
	if !r.CapturedAt.IsZero() {
		capturedAt := r.CapturedAt
		reading.CapturedAt = &capturedAt
	}
	if r.Err != nil {
		reading.Err = r.Err.Error()
	}
	return reading
}
