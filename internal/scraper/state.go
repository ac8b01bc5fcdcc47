package scraper

// State is the lifecycle position of a Scraper
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateFetching
	StateCachedFresh
	StateFetchFailed
	StateParseFailed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateFetching:
		return "fetching"
	case StateCachedFresh:
		return "cached_fresh"
	case StateFetchFailed:
		return "fetch_failed"
	case StateParseFailed:
		return "parse_failed"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Status classifies the outcome of a single lookup
type Status string

const (
	// StatusOK means a value was produced
	StatusOK Status = "ok"
	// StatusNoValue means the element was found but cleanup yielded nothing
	StatusNoValue Status = "no_value"
	// StatusNotFound means the page loaded without the target element
	StatusNotFound Status = "not_found"
	// StatusFetchFailed means the page could not be loaded in time
	StatusFetchFailed Status = "fetch_failed"
	// StatusParseFailed means the page could not be parsed
	StatusParseFailed Status = "parse_failed"
	// StatusTerminated means the scraper was closed
	StatusTerminated Status = "terminated"
)
