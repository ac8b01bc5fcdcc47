package config

import "time"

// Browser engines
const (
	EngineChromedp = "chromedp"
	EngineRod      = "rod"
	EngineHTTP     = "http"
)

const (
	// DefaultWaitTimeout bounds how long a page may take to show the element
	DefaultWaitTimeout = 15 * time.Second

	// DefaultCacheTimeout is how long a scraped value is served from memory
	DefaultCacheTimeout = 3600 * time.Second
)

// Environment variables read by ApplyEnv
const (
	EnvURL                 = "SCRAPER_URL"
	EnvClassSelector       = "SCRAPER_CLASS_SELECTOR"
	EnvWaitTimeoutSeconds  = "SCRAPER_WAIT_TIMEOUT_SECONDS"
	EnvCacheTimeoutSeconds = "SCRAPER_CACHE_TIMEOUT_SECONDS"
	EnvBrowserEngine       = "SCRAPER_BROWSER_ENGINE"
	EnvBrowserPath         = "SCRAPER_BROWSER_PATH"
	EnvProxy               = "SCRAPER_PROXY"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
)

// DefaultUserAgents provides a list of common user agents
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
}
