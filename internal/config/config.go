package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
)

// AppConfig holds the complete application configuration
type AppConfig struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Browser BrowserConfig `yaml:"browser"`
	Proxies ProxyConfig   `yaml:"proxies"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ScraperConfig describes the page, the element and the timeouts
type ScraperConfig struct {
	URL           string        `yaml:"url"`
	ClassSelector string        `yaml:"class_selector"`
	WaitTimeout   time.Duration `yaml:"wait_timeout"`
	CacheTimeout  time.Duration `yaml:"cache_timeout"`
	UserAgents    []string      `yaml:"user_agents,omitempty"`
}

// BrowserConfig holds the browser configuration for JavaScript rendering
type BrowserConfig struct {
	Engine        string `yaml:"engine"`
	Headless      bool   `yaml:"headless"`
	UserAgent     string `yaml:"user_agent"`
	ExecPath      string `yaml:"exec_path"`
	NoSandbox     bool   `yaml:"no_sandbox"`
	DisableDevShm bool   `yaml:"disable_dev_shm"`
}

// ProxyConfig holds the proxy configuration
type ProxyConfig struct {
	Enabled bool     `yaml:"enabled"`
	Rotate  bool     `yaml:"rotate"`
	List    []string `yaml:"list"`
	Auth    struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
}

// OutputConfig holds the output configuration
type OutputConfig struct {
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}

// LoggingConfig holds the logger configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WatchConfig controls repeated sequential reads
type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
	Count    int           `yaml:"count"`
}

// Load loads the configuration from a YAML file on top of the defaults
func Load(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, scrapeerrors.NewConfiguration(fmt.Sprintf("failed to read %s", filename), err)
	}

	config := CreateDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, scrapeerrors.NewConfiguration(fmt.Sprintf("failed to decode %s", filename), err)
	}

	// Set default user agents if none provided
	if len(config.Scraper.UserAgents) == 0 {
		config.Scraper.UserAgents = DefaultUserAgents
	}

	return config, nil
}

// CreateDefault creates a default configuration
func CreateDefault() *AppConfig {
	return &AppConfig{
		Scraper: ScraperConfig{
			WaitTimeout:  DefaultWaitTimeout,
			CacheTimeout: DefaultCacheTimeout,
			UserAgents:   DefaultUserAgents,
		},
		Browser: BrowserConfig{
			Engine:        EngineChromedp,
			Headless:      true,
			UserAgent:     DefaultUserAgents[0],
			NoSandbox:     true,
			DisableDevShm: true,
		},
		Proxies: ProxyConfig{
			Rotate: true,
			List:   []string{},
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{
			Interval: time.Minute,
			Count:    0,
		},
	}
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are not an error.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return scrapeerrors.NewConfiguration(fmt.Sprintf("failed to load %s", name), err)
		}
	}
	return nil
}

// ApplyEnv overrides configuration values from environment variables
func (c *AppConfig) ApplyEnv() error {
	if v := os.Getenv(EnvURL); v != "" {
		c.Scraper.URL = v
	}
	if v := os.Getenv(EnvClassSelector); v != "" {
		c.Scraper.ClassSelector = v
	}
	if v, ok, err := getEnvSeconds(EnvWaitTimeoutSeconds); err != nil {
		return err
	} else if ok {
		c.Scraper.WaitTimeout = v
	}
	if v, ok, err := getEnvSeconds(EnvCacheTimeoutSeconds); err != nil {
		return err
	} else if ok {
		c.Scraper.CacheTimeout = v
	}
	if v := os.Getenv(EnvBrowserEngine); v != "" {
		c.Browser.Engine = strings.ToLower(v)
	}
	if v := os.Getenv(EnvBrowserPath); v != "" {
		c.Browser.ExecPath = v
	}
	if v := os.Getenv(EnvProxy); v != "" {
		c.Proxies.Enabled = true
		c.Proxies.List = []string{v}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Validate checks the configuration for values the scraper cannot run with
func (c *AppConfig) Validate() error {
	switch c.Browser.Engine {
	case EngineChromedp, EngineRod, EngineHTTP:
	default:
		return scrapeerrors.NewConfiguration(fmt.Sprintf("unknown browser engine %q", c.Browser.Engine), nil)
	}
	if c.Scraper.WaitTimeout < 0 {
		return scrapeerrors.NewConfiguration("wait_timeout must not be negative", nil)
	}
	if c.Scraper.CacheTimeout < 0 {
		return scrapeerrors.NewConfiguration("cache_timeout must not be negative", nil)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return scrapeerrors.NewConfiguration(fmt.Sprintf("unsupported output format %q", c.Output.Format), nil)
	}
	if c.Watch.Interval <= 0 {
		return scrapeerrors.NewConfiguration("watch interval must be positive", nil)
	}
	if c.Watch.Count < 0 {
		return scrapeerrors.NewConfiguration("watch count must not be negative", nil)
	}
	return nil
}

// EffectiveWaitTimeout returns the wait timeout, using the default for zero
func (c *ScraperConfig) EffectiveWaitTimeout() time.Duration {
	if c.WaitTimeout <= 0 {
		return DefaultWaitTimeout
	}
	return c.WaitTimeout
}

func getEnvSeconds(key string) (time.Duration, bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false, nil
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || seconds < 0 {
		return 0, false, scrapeerrors.NewConfiguration(fmt.Sprintf("%s must be a non-negative integer, got %q", key, v), err)
	}
	return time.Duration(seconds) * time.Second, true, nil
}
