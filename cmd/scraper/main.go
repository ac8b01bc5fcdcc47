package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/internal/logging"
	_ "github.com/williampepple1/index-scraper/internal/sites/feargreed"
)

var version = "dev"

// rootOptions carries the persistent flags and what PersistentPreRunE
// builds from them.
type rootOptions struct {
	configFile string
	envFile    string
	engine     string
	logLevel   string
	logFormat  string
	format     string
	output     string

	cfg    *config.AppConfig
	logger zerolog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "index-scraper",
		Short:   "Read a single number from a JavaScript-rendered web page",
		Version: version,
		Long: `index-scraper renders a page in a headless browser, waits for an element
carrying a CSS class, and reads the first integer from its text. Values are
kept in memory for the cache timeout, so repeated reads within a run do not
reload the page.`,
		Example: `  # Read the Cardano Fear and Greed Index
  index-scraper get --site fear-greed

  # Read any element by class
  index-scraper get --url https://example.com/stats --class counter-value

  # Poll every 5 minutes and append JSON lines to a file
  index-scraper watch --site fear-greed --interval 5m -f json -o readings.jsonl`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to configuration file (YAML)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	flags.StringVarP(&opts.engine, "engine", "e", "", "Browser engine (chromedp, rod, http)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (console, json)")
	flags.StringVarP(&opts.format, "format", "f", "", "Output format (text, json, yaml)")
	flags.StringVarP(&opts.output, "output", "o", "", "Append readings to this file instead of stdout")

	cmd.AddCommand(newGetCmd(opts), newWatchCmd(opts), newSitesCmd())
	return cmd
}

// setup loads configuration in order: defaults, YAML file, .env and the
// environment, then command line flags.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return err
	}

	cfg := config.CreateDefault()
	if o.configFile != "" {
		loaded, err := config.Load(o.configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	if o.engine != "" {
		cfg.Browser.Engine = o.engine
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.output != "" {
		cfg.Output.File = o.output
	}

	o.cfg = cfg
	o.logger = logging.NewWithWriter(cfg.Logging, cmd.ErrOrStderr())
	if o.configFile != "" {
		o.logger.Debug().Str("file", o.configFile).Msg("Loaded configuration")
	}
	return nil
}

func (o *rootOptions) validate() error {
	if err := o.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
