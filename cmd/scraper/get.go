package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/williampepple1/index-scraper/internal/io"
)

var errNoValue = errors.New("no value could be read")

func newGetCmd(opts *rootOptions) *cobra.Command {
	target := &targetFlags{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Read the value once",
		Long: `Read the value once and print it. The command exits non-zero when no
value could be produced; the reading is still printed with its status.`,
		Example: `  index-scraper get --site fear-greed
  index-scraper get --url https://example.com/stats --class counter-value -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := target.newPoller(cmd, opts)
			if err != nil {
				return err
			}
			defer p.Scraper.Close()

			w, err := newWriter(cmd, opts)
			if err != nil {
				return err
			}
			defer w.Close()

			reading := p.Read(cmd.Context())
			if err := w.Write(reading); err != nil {
				return err
			}
			if !reading.HasValue() {
				return errNoValue
			}
			return nil
		},
	}

	target.register(cmd)
	return cmd
}

// newWriter writes to the configured file, or to the command's stdout
func newWriter(cmd *cobra.Command, opts *rootOptions) (*io.ResultWriter, error) {
	if opts.cfg.Output.File != "" {
		return io.NewResultWriter(&opts.cfg.Output)
	}
	return io.NewResultWriterTo(&opts.cfg.Output, cmd.OutOrStdout()), nil
}
