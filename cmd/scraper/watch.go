package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/williampepple1/index-scraper/pkg/models"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	target := &targetFlags{}
	var (
		interval time.Duration
		count    int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Read the value repeatedly",
		Long: `Read the value on a fixed interval until interrupted or until --count
readings were written. Reads inside the cache timeout are served from memory.`,
		Example: `  index-scraper watch --site fear-greed --interval 10m
  index-scraper watch --url https://example.com/stats --class counter-value --count 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("interval") {
				opts.cfg.Watch.Interval = interval
			}
			if cmd.Flags().Changed("count") {
				opts.cfg.Watch.Count = count
			}

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

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts.logger.Info().
				Dur("interval", p.Interval).
				Int("count", p.Count).
				Msg("Watching")

			err = p.Run(ctx, func(r models.Reading) error { return w.Write(r) })
			if errors.Is(err, context.Canceled) {
				opts.logger.Info().Msg("Stopped")
				return nil
			}
			return err
		},
	}

	target.register(cmd)
	cmd.Flags().DurationVarP(&interval, "interval", "i", time.Minute, "Time between reads")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of readings to take (0 = until interrupted)")
	return cmd
}
