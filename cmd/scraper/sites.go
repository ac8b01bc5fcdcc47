package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/williampepple1/index-scraper/internal/sites"
)

func newSitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List built-in sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, s := range sites.All() {
				fmt.Fprintf(out, "%-12s %s\n", s.Name, s.Description)
				fmt.Fprintf(out, "%-12s %s (.%s)\n", "", s.URL, s.ClassSelector)
			}
			return nil
		},
	}
}
