package main

import (
	"fmt"

	"github.com/okian/skillswap/internal/loadgen"
	"github.com/spf13/cobra"
)

func newLoadgenCmd() *cobra.Command {
	cfg := loadgen.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "loadgen",
		Short: "Submit simulated actions to a running service and verify delivery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := loadgen.Run(cmd.Context(), cfg)
			if stats != nil {
				fmt.Fprintf(cmd.OutOrStdout(),
					"submitted %d: accepted %d, duplicate %d, backpressure %d, failed %d; delivered %d in %s\n",
					stats.Submitted, stats.Accepted, stats.Duplicate, stats.Backpressure, stats.Failed,
					stats.Delivered, stats.Duration)
			}
			return err
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the service")
	fl.IntVar(&cfg.NumActions, "actions", cfg.NumActions, "number of actions to submit")
	fl.Float64Var(&cfg.Duplicates, "duplicates", cfg.Duplicates, "share of actions that resend an earlier ID")
	fl.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent submitters")
	fl.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	fl.DurationVar(&cfg.Wait, "wait", cfg.Wait, "how long to wait for notices")
	fl.Uint64Var(&cfg.Seed, "seed", 0, "generator seed; 0 picks one")
	fl.BoolVar(&cfg.Verbose, "verbose", false, "log each failed submission")
	return cmd
}
