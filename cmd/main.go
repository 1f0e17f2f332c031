// Command skillswap serves and queries the skill-exchange catalogue.
package main

import (
	"os"

	"github.com/okian/skillswap/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root without a subcommand
// starts the HTTP service.
func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "skillswap",
		Short:        "SkillSwap catalogue service and tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(); err != nil {
				return err
			}
			// serve applies the configured level itself; the one-shot tools
			// stay quiet unless asked.
			if logLevel == "" && cmd.Name() != "serve" && cmd.Name() != "skillswap" {
				logLevel = "warn"
			}
			if logLevel != "" {
				return logger.SetLevelString(logLevel)
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")

	serve := newServeCmd(&logLevel)
	root.RunE = serve.RunE
	root.AddCommand(serve, newSearchCmd(), newValidateCmd(), newSeedCmd(), newLoadgenCmd())
	return root
}
