package main

import (
	"fmt"

	"github.com/okian/skillswap/internal/adapters/dataset"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dataset.yaml]",
		Short: "Check a dataset file; the built-in seed is checked when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			cat, err := dataset.New().Load(cmd.Context(), path)
			if err != nil {
				return err
			}
			name := path
			if name == "" {
				name = "built-in seed"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d users, %d skills, %d swaps, %d notifications, %d conversations, %d reviews)\n",
				name, len(cat.Users), len(cat.Skills), len(cat.Swaps), len(cat.Notifications), len(cat.Conversations), len(cat.Reviews))
			return err
		},
	}
}
