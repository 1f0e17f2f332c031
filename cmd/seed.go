package main

import (
	"fmt"
	"os"

	"github.com/okian/skillswap/internal/adapters/dataset"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Print the built-in dataset, a starting point for custom datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := dataset.Seed()
			if out == "" {
				_, err := cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(out, doc, 0o600); err != nil {
				return fmt.Errorf("write seed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
