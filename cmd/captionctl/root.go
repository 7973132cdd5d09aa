package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "captionctl",
		Short:         "Fetch and convert YouTube caption tracks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newGetCommand(ctx))
	rootCmd.AddCommand(newLanguagesCommand(ctx))

	return rootCmd
}
