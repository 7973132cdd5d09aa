package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages <url>",
		Short: "List caption languages available for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client captionClient) error {
				catalog, err := client.AvailableLanguages(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if len(catalog) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No captions available")
					return nil
				}

				rows := make([][]string, 0, len(catalog))
				for _, entry := range catalog {
					rows = append(rows, []string{
						entry.Language,
						yesNo(entry.HasManual),
						yesNo(entry.HasAuto),
					})
				}

				fmt.Fprintln(cmd.OutOrStdout(),
					renderTable([]string{"Language", "Manual", "Auto-generated"}, rows))
				return nil
			})
		},
	}

	return cmd
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
