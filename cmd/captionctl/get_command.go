package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Up14/youtube-video-transcriptor/internal/caption"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	var language string
	var formatNames []string
	var outputDir string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "get <url>",
		Short: "Download captions for a video and convert them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := make([]caption.Format, 0, len(formatNames))
			for _, name := range formatNames {
				format, err := caption.ParseFormat(name)
				if err != nil {
					return err
				}
				formats = append(formats, format)
			}

			if toStdout && len(formats) != 1 {
				return fmt.Errorf("--stdout requires exactly one --format")
			}

			return ctx.withClient(func(client captionClient) error {
				result, err := client.FetchAndConvert(cmd.Context(), args[0], language, formats)
				if err != nil {
					return err
				}

				if toStdout {
					fmt.Fprint(cmd.OutOrStdout(), result.Outputs[formats[0]])
					return nil
				}

				if err := os.MkdirAll(outputDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}

				names := make([]caption.Format, 0, len(result.Outputs))
				for format := range result.Outputs {
					names = append(names, format)
				}
				sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

				for _, format := range names {
					path := filepath.Join(outputDir, fmt.Sprintf("%s.%s", result.VideoID, format))
					if err := os.WriteFile(path, []byte(result.Outputs[format]), 0o644); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Captions: %s (%s), %d cues\n",
					result.Language, result.Origin, result.CueCount)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Caption language (default: auto-detect)")
	cmd.Flags().StringSliceVarP(&formatNames, "format", "f", nil, "Output formats: srt, vtt, txt, json (default: all)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory for output files")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the single requested format to stdout")

	return cmd
}
