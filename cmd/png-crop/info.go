package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ironsheep/png-crop/internal/imaging"
)

func newInfoCmd(_ *app) *cobra.Command {
	var asJSON bool

	infoCmd := &cobra.Command{
		Use:   "info <file> [--json]",
		Short: "Show PNG dimensions, colour model and transparency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			info, err := imaging.InspectPNG(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "File:\t%s\n", args[0])
			fmt.Fprintf(w, "Dimensions:\t%dx%d\n", info.Width, info.Height)
			fmt.Fprintf(w, "Color:\t%s, %s\n", info.ColorModel, info.ColorDepth)
			fmt.Fprintf(w, "Alpha:\t%t\n", info.HasAlpha)
			fmt.Fprintf(w, "Size:\t%d bytes\n", info.FileSizeBytes)
			return w.Flush()
		},
	}

	infoCmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return infoCmd
}
