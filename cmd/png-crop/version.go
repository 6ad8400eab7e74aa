package main

import (
	"fmt"
	"time"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "png-crop %s\n", versioninfo.Version)
			fmt.Fprintf(out, "  Git commit: %s\n", versioninfo.Revision)
			if !versioninfo.LastCommit.IsZero() {
				fmt.Fprintf(out, "  Commit time: %s\n", versioninfo.LastCommit.Format(time.RFC3339))
			}
			if versioninfo.DirtyBuild {
				fmt.Fprintln(out, "  Modified: true")
			}
		},
	}
}
