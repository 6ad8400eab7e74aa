package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/png-crop/internal/imaging"
)

// errMismatch is returned when a cropped file differs from its source region.
var errMismatch = errors.New("cropped image does not match the source region")

func newVerifyCmd(a *app) *cobra.Command {
	var (
		rect   string
		asJSON bool
	)

	verifyCmd := &cobra.Command{
		Use:   "verify <original> <cropped> --rect x,y,w,h",
		Short: "Check that a cropped PNG holds exactly the source region's pixels",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRect(rect)
			if err != nil {
				return err
			}
			original, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read original: %w", err)
			}
			cropped, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read cropped: %w", err)
			}

			result, err := imaging.Verify(original, cropped, r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else if result.Match {
				fmt.Fprintf(out, "match: %d pixels identical\n", result.PixelsCompared)
			} else if result.FirstMismatch == nil {
				fmt.Fprintf(out, "mismatch: cropped image is %dx%d, region is %dx%d\n",
					result.Width, result.Height, r.W, r.H)
			} else {
				fmt.Fprintf(out, "mismatch: %d of %d pixels differ, first at (%d,%d), max deltaE %.2f\n",
					result.MismatchedPixels, result.PixelsCompared,
					result.FirstMismatch.X, result.FirstMismatch.Y, result.MaxDeltaE)
			}

			if !result.Match {
				a.log.WithFields(log.Fields{
					"original": args[0],
					"cropped":  args[1],
					"rect":     r.String(),
				}).Debug("verification failed")
				return errMismatch
			}
			return nil
		},
	}

	verifyCmd.Flags().StringVar(&rect, "rect", "", "Region of the original as x,y,width,height")
	verifyCmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	_ = verifyCmd.MarkFlagRequired("rect")
	return verifyCmd
}
