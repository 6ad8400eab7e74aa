package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/png-crop/internal/config"
	"github.com/ironsheep/png-crop/internal/pngcrop"
)

func newCropCmd(a *app) *cobra.Command {
	var (
		r       pngcrop.Rect
		rect    string
		filter  string
		level   int
		idat    int
		policy  string
		dropped []string
	)

	cropCmd := &cobra.Command{
		Use:   "crop <input> <output> (--rect x,y,w,h | --x X --y Y --width W --height H)",
		Short: "Losslessly crop a PNG file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("rect") {
				for _, name := range []string{"x", "y", "width", "height"} {
					if flags.Changed(name) {
						return fmt.Errorf("--rect cannot be combined with --%s", name)
					}
				}
				var err error
				if r, err = parseRect(rect); err != nil {
					return err
				}
			}

			opts := a.cfg.CropOptions()
			if flags.Changed("filter") {
				f, err := pngcrop.ParseFilterStrategy(filter)
				if err != nil {
					return err
				}
				opts = append(opts, pngcrop.WithFilter(f))
			}
			if flags.Changed("level") {
				opts = append(opts, pngcrop.WithCompressionLevel(level))
			}
			if flags.Changed("idat-size") {
				opts = append(opts, pngcrop.WithMaxIDATSize(idat))
			}
			p, err := parsePolicy(policy, dropped)
			if err != nil {
				return err
			}
			opts = append(opts, pngcrop.WithPolicy(p), pngcrop.WithLogger(a.log))

			return cropFile(a.log, args[0], args[1], r, opts...)
		},
	}

	cropCmd.Flags().Uint32Var(&r.X, "x", 0, "Left edge of the region (0-based)")
	cropCmd.Flags().Uint32Var(&r.Y, "y", 0, "Top edge of the region (0-based)")
	cropCmd.Flags().Uint32Var(&r.W, "width", 0, "Width of the region in pixels")
	cropCmd.Flags().Uint32Var(&r.H, "height", 0, "Height of the region in pixels")
	cropCmd.Flags().StringVar(&rect, "rect", "", "Region as x,y,width,height")
	cropCmd.Flags().StringVar(&filter, "filter", "", "Scanline filter: none or adaptive (default from "+config.EnvFilter+")")
	cropCmd.Flags().IntVar(&level, "level", 0, "zlib compression level, -2 (Huffman only) to 9")
	cropCmd.Flags().IntVar(&idat, "idat-size", 0, "Largest IDAT chunk to write, in bytes")
	cropCmd.Flags().StringVar(&policy, "policy", "default", "Ancillary chunk policy: default, keep-all or drop-all")
	cropCmd.Flags().StringSliceVar(&dropped, "drop", nil, "Additional ancillary chunk types to drop (e.g. tEXt,tIME)")

	return cropCmd
}

// cropFile crops the PNG at in and writes the result to out. The output file
// is only created once the crop has succeeded.
func cropFile(logger log.Interface, in, out string, r pngcrop.Rect, opts ...pngcrop.Option) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	cropped, err := pngcrop.Crop(data, r, opts...)
	if err != nil {
		return fmt.Errorf("failed to crop %s: %w", in, err)
	}

	if err := os.WriteFile(out, cropped, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.WithFields(log.Fields{
		"input":  in,
		"output": out,
		"rect":   r.String(),
		"bytes":  len(cropped),
	}).Info("cropped")
	return nil
}

// parseRect parses "x,y,width,height".
func parseRect(s string) (pngcrop.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return pngcrop.Rect{}, fmt.Errorf("%w: %q is not x,y,width,height", pngcrop.ErrInvalidRect, s)
	}

	var v [4]uint32
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return pngcrop.Rect{}, fmt.Errorf("%w: %q is not x,y,width,height", pngcrop.ErrInvalidRect, s)
		}
		v[i] = uint32(n)
	}
	return pngcrop.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

// parsePolicy resolves the --policy and --drop flags.
func parsePolicy(name string, drop []string) (pngcrop.ChunkPolicy, error) {
	var base pngcrop.ChunkPolicy
	switch name {
	case "", "default":
		base = pngcrop.DefaultPolicy()
	case "keep-all":
		base = pngcrop.KeepAll()
	case "drop-all":
		base = pngcrop.DropAll()
	default:
		return nil, fmt.Errorf("unknown chunk policy %q", name)
	}
	if len(drop) == 0 {
		return base, nil
	}

	types := make([]pngcrop.ChunkType, 0, len(drop))
	for _, d := range drop {
		t, err := pngcrop.ParseChunkType(d)
		if err != nil {
			return nil, err
		}
		if t.IsCritical() {
			return nil, fmt.Errorf("only ancillary chunks can be dropped, not %s", t)
		}
		types = append(types, t)
	}
	return pngcrop.DropTypes(base, types...), nil
}
