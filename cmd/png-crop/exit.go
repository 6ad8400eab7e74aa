package main

import (
	"errors"

	"github.com/ironsheep/png-crop/internal/pngcrop"
)

// Process exit codes. Anything not listed exits with 1.
const (
	exitInvalidSignature = 3
	exitTruncated        = 4
	exitCorrupt          = 5
	exitUnsupported      = 6
	exitInvalidRect      = 7
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pngcrop.ErrInvalidSignature):
		return exitInvalidSignature
	case errors.Is(err, pngcrop.ErrTruncated):
		return exitTruncated
	case errors.Is(err, pngcrop.ErrCorrupt):
		return exitCorrupt
	case errors.Is(err, pngcrop.ErrUnsupported):
		return exitUnsupported
	case errors.Is(err, pngcrop.ErrInvalidRect):
		return exitInvalidRect
	default:
		return 1
	}
}
