package pngcrop

import "errors"

// Error kinds returned by Crop. Returned errors wrap exactly one of these.
var (
	// ErrInvalidSignature reports that the first 8 bytes are not the PNG signature.
	ErrInvalidSignature = errors.New("pngcrop: invalid PNG signature")

	// ErrTruncated reports chunk framing that runs past the end of the buffer.
	ErrTruncated = errors.New("pngcrop: truncated chunk stream")

	// ErrCorrupt reports a CRC mismatch, inconsistent dimensions, bad chunk
	// ordering or undecodable pixel data.
	ErrCorrupt = errors.New("pngcrop: corrupt data")

	// ErrUnsupported reports a valid PNG feature that cannot be cropped, such as
	// interlacing, or an input exceeding the configured limits.
	ErrUnsupported = errors.New("pngcrop: unsupported feature")

	// ErrInvalidRect reports a crop rectangle that is empty or exceeds the image.
	ErrInvalidRect = errors.New("pngcrop: invalid crop rectangle")
)
