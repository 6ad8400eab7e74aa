package pngcrop

import (
	"fmt"
	"math"
)

// cropPixels inflates the joined IDAT payload, unfilters every row, keeps
// the rect and returns the refiltered, recompressed stream.
func cropPixels(h header, compressed []byte, r Rect, o *options) ([]byte, error) {
	// Rejected before any allocation; the product may not fit in 64 bits.
	size, ok := h.rawSize()
	if !ok || size > o.limits.MaxDecodedSize || size > math.MaxInt {
		return nil, fmt.Errorf("%w: %dx%d image decodes to more than the limit of %d bytes",
			ErrUnsupported, h.width, h.height, o.limits.MaxDecodedSize)
	}

	raw, err := o.codec.Decompress(compressed, int(size))
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) != size {
		return nil, fmt.Errorf("%w: decoded %d bytes of pixel data, want %d", ErrCorrupt, len(raw), size)
	}

	bpp := h.filterStride()
	bitsPerPixel := h.bitsPerPixel()
	stride := int(1 + h.rowBytes(h.width))
	outRow := int(h.rowBytes(r.W))

	out := make([]byte, int(r.H)*(1+outRow))
	zero := make([]byte, stride-1)
	prevOut := make([]byte, outRow)
	curOut := make([]byte, outRow)
	scratch := make([]byte, outRow)

	prev := zero
	last := int(r.Y + r.H)
	for y := 0; y < int(h.height); y++ {
		row := raw[y*stride : (y+1)*stride]
		cur := row[1:]
		if err := unfilter(row[0], cur, prev, bpp); err != nil {
			return nil, fmt.Errorf("row %d: %w", y, err)
		}
		prev = cur

		// Rows past the rect are still unfiltered so a bad filter byte
		// anywhere in the image is reported.
		if y < int(r.Y) || y >= last {
			continue
		}

		clear(curOut)
		extractRow(curOut, cur, r.X, r.W, bitsPerPixel)
		i := y - int(r.Y)
		filterRow(o.filter, out[i*(1+outRow):(i+1)*(1+outRow)], curOut, prevOut, scratch, bpp)
		prevOut, curOut = curOut, prevOut
	}

	return o.codec.Compress(out)
}
