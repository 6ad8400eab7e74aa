package pngcrop

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Colour types, as per the PNG spec.
const (
	ctGrayscale      = 0
	ctTrueColor      = 2
	ctPaletted       = 3
	ctGrayscaleAlpha = 4
	ctTrueColorAlpha = 6
)

const headerLength = 13

// header is the decoded IHDR payload.
type header struct {
	width, height uint32
	depth         uint8
	colorType     uint8
	compression   uint8
	filter        uint8
	interlace     uint8
}

func parseHeader(data []byte) (header, error) {
	if len(data) != headerLength {
		return header{}, fmt.Errorf("%w: IHDR length is %d, want %d", ErrCorrupt, len(data), headerLength)
	}
	h := header{
		width:       binary.BigEndian.Uint32(data[0:4]),
		height:      binary.BigEndian.Uint32(data[4:8]),
		depth:       data[8],
		colorType:   data[9],
		compression: data[10],
		filter:      data[11],
		interlace:   data[12],
	}
	if h.width == 0 || h.height == 0 {
		return header{}, fmt.Errorf("%w: zero image dimension %dx%d", ErrCorrupt, h.width, h.height)
	}
	if h.width > 1<<31-1 || h.height > 1<<31-1 {
		return header{}, fmt.Errorf("%w: image dimension %dx%d exceeds 2^31-1", ErrCorrupt, h.width, h.height)
	}
	if h.compression != 0 {
		return header{}, fmt.Errorf("%w: compression method %d", ErrUnsupported, h.compression)
	}
	if h.filter != 0 {
		return header{}, fmt.Errorf("%w: filter method %d", ErrUnsupported, h.filter)
	}
	if h.interlace != 0 {
		return header{}, fmt.Errorf("%w: interlace method %d", ErrUnsupported, h.interlace)
	}
	if h.channels() == 0 {
		return header{}, fmt.Errorf("%w: bit depth %d with colour type %d", ErrUnsupported, h.depth, h.colorType)
	}
	return h, nil
}

// channels returns the samples per pixel, or 0 for an invalid depth and
// colour type combination.
func (h header) channels() int {
	switch h.colorType {
	case ctGrayscale:
		switch h.depth {
		case 1, 2, 4, 8, 16:
			return 1
		}
	case ctPaletted:
		switch h.depth {
		case 1, 2, 4, 8:
			return 1
		}
	case ctTrueColor:
		if h.depth == 8 || h.depth == 16 {
			return 3
		}
	case ctGrayscaleAlpha:
		if h.depth == 8 || h.depth == 16 {
			return 2
		}
	case ctTrueColorAlpha:
		if h.depth == 8 || h.depth == 16 {
			return 4
		}
	}
	return 0
}

func (h header) bitsPerPixel() int { return h.channels() * int(h.depth) }

// filterStride is the byte distance filters use to find the "left" pixel.
func (h header) filterStride() int { return (h.bitsPerPixel() + 7) / 8 }

// rowBytes returns the packed size of a row of width pixels, filter byte excluded.
func (h header) rowBytes(width uint32) uint64 {
	return (uint64(width)*uint64(h.bitsPerPixel()) + 7) / 8
}

// rawSize is the exact inflated IDAT size for the whole image. ok is false
// when the size does not fit in 64 bits.
func (h header) rawSize() (size uint64, ok bool) {
	hi, lo := bits.Mul64(uint64(h.height), 1+h.rowBytes(h.width))
	return lo, hi == 0
}

func (h header) needsPalette() bool { return h.colorType == ctPaletted }

// cropped returns the IHDR payload for the rect, every other field unchanged.
func (h header) cropped(src []byte, r Rect) []byte {
	out := make([]byte, headerLength)
	copy(out, src)
	binary.BigEndian.PutUint32(out[0:4], r.W)
	binary.BigEndian.PutUint32(out[4:8], r.H)
	return out
}
