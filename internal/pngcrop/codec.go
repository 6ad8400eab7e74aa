package pngcrop

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Codec inflates and deflates the IDAT zlib stream. Implementations keep no
// state between calls.
type Codec interface {
	// Decompress inflates src, which must hold exactly size bytes once
	// inflated. Any other size is an error.
	Decompress(src []byte, size int) ([]byte, error)
	// Compress deflates raw into a zlib stream.
	Compress(raw []byte) ([]byte, error)
}

// ZlibCodec is the default Codec.
type ZlibCodec struct {
	// Level is a zlib compression level (zlib.NoCompression through
	// zlib.BestCompression, or zlib.DefaultCompression).
	Level int
}

// NewZlibCodec returns a codec compressing at level.
func NewZlibCodec(level int) (*ZlibCodec, error) {
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		return nil, fmt.Errorf("invalid zlib compression level %d", level)
	}
	return &ZlibCodec{Level: level}, nil
}

// Decompress implements Codec.
func (c *ZlibCodec) Decompress(src []byte, size int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: IDAT stream: %v", ErrCorrupt, err)
	}
	defer zr.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: not enough pixel data", ErrCorrupt)
		}
		return nil, fmt.Errorf("%w: IDAT stream: %v", ErrCorrupt, err)
	}

	// Reading on to EOF also verifies the Adler-32 trailer.
	var extra [1]byte
	n, err := io.ReadFull(zr, extra[:])
	switch {
	case n > 0:
		return nil, fmt.Errorf("%w: too much pixel data", ErrCorrupt)
	case errors.Is(err, io.EOF):
		return out, nil
	default:
		return nil, fmt.Errorf("%w: IDAT stream: %v", ErrCorrupt, err)
	}
}

// Compress implements Codec.
func (c *ZlibCodec) Compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(raw)/2 + 64)
	zw, err := zlib.NewWriterLevel(&buf, c.Level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
