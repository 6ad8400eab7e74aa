package pngcrop

import (
	"fmt"

	"github.com/apex/log"
	"github.com/klauspost/compress/zlib"
)

// Limits bound the memory a single Crop call may commit to.
type Limits struct {
	// MaxInputSize is the largest accepted input file, in bytes.
	MaxInputSize uint64
	// MaxChunkLength is the largest accepted declared chunk data length.
	MaxChunkLength uint32
	// MaxDecodedSize is the largest accepted inflated IDAT size, in bytes.
	MaxDecodedSize uint64
}

// DefaultLimits returns the limits Crop uses unless told otherwise.
func DefaultLimits() Limits {
	return Limits{
		MaxInputSize:   256 << 20,
		MaxChunkLength: 1<<31 - 1,
		MaxDecodedSize: 512 << 20,
	}
}

// DefaultMaxIDATSize is the largest IDAT chunk Crop writes by default.
const DefaultMaxIDATSize = 1 << 20

type options struct {
	policy      ChunkPolicy
	codec       Codec
	filter      FilterStrategy
	maxIDATSize int
	limits      Limits
	logger      log.Interface
	err         error
}

// Option configures Crop.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		policy:      DefaultPolicy(),
		codec:       &ZlibCodec{Level: zlib.DefaultCompression},
		filter:      FilterNone,
		maxIDATSize: DefaultMaxIDATSize,
		limits:      DefaultLimits(),
		logger:      log.Log,
	}
}

// WithPolicy sets the ancillary chunk policy.
func WithPolicy(p ChunkPolicy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

// WithCodec replaces the zlib codec.
func WithCodec(c Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompressionLevel sets the zlib level of the default codec.
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		c, err := NewZlibCodec(level)
		if err != nil {
			o.err = err
			return
		}
		o.codec = c
	}
}

// WithFilter sets the filter strategy for the cropped rows.
func WithFilter(f FilterStrategy) Option {
	return func(o *options) { o.filter = f }
}

// WithMaxIDATSize caps the data length of each emitted IDAT chunk.
func WithMaxIDATSize(n int) Option {
	return func(o *options) {
		if n <= 0 || n > 1<<31-1 {
			o.err = fmt.Errorf("invalid IDAT chunk size %d", n)
			return
		}
		o.maxIDATSize = n
	}
}

// WithLimits replaces the resource limits. Zero fields keep their defaults.
func WithLimits(l Limits) Option {
	return func(o *options) {
		if l.MaxInputSize != 0 {
			o.limits.MaxInputSize = l.MaxInputSize
		}
		if l.MaxChunkLength != 0 {
			o.limits.MaxChunkLength = l.MaxChunkLength
		}
		if l.MaxDecodedSize != 0 {
			o.limits.MaxDecodedSize = l.MaxDecodedSize
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l log.Interface) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
