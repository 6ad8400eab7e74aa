// Package config loads png-crop settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file in the working directory. Unset variables fall back to the
// pngcrop package defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/klauspost/compress/zlib"

	"github.com/ironsheep/png-crop/internal/pngcrop"
)

// Environment variable names.
const (
	EnvLogLevel         = "PNGCROP_LOG_LEVEL"
	EnvMaxInputBytes    = "PNGCROP_MAX_INPUT_BYTES"
	EnvMaxChunkBytes    = "PNGCROP_MAX_CHUNK_BYTES"
	EnvMaxDecodedBytes  = "PNGCROP_MAX_DECODED_BYTES"
	EnvIDATChunkSize    = "PNGCROP_IDAT_CHUNK_SIZE"
	EnvCompressionLevel = "PNGCROP_COMPRESSION_LEVEL"
	EnvFilter           = "PNGCROP_FILTER"
)

// Config holds every tunable of the CLI and the MCP server.
type Config struct {
	LogLevel         string
	MaxInputBytes    uint64
	MaxChunkBytes    uint32
	MaxDecodedBytes  uint64
	IDATChunkSize    int
	CompressionLevel int
	Filter           pngcrop.FilterStrategy
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	limits := pngcrop.DefaultLimits()
	return Config{
		LogLevel:         "info",
		MaxInputBytes:    limits.MaxInputSize,
		MaxChunkBytes:    limits.MaxChunkLength,
		MaxDecodedBytes:  limits.MaxDecodedSize,
		IDATChunkSize:    pngcrop.DefaultMaxIDATSize,
		CompressionLevel: zlib.DefaultCompression,
		Filter:           pngcrop.FilterNone,
	}
}

// Load reads envFiles (or .env when none are given) into the environment
// without overriding variables that are already set, then builds a Config.
// Missing env files are not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if err := parseUint(lookup, EnvMaxInputBytes, 64, &cfg.MaxInputBytes); err != nil {
		return Config{}, err
	}
	chunk := uint64(cfg.MaxChunkBytes)
	if err := parseUint(lookup, EnvMaxChunkBytes, 31, &chunk); err != nil {
		return Config{}, err
	}
	cfg.MaxChunkBytes = uint32(chunk)
	if err := parseUint(lookup, EnvMaxDecodedBytes, 64, &cfg.MaxDecodedBytes); err != nil {
		return Config{}, err
	}

	if v, ok := lookup(EnvIDATChunkSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1<<31-1 {
			return Config{}, fmt.Errorf("%s: invalid chunk size %q", EnvIDATChunkSize, v)
		}
		cfg.IDATChunkSize = n
	}
	if v, ok := lookup(EnvCompressionLevel); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < zlib.HuffmanOnly || n > zlib.BestCompression {
			return Config{}, fmt.Errorf("%s: invalid compression level %q", EnvCompressionLevel, v)
		}
		cfg.CompressionLevel = n
	}
	if v, ok := lookup(EnvFilter); ok {
		f, err := pngcrop.ParseFilterStrategy(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvFilter, err)
		}
		cfg.Filter = f
	}
	return cfg, nil
}

func parseUint(lookup func(string) (string, bool), key string, bits int, dst *uint64) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, bits)
	if err != nil || n == 0 {
		return fmt.Errorf("%s: invalid byte count %q", key, v)
	}
	*dst = n
	return nil
}

// Limits returns the resource limits for pngcrop.
func (c Config) Limits() pngcrop.Limits {
	return pngcrop.Limits{
		MaxInputSize:   c.MaxInputBytes,
		MaxChunkLength: c.MaxChunkBytes,
		MaxDecodedSize: c.MaxDecodedBytes,
	}
}

// CropOptions converts the configuration into pngcrop options.
func (c Config) CropOptions() []pngcrop.Option {
	return []pngcrop.Option{
		pngcrop.WithLimits(c.Limits()),
		pngcrop.WithMaxIDATSize(c.IDATChunkSize),
		pngcrop.WithCompressionLevel(c.CompressionLevel),
		pngcrop.WithFilter(c.Filter),
	}
}
