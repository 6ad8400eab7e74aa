package imaging

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
)

// FileCache provides thread-safe caching of raw PNG files to avoid redundant disk reads.
//
// The cache stores the undecoded file contents keyed by path. Cropping works
// on the raw chunk stream, so keeping bytes rather than decoded images lets
// every tool call reuse the same buffer without a decode.
//
// FileCache is safe for concurrent use by multiple goroutines. Returned
// slices are shared and must not be modified.
//
// # Memory Management
//
// Cached files remain in memory until explicitly removed via Evict() or Clear().
// Files larger than the configured limit are rejected before they are read.
//
// # Example Usage
//
//	cache := imaging.NewFileCache(64 << 20)
//	data, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use data...
//	cache.Evict("/path/to/image.png") // Optional: free memory
type FileCache struct {
	mu       sync.RWMutex
	files    map[string][]byte
	maxBytes int64
}

// NewFileCache creates an empty cache that refuses files larger than
// maxBytes. A maxBytes of zero disables the check.
func NewFileCache(maxBytes int64) *FileCache {
	return &FileCache{
		files:    make(map[string][]byte),
		maxBytes: maxBytes,
	}
}

// Load returns the contents of path, reading it from disk on first use.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file exceeds the cache's size limit
func (c *FileCache) Load(path string) ([]byte, error) {
	c.mu.RLock()
	if data, ok := c.files[path]; ok {
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if c.maxBytes > 0 && stat.Size() > c.maxBytes {
		return nil, fmt.Errorf("image %s is %d bytes, limit is %d", path, stat.Size(), c.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	c.mu.Lock()
	c.files[path] = data
	c.mu.Unlock()

	return data, nil
}

// Clear removes all files from the cache.
func (c *FileCache) Clear() {
	c.mu.Lock()
	c.files = make(map[string][]byte)
	c.mu.Unlock()
}

// Evict removes a specific file from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *FileCache) Evict(path string) {
	c.mu.Lock()
	delete(c.files, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a PNG file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is always "png"; other formats fail to load.
	Format string `json:"format"`

	// ColorModel names the decoded colour model: "gray", "rgb", "paletted"...
	ColorModel string `json:"color_model"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image carries an alpha channel or a
	// tRNS chunk.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the PNG in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// InspectPNG reads the PNG header of data and describes it. Only the header
// is decoded, so this is cheap even for large images.
//
// # Color Depth Detection
//
// Color depth is determined by the colour model image/png reports:
//   - Gray16, RGBA64, NRGBA64 -> "16-bit"
//   - everything else, palettes and sub-byte greyscale included -> "8-bit"
func InspectPNG(data []byte) (*ImageInfo, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG header: %w", err)
	}

	info := &ImageInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        "png",
		ColorDepth:    "8-bit",
		FileSizeBytes: int64(len(data)),
	}

	switch cfg.ColorModel {
	case color.GrayModel:
		info.ColorModel = "gray"
	case color.Gray16Model:
		info.ColorModel = "gray"
		info.ColorDepth = "16-bit"
	case color.RGBAModel:
		info.ColorModel = "rgb"
	case color.RGBA64Model:
		info.ColorModel = "rgb"
		info.ColorDepth = "16-bit"
	case color.NRGBAModel:
		info.ColorModel = "rgba"
		info.HasAlpha = true
	case color.NRGBA64Model:
		info.ColorModel = "rgba"
		info.ColorDepth = "16-bit"
		info.HasAlpha = true
	default:
		if _, ok := cfg.ColorModel.(color.Palette); ok {
			info.ColorModel = "paletted"
		} else {
			info.ColorModel = "unknown"
		}
	}

	// DecodeConfig stops before tRNS, so transparency keys and palette
	// alpha have to be found by walking the header chunks.
	if !info.HasAlpha {
		info.HasAlpha = hasTransparency(data)
	}
	return info, nil
}

// hasTransparency reports whether a tRNS chunk appears before the first IDAT.
func hasTransparency(data []byte) bool {
	pos := 8
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos:]))
		switch string(data[pos+4 : pos+8]) {
		case "tRNS":
			return true
		case "IDAT", "IEND":
			return false
		}
		if length < 0 || length > len(data)-pos-12 {
			return false
		}
		pos += 12 + length
	}
	return false
}

// LoadImageInfo loads a PNG through the cache and describes it.
func LoadImageInfo(cache *FileCache, path string) (*ImageInfo, error) {
	data, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return InspectPNG(data)
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of a PNG without additional metadata.
func GetDimensions(cache *FileCache, path string) (*DimensionsResult, error) {
	info, err := LoadImageInfo(cache, path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{Width: info.Width, Height: info.Height}, nil
}

// bounds is the image rectangle of a PNG, read from its header.
func bounds(data []byte) (image.Rectangle, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("failed to decode PNG header: %w", err)
	}
	return image.Rect(0, 0, cfg.Width, cfg.Height), nil
}
