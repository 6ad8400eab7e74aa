// Package imaging provides the file-level PNG operations behind the CLI and MCP server.
//
// This package sits between the raw chunk engine in pngcrop and the outer
// surfaces. It loads PNG files into a byte cache, describes them from their
// header, crops them losslessly, renders optional scaled previews and verifies
// that a cropped file really holds the source pixels.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - A pngcrop.Rect is origin plus size; RectFromCorners accepts the
//     (x1,y1) inclusive, (x2,y2) exclusive corner form
//
// # Thread Safety
//
// The FileCache type is safe for concurrent use. Crop, CropQuadrant, Verify
// and InspectPNG are stateless and can be called concurrently. Byte slices
// returned by the cache are shared and must be treated as read-only.
//
// # Lossless Crop and Lossy Preview
//
// Crop never decodes pixels into an image.Image: the chunk stream is
// rewritten in place, so bit depth, palette and metadata survive. Only the
// optional preview (scale != 1.0) goes through a full decode, a Lanczos
// resample and a fresh PNG encode.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Regions outside image bounds or with zero area
//   - Files that are not PNGs, are corrupt or use interlacing
//   - File I/O errors during loading
//
// Errors from pngcrop are wrapped, so errors.Is(err, pngcrop.ErrCorrupt) and
// friends keep working.
package imaging
