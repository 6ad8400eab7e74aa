// Package pngcrop crops PNG images at the chunk level without a full image decode.
//
// Crop walks the chunk stream of a PNG held in memory, rewrites the IHDR and
// IDAT chunks for the requested rectangle and copies the remaining chunks
// through, subject to a pluggable ancillary-chunk policy. Pixel values are
// never converted: the output keeps the source bit depth, colour type and
// palette, so cropping is lossless for every non-interlaced PNG.
//
// # Coordinate System
//
// A Rect is given as an origin plus a size:
//   - X, Y: top-left pixel of the region (0-based, inclusive)
//   - W, H: width and height in pixels, both greater than zero
//
// The region must lie entirely inside the source image. Out-of-bounds
// rectangles are rejected with ErrInvalidRect rather than clamped.
//
// # Chunk Handling
//
// Chunks are classified by type code:
//   - IHDR: width and height replaced, CRC recomputed
//   - IDAT: all payloads joined, inflated, defiltered, cropped, refiltered,
//     deflated and re-split into new IDAT chunks
//   - IEND: always written last
//   - PLTE: copied unchanged
//   - other critical chunks: rejected with ErrUnsupported
//   - ancillary chunks: kept or dropped by the ChunkPolicy
//
// Ancillary chunks keep their position relative to the IDAT run.
//
// # Error Handling
//
// Every error wraps one of ErrInvalidSignature, ErrTruncated, ErrCorrupt,
// ErrUnsupported or ErrInvalidRect and can be tested with errors.Is. No
// partial output is ever returned.
//
// # Thread Safety
//
// Crop holds no shared state. Concurrent calls on different inputs are safe,
// and the input buffer is only read.
package pngcrop
