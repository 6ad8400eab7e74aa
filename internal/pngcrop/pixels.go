package pngcrop

// extractRow copies pixel columns [x, x+w) of the unfiltered row src into dst.
// dst must be zeroed and hold ceil(w*bitsPerPixel/8) bytes. Sub-byte depths
// are copied bit by bit, MSB first, so unused trailing bits stay zero.
func extractRow(dst, src []byte, x, w uint32, bitsPerPixel int) {
	if bitsPerPixel >= 8 {
		bpp := uint64(bitsPerPixel / 8)
		start := uint64(x) * bpp
		copy(dst, src[start:start+uint64(w)*bpp])
		return
	}

	// Pixels never straddle a byte when depth is 1, 2 or 4, so moving whole
	// pixels keeps the arithmetic to one shift per side.
	mask := byte(1)<<bitsPerPixel - 1
	perByte := uint64(8 / bitsPerPixel)
	for i := uint64(0); i < uint64(w); i++ {
		si := uint64(x) + i
		sshift := uint(8 - bitsPerPixel - int(si%perByte)*bitsPerPixel)
		v := (src[si/perByte] >> sshift) & mask

		dshift := uint(8 - bitsPerPixel - int(i%perByte)*bitsPerPixel)
		dst[i/perByte] |= v << dshift
	}
}
