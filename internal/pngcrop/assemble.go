package pngcrop

import "bytes"

// assemble writes the output file: signature, cropped IHDR, chunks kept from
// before the IDAT run, the new IDAT chunks, chunks kept from after it, IEND.
func assemble(doc *document, r Rect, compressed []byte, maxIDAT int) []byte {
	nIDAT := (len(compressed) + maxIDAT - 1) / maxIDAT
	size := len(Signature) + headerLength + chunkOverhead +
		len(compressed) + nIDAT*chunkOverhead + chunkOverhead
	for _, c := range doc.before {
		size += c.Size()
	}
	for _, c := range doc.after {
		size += c.Size()
	}

	var buf bytes.Buffer
	buf.Grow(size)
	buf.WriteString(Signature)
	writeChunk(&buf, typeIHDR, doc.hdr.cropped(doc.ihdr.Data, r))
	for _, c := range doc.before {
		buf.Write(doc.stream.raw(c))
	}
	for len(compressed) > 0 {
		n := min(len(compressed), maxIDAT)
		writeChunk(&buf, typeIDAT, compressed[:n])
		compressed = compressed[n:]
	}
	for _, c := range doc.after {
		buf.Write(doc.stream.raw(c))
	}
	buf.Write(doc.stream.raw(doc.iend))
	return buf.Bytes()
}
