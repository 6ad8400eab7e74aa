package pngcrop

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// rawChunk is a chunk read back from test output.
type rawChunk struct {
	Type string
	Data []byte
	CRC  uint32
}

// rawImage describes a PNG built byte by byte, for streams image/png
// cannot produce.
type rawImage struct {
	width, height uint32
	depth         uint8
	colorType     uint8
	interlace     uint8
	palette       []byte
	rows          [][]byte // unfiltered rows, filter byte excluded
	filters       []byte   // per-row filter type; only ftNone is applied
	before        []rawChunk
	after         []rawChunk
	idatSplit     int // split the zlib stream into chunks of this size
}

func (ri rawImage) ihdr() []byte {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:4], ri.width)
	binary.BigEndian.PutUint32(b[4:8], ri.height)
	b[8] = ri.depth
	b[9] = ri.colorType
	b[12] = ri.interlace
	return b
}

func (ri rawImage) scanlines() []byte {
	var raw []byte
	for y, row := range ri.rows {
		ft := byte(ftNone)
		if y < len(ri.filters) {
			ft = ri.filters[y]
		}
		raw = append(raw, ft)
		raw = append(raw, row...)
	}
	return raw
}

func (ri rawImage) encode(t *testing.T) []byte {
	t.Helper()
	compressed := zlibBytes(t, ri.scanlines())

	var buf bytes.Buffer
	buf.WriteString(Signature)
	putChunk(&buf, "IHDR", ri.ihdr())
	if ri.palette != nil {
		putChunk(&buf, "PLTE", ri.palette)
	}
	for _, c := range ri.before {
		putChunk(&buf, c.Type, c.Data)
	}
	split := ri.idatSplit
	if split <= 0 {
		split = len(compressed)
	}
	for len(compressed) > 0 {
		n := min(split, len(compressed))
		putChunk(&buf, "IDAT", compressed[:n])
		compressed = compressed[n:]
	}
	for _, c := range ri.after {
		putChunk(&buf, c.Type, c.Data)
	}
	putChunk(&buf, "IEND", nil)
	return buf.Bytes()
}

func zlibBytes(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		t.Fatalf("zlib write failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close failed: %v", err)
	}
	return buf.Bytes()
}

func putChunk(buf *bytes.Buffer, typ string, data []byte) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(data)))
	buf.Write(tmp[:])
	buf.WriteString(typ)
	buf.Write(data)
	binary.BigEndian.PutUint32(tmp[:], crc32.ChecksumIEEE(append([]byte(typ), data...)))
	buf.Write(tmp[:])
}

// readChunks splits a PNG into chunks and fails the test on a bad signature
// or a CRC that does not verify.
func readChunks(t *testing.T, data []byte) []rawChunk {
	t.Helper()
	if !bytes.HasPrefix(data, []byte(Signature)) {
		t.Fatalf("output does not start with the PNG signature: % x", data[:min(8, len(data))])
	}
	var chunks []rawChunk
	for pos := len(Signature); pos < len(data); {
		if len(data)-pos < 12 {
			t.Fatalf("dangling %d bytes at offset %d", len(data)-pos, pos)
		}
		n := int(binary.BigEndian.Uint32(data[pos:]))
		c := rawChunk{
			Type: string(data[pos+4 : pos+8]),
			Data: data[pos+8 : pos+8+n],
			CRC:  binary.BigEndian.Uint32(data[pos+8+n:]),
		}
		if want := crc32.ChecksumIEEE(data[pos+4 : pos+8+n]); want != c.CRC {
			t.Fatalf("chunk %s at offset %d: CRC %08x, want %08x", c.Type, pos, c.CRC, want)
		}
		chunks = append(chunks, c)
		pos += 12 + n
	}
	return chunks
}

func chunkTypes(chunks []rawChunk) []string {
	types := make([]string, len(chunks))
	for i, c := range chunks {
		types[i] = c.Type
	}
	return types
}

func encodeImage(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

func decodeImage(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

// sample returns a deterministic value that varies in both directions, so
// every filter type gets picked by the encoder somewhere.
func sample(x, y, c int) uint8 {
	return uint8(x*37 + y*91 + c*13 + (x*y)%7)
}

func createPatternNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{sample(x, y, 0), sample(x, y, 1), sample(x, y, 2), sample(x, y, 3) | 1})
		}
	}
	return img
}

// assertCropped checks that out holds exactly the pixels of src inside r.
func assertCropped(t *testing.T, src image.Image, r Rect, out image.Image) {
	t.Helper()
	b := out.Bounds()
	if b.Dx() != int(r.W) || b.Dy() != int(r.H) {
		t.Fatalf("dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), r.W, r.H)
	}
	sb := src.Bounds()
	for y := 0; y < int(r.H); y++ {
		for x := 0; x < int(r.W); x++ {
			want := src.At(sb.Min.X+int(r.X)+x, sb.Min.Y+int(r.Y)+y)
			got := out.At(b.Min.X+x, b.Min.Y+y)
			wr, wg, wb, wa := want.RGBA()
			gr, gg, gb, ga := got.RGBA()
			if wr != gr || wg != gg || wb != gb || wa != ga {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

// assertValidOutput checks the container properties every output must have.
func assertValidOutput(t *testing.T, data []byte) []rawChunk {
	t.Helper()
	chunks := readChunks(t, data)
	if len(chunks) < 3 {
		t.Fatalf("output has %d chunks, want at least 3", len(chunks))
	}
	if chunks[0].Type != "IHDR" {
		t.Errorf("first chunk: got %s, want IHDR", chunks[0].Type)
	}
	last := chunks[len(chunks)-1]
	if last.Type != "IEND" || len(last.Data) != 0 {
		t.Errorf("last chunk: got %s with %d bytes, want empty IEND", last.Type, len(last.Data))
	}
	return chunks
}
