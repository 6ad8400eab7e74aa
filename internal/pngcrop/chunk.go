package pngcrop

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Signature is the fixed 8-byte header that starts every PNG file.
const Signature = "\x89PNG\r\n\x1a\n"

// Per-chunk framing: 4-byte length, 4-byte type, data, 4-byte CRC.
const chunkOverhead = 12

// ChunkType is the 4-byte chunk type code.
type ChunkType [4]byte

// Chunk type codes the dispatcher knows about.
var (
	typeIHDR = ChunkType{'I', 'H', 'D', 'R'}
	typePLTE = ChunkType{'P', 'L', 'T', 'E'}
	typeIDAT = ChunkType{'I', 'D', 'A', 'T'}
	typeIEND = ChunkType{'I', 'E', 'N', 'D'}
)

// ParseChunkType converts a 4-character code such as "tEXt" to a ChunkType.
func ParseChunkType(s string) (ChunkType, error) {
	var t ChunkType
	if len(s) != len(t) {
		return t, fmt.Errorf("chunk type %q must be 4 bytes", s)
	}
	copy(t[:], s)
	if !t.Valid() {
		return t, fmt.Errorf("chunk type %q must be ASCII letters", s)
	}
	return t, nil
}

func (t ChunkType) String() string { return string(t[:]) }

// Valid reports whether every byte of the type code is an ASCII letter.
func (t ChunkType) Valid() bool {
	for _, b := range t {
		if !(b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z') {
			return false
		}
	}
	return true
}

// IsCritical reports whether decoders must understand the chunk. The
// ancillary bit is bit 5 of the first byte (lowercase means ancillary).
func (t ChunkType) IsCritical() bool { return t[0]&0x20 == 0 }

// IsPublic reports whether the chunk is registered with the PNG specification.
func (t ChunkType) IsPublic() bool { return t[1]&0x20 == 0 }

// IsSafeToCopy reports whether editors that modify critical chunks may copy
// an unrecognised chunk of this type.
func (t ChunkType) IsSafeToCopy() bool { return t[3]&0x20 != 0 }

// Chunk is a view of one chunk inside the input buffer. Data aliases the
// input and must not be modified.
type Chunk struct {
	Offset int // byte offset of the length field in the input
	Type   ChunkType
	Data   []byte
	CRC    uint32
}

// Length returns the declared data length.
func (c Chunk) Length() int { return len(c.Data) }

// Size returns the number of bytes the chunk occupies on disk.
func (c Chunk) Size() int { return len(c.Data) + chunkOverhead }

// checksum computes the CRC32 over type and data as PNG defines it.
func checksum(t ChunkType, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(t[:])
	crc.Write(data)
	return crc.Sum32()
}

// writeChunk appends a framed chunk with a freshly computed CRC.
func writeChunk(buf *bytes.Buffer, t ChunkType, data []byte) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(data)))
	buf.Write(tmp[:])
	buf.Write(t[:])
	buf.Write(data)
	binary.BigEndian.PutUint32(tmp[:], checksum(t, data))
	buf.Write(tmp[:])
}
