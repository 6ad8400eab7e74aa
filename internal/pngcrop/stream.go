package pngcrop

import (
	"encoding/binary"
	"fmt"
	"io"
)

// chunkStream walks the chunks that follow the signature. It never copies
// chunk data and cannot be rewound.
type chunkStream struct {
	buf    []byte // whole input, signature included
	pos    int
	maxLen uint32
	done   bool
}

func newChunkStream(input []byte, maxChunkLength uint32) *chunkStream {
	return &chunkStream{
		buf:    input,
		pos:    len(Signature),
		maxLen: maxChunkLength,
	}
}

// next returns the next chunk, or io.EOF once IEND has been consumed.
func (s *chunkStream) next() (Chunk, error) {
	if s.done {
		return Chunk{}, io.EOF
	}

	remaining := len(s.buf) - s.pos
	if remaining == 0 {
		return Chunk{}, fmt.Errorf("%w: missing IEND chunk at offset %d", ErrTruncated, s.pos)
	}
	if remaining < chunkOverhead {
		return Chunk{}, fmt.Errorf("%w: %d bytes left at offset %d, need at least %d",
			ErrTruncated, remaining, s.pos, chunkOverhead)
	}

	length := binary.BigEndian.Uint32(s.buf[s.pos:])
	var t ChunkType
	copy(t[:], s.buf[s.pos+4:s.pos+8])

	if uint64(length) > uint64(remaining-chunkOverhead) {
		return Chunk{}, fmt.Errorf("%w: chunk %q at offset %d declares length %d, only %d bytes left",
			ErrTruncated, t, s.pos, length, remaining-chunkOverhead)
	}
	if length > s.maxLen {
		return Chunk{}, fmt.Errorf("%w: chunk %q at offset %d declares length %d, limit is %d",
			ErrCorrupt, t, s.pos, length, s.maxLen)
	}
	if !t.Valid() {
		return Chunk{}, fmt.Errorf("%w: bad chunk type %q at offset %d", ErrCorrupt, t, s.pos)
	}

	start := s.pos + 8
	end := start + int(length)
	c := Chunk{
		Offset: s.pos,
		Type:   t,
		Data:   s.buf[start:end:end],
		CRC:    binary.BigEndian.Uint32(s.buf[end:]),
	}
	if got := checksum(t, c.Data); got != c.CRC {
		return Chunk{}, fmt.Errorf("%w: chunk %q at offset %d has CRC %08x, computed %08x",
			ErrCorrupt, t, s.pos, c.CRC, got)
	}

	s.pos = end + 4
	if t == typeIEND {
		if length != 0 {
			return Chunk{}, fmt.Errorf("%w: IEND chunk has length %d", ErrCorrupt, length)
		}
		s.done = true
	}
	return c, nil
}

// raw returns the on-disk bytes of a chunk produced by this stream.
func (s *chunkStream) raw(c Chunk) []byte {
	return s.buf[c.Offset : c.Offset+c.Size()]
}
