package pngcrop

import (
	"errors"
	"fmt"
	"io"

	"github.com/apex/log"
)

// Crop returns a new PNG holding only the pixels of input inside r.
//
// The input must be a complete PNG file. Chunks other than IHDR, IDAT and
// IEND are copied unchanged or dropped according to the ChunkPolicy. The
// returned error wraps one of the package's Err* values.
func Crop(input []byte, r Rect, opts ...Option) ([]byte, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if uint64(len(input)) > o.limits.MaxInputSize {
		return nil, fmt.Errorf("%w: input of %d bytes exceeds limit of %d",
			ErrUnsupported, len(input), o.limits.MaxInputSize)
	}
	if len(input) < len(Signature) || string(input[:len(Signature)]) != Signature {
		return nil, ErrInvalidSignature
	}

	doc, err := scan(newChunkStream(input, o.limits.MaxChunkLength), o)
	if err != nil {
		return nil, err
	}
	if err := r.within(doc.hdr.width, doc.hdr.height); err != nil {
		return nil, err
	}

	compressed, err := cropPixels(doc.hdr, doc.joinIDAT(), r, o)
	if err != nil {
		return nil, err
	}

	o.logger.WithFields(log.Fields{
		"rect":       r.String(),
		"source":     fmt.Sprintf("%dx%d", doc.hdr.width, doc.hdr.height),
		"idat_in":    len(doc.idat),
		"idat_out":   (len(compressed) + o.maxIDATSize - 1) / o.maxIDATSize,
		"compressed": len(compressed),
		"kept":       len(doc.before) + len(doc.after),
	}).Debug("cropped pixel data")

	return assemble(doc, r, compressed, o.maxIDATSize), nil
}

// document is the parsed chunk layout of the input. Every slice aliases it.
type document struct {
	stream *chunkStream
	ihdr   Chunk
	hdr    header
	before []Chunk // kept chunks between IHDR and the first IDAT
	idat   []Chunk
	after  []Chunk // kept chunks between the last IDAT and IEND
	iend   Chunk
}

func (d *document) joinIDAT() []byte {
	n := 0
	for _, c := range d.idat {
		n += len(c.Data)
	}
	joined := make([]byte, 0, n)
	for _, c := range d.idat {
		joined = append(joined, c.Data...)
	}
	return joined
}

// Ordering stages, as per the PNG chunk ordering rules.
const (
	dsStart = iota
	dsSeenIHDR
	dsSeenIDAT
	dsAfterIDAT
	dsSeenIEND
)

// scan walks the whole stream, validates ordering and dispatches each chunk.
func scan(s *chunkStream, o *options) (*document, error) {
	doc := &document{stream: s}
	stage := dsStart
	seenPLTE := false

	for {
		c, err := s.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		kind := Classify(c.Type)
		if stage == dsStart && kind != KindIHDR {
			return nil, fmt.Errorf("%w: first chunk is %q, want IHDR", ErrCorrupt, c.Type)
		}

		switch kind {
		case KindIHDR:
			if stage != dsStart {
				return nil, fmt.Errorf("%w: duplicate IHDR at offset %d", ErrCorrupt, c.Offset)
			}
			hdr, err := parseHeader(c.Data)
			if err != nil {
				return nil, err
			}
			doc.ihdr, doc.hdr = c, hdr
			stage = dsSeenIHDR

		case KindIDAT:
			switch stage {
			case dsAfterIDAT:
				return nil, fmt.Errorf("%w: IDAT at offset %d is not contiguous", ErrCorrupt, c.Offset)
			case dsSeenIHDR:
				if doc.hdr.needsPalette() && !seenPLTE {
					return nil, fmt.Errorf("%w: paletted image has no PLTE before IDAT", ErrCorrupt)
				}
			}
			doc.idat = append(doc.idat, c)
			stage = dsSeenIDAT

		case KindIEND:
			doc.iend = c
			stage = dsSeenIEND

		default:
			if stage == dsSeenIDAT {
				stage = dsAfterIDAT
			}
			keep, err := dispatchOther(c, stage, &seenPLTE, o)
			if err != nil {
				return nil, err
			}
			if !keep {
				o.logger.WithFields(log.Fields{
					"type":   c.Type.String(),
					"offset": c.Offset,
					"length": c.Length(),
				}).Debug("dropping chunk")
				continue
			}
			if stage == dsAfterIDAT {
				doc.after = append(doc.after, c)
			} else {
				doc.before = append(doc.before, c)
			}
		}
	}

	if len(doc.idat) == 0 {
		return nil, fmt.Errorf("%w: no IDAT chunks", ErrCorrupt)
	}
	return doc, nil
}

// dispatchOther handles every chunk that is not IHDR, IDAT or IEND and
// reports whether it is copied to the output.
func dispatchOther(c Chunk, stage int, seenPLTE *bool, o *options) (bool, error) {
	if !c.Type.IsCritical() {
		return o.policy.Keep(c.Type), nil
	}
	if c.Type != typePLTE {
		return false, fmt.Errorf("%w: unknown critical chunk %q at offset %d", ErrUnsupported, c.Type, c.Offset)
	}
	if *seenPLTE {
		return false, fmt.Errorf("%w: duplicate PLTE at offset %d", ErrCorrupt, c.Offset)
	}
	if stage != dsSeenIHDR {
		return false, fmt.Errorf("%w: PLTE at offset %d follows IDAT", ErrCorrupt, c.Offset)
	}
	if c.Length() == 0 || c.Length()%3 != 0 || c.Length() > 256*3 {
		return false, fmt.Errorf("%w: PLTE length %d", ErrCorrupt, c.Length())
	}
	*seenPLTE = true
	return true, nil
}
