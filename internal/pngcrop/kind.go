package pngcrop

// Kind is the dispatcher's classification of a chunk type.
type Kind int

const (
	KindOther Kind = iota
	KindIHDR
	KindIDAT
	KindIEND
)

func (k Kind) String() string {
	switch k {
	case KindIHDR:
		return "IHDR"
	case KindIDAT:
		return "IDAT"
	case KindIEND:
		return "IEND"
	default:
		return "other"
	}
}

// Classify maps a chunk type onto the closed set of kinds Crop handles.
func Classify(t ChunkType) Kind {
	switch t {
	case typeIHDR:
		return KindIHDR
	case typeIDAT:
		return KindIDAT
	case typeIEND:
		return KindIEND
	default:
		return KindOther
	}
}
