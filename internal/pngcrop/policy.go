package pngcrop

// ChunkPolicy decides whether an ancillary chunk survives a crop.
type ChunkPolicy interface {
	Keep(t ChunkType) bool
}

// PolicyFunc adapts a function to ChunkPolicy.
type PolicyFunc func(t ChunkType) bool

// Keep calls f(t).
func (f PolicyFunc) Keep(t ChunkType) bool { return f(t) }

// Standard ancillary chunks whose content does not depend on image geometry.
var geometryIndependent = map[ChunkType]bool{
	{'t', 'R', 'N', 'S'}: true,
	{'g', 'A', 'M', 'A'}: true,
	{'c', 'H', 'R', 'M'}: true,
	{'s', 'R', 'G', 'B'}: true,
	{'i', 'C', 'C', 'P'}: true,
	{'s', 'B', 'I', 'T'}: true,
	{'b', 'K', 'G', 'D'}: true,
	{'h', 'I', 'S', 'T'}: true,
	{'p', 'H', 'Y', 's'}: true,
	{'s', 'P', 'L', 'T'}: true,
	{'t', 'E', 'X', 't'}: true,
	{'z', 'T', 'X', 't'}: true,
	{'i', 'T', 'X', 't'}: true,
	{'t', 'I', 'M', 'E'}: true,
	{'e', 'X', 'I', 'f'}: true,
	{'c', 'I', 'C', 'P'}: true,
	{'m', 'D', 'C', 'v'}: true,
	{'c', 'L', 'L', 'i'}: true,
}

// Ancillary chunks tied to the old canvas: image offsets, virtual page size
// and APNG frame control.
var geometryDependent = map[ChunkType]bool{
	{'o', 'F', 'F', 's'}: true,
	{'v', 'p', 'A', 'g'}: true,
	{'a', 'c', 'T', 'L'}: true,
	{'f', 'c', 'T', 'L'}: true,
	{'f', 'd', 'A', 'T'}: true,
}

// DefaultPolicy drops geometry-dependent chunks, keeps the registered chunks
// that remain valid after a crop and falls back to the safe-to-copy bit for
// everything else.
func DefaultPolicy() ChunkPolicy {
	return PolicyFunc(func(t ChunkType) bool {
		if geometryDependent[t] {
			return false
		}
		if geometryIndependent[t] {
			return true
		}
		return t.IsSafeToCopy()
	})
}

// KeepAll keeps every ancillary chunk.
func KeepAll() ChunkPolicy {
	return PolicyFunc(func(ChunkType) bool { return true })
}

// DropAll strips every ancillary chunk.
func DropAll() ChunkPolicy {
	return PolicyFunc(func(ChunkType) bool { return false })
}

// DropTypes wraps base and additionally drops the listed types.
func DropTypes(base ChunkPolicy, types ...ChunkType) ChunkPolicy {
	drop := make(map[ChunkType]bool, len(types))
	for _, t := range types {
		drop[t] = true
	}
	return PolicyFunc(func(t ChunkType) bool {
		return !drop[t] && base.Keep(t)
	})
}
