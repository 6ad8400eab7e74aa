package pngcrop

import (
	"fmt"
	"strings"
)

// Filter type, as per the PNG spec.
const (
	ftNone    = 0
	ftSub     = 1
	ftUp      = 2
	ftAverage = 3
	ftPaeth   = 4
	nFilter   = 5
)

// FilterStrategy selects how cropped rows are filtered before compression.
type FilterStrategy int

const (
	// FilterNone writes every row with filter type None.
	FilterNone FilterStrategy = iota
	// FilterAdaptive picks, per row, the filter with the smallest sum of
	// absolute signed residuals.
	FilterAdaptive
)

func (f FilterStrategy) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("FilterStrategy(%d)", int(f))
	}
}

// ParseFilterStrategy accepts "none" or "adaptive", case-insensitively.
func ParseFilterStrategy(s string) (FilterStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FilterNone, nil
	case "adaptive":
		return FilterAdaptive, nil
	}
	return FilterNone, fmt.Errorf("unknown filter strategy %q (want none or adaptive)", s)
}

// unfilter reverses the row filter in place. cdat and pdat exclude the filter
// byte; pdat must already be unfiltered and is all zeros for the first row.
func unfilter(ft byte, cdat, pdat []byte, bpp int) error {
	switch ft {
	case ftNone:
	case ftSub:
		for i := bpp; i < len(cdat); i++ {
			cdat[i] += cdat[i-bpp]
		}
	case ftUp:
		for i, p := range pdat {
			cdat[i] += p
		}
	case ftAverage:
		for i := 0; i < bpp && i < len(cdat); i++ {
			cdat[i] += pdat[i] / 2
		}
		for i := bpp; i < len(cdat); i++ {
			cdat[i] += uint8((int(cdat[i-bpp]) + int(pdat[i])) / 2)
		}
	case ftPaeth:
		for i := 0; i < bpp && i < len(cdat); i++ {
			cdat[i] += paeth(0, pdat[i], 0)
		}
		for i := bpp; i < len(cdat); i++ {
			cdat[i] += paeth(cdat[i-bpp], pdat[i], pdat[i-bpp])
		}
	default:
		return fmt.Errorf("%w: bad filter type %d", ErrCorrupt, ft)
	}
	return nil
}

// applyFilter writes the ft-filtered form of cur into dst. prev is the
// previous unfiltered row.
func applyFilter(ft byte, dst, cur, prev []byte, bpp int) {
	for i := range cur {
		var left, upLeft byte
		if i >= bpp {
			left = cur[i-bpp]
			upLeft = prev[i-bpp]
		}
		up := prev[i]
		switch ft {
		case ftNone:
			dst[i] = cur[i]
		case ftSub:
			dst[i] = cur[i] - left
		case ftUp:
			dst[i] = cur[i] - up
		case ftAverage:
			dst[i] = cur[i] - uint8((int(left)+int(up))/2)
		case ftPaeth:
			dst[i] = cur[i] - paeth(left, up, upLeft)
		}
	}
}

// filterRow writes the filter type byte and filtered data for cur into
// dst[0:len(cur)+1]. scratch must hold len(cur) bytes.
func filterRow(strategy FilterStrategy, dst, cur, prev, scratch []byte, bpp int) {
	if strategy != FilterAdaptive {
		dst[0] = ftNone
		copy(dst[1:], cur)
		return
	}

	best, bestSum := byte(ftNone), residualSum(cur)
	for ft := byte(ftSub); ft < nFilter; ft++ {
		applyFilter(ft, scratch, cur, prev, bpp)
		if sum := residualSum(scratch); sum < bestSum {
			best, bestSum = ft, sum
		}
	}
	dst[0] = best
	applyFilter(best, dst[1:], cur, prev, bpp)
}

func residualSum(b []byte) int {
	sum := 0
	for _, v := range b {
		sum += abs(int(int8(v)))
	}
	return sum
}

func paeth(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
