package pngcrop

import "fmt"

// Rect is a crop region: origin (X, Y) and size (W, H) in pixels.
type Rect struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
	W uint32 `json:"width"`
	H uint32 `json:"height"`
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// within checks that r is non-empty and fits a width x height image.
func (r Rect) within(width, height uint32) error {
	if r.W == 0 || r.H == 0 {
		return fmt.Errorf("%w: %s has zero area", ErrInvalidRect, r)
	}
	if uint64(r.X)+uint64(r.W) > uint64(width) {
		return fmt.Errorf("%w: x+width = %d exceeds image width %d",
			ErrInvalidRect, uint64(r.X)+uint64(r.W), width)
	}
	if uint64(r.Y)+uint64(r.H) > uint64(height) {
		return fmt.Errorf("%w: y+height = %d exceeds image height %d",
			ErrInvalidRect, uint64(r.Y)+uint64(r.H), height)
	}
	return nil
}
