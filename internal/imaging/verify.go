package imaging

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/transform"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/png-crop/internal/pngcrop"
)

// Point represents a 2D point
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// VerifyResult reports how a cropped PNG compares with the source region.
type VerifyResult struct {
	// Match is true when every pixel is identical.
	Match bool `json:"match"`

	// Width and Height are the dimensions of the cropped image.
	Width  int `json:"width"`
	Height int `json:"height"`

	// PixelsCompared is the number of pixels checked.
	PixelsCompared int `json:"pixels_compared"`

	// MismatchedPixels counts pixels whose 8-bit RGBA value differs.
	MismatchedPixels int `json:"mismatched_pixels"`

	// MaxDeltaE is the largest CIEDE2000 difference among mismatched
	// opaque-enough pixels. 0 when everything matches.
	MaxDeltaE float64 `json:"max_delta_e"`

	// FirstMismatch is the first differing pixel in row-major order, in
	// cropped-image coordinates.
	FirstMismatch *Point `json:"first_mismatch,omitempty"`
}

// Verify decodes both PNGs and checks that cropped holds exactly the pixels
// of original inside r.
//
// Both images are converted to 8-bit RGBA through the same path before
// comparison, so a match means the crop is visually lossless; the
// byte-level fidelity of the chunk transform is covered by pngcrop itself.
func Verify(original, cropped []byte, r pngcrop.Rect) (*VerifyResult, error) {
	src, err := png.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("failed to decode original image: %w", err)
	}
	dst, err := png.Decode(bytes.NewReader(cropped))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cropped image: %w", err)
	}

	region := Rectangle(r)
	if !region.In(src.Bounds()) || region.Empty() {
		return nil, fmt.Errorf("crop region %s outside image bounds %v", r, src.Bounds())
	}

	want := transform.Crop(src, region)
	got := transform.Crop(dst, dst.Bounds())

	result := &VerifyResult{
		Width:  got.Bounds().Dx(),
		Height: got.Bounds().Dy(),
	}
	if result.Width != int(r.W) || result.Height != int(r.H) {
		return result, nil
	}

	wMin, gMin := want.Bounds().Min, got.Bounds().Min
	for y := 0; y < result.Height; y++ {
		for x := 0; x < result.Width; x++ {
			result.PixelsCompared++
			wc := want.RGBAAt(wMin.X+x, wMin.Y+y)
			gc := got.RGBAAt(gMin.X+x, gMin.Y+y)
			if wc == gc {
				continue
			}
			result.MismatchedPixels++
			if result.FirstMismatch == nil {
				result.FirstMismatch = &Point{X: x, Y: y}
			}
			result.MaxDeltaE = math.Max(result.MaxDeltaE, deltaE(wc, gc))
		}
	}

	result.Match = result.MismatchedPixels == 0
	result.MaxDeltaE = math.Round(result.MaxDeltaE*100) / 100
	return result, nil
}

// deltaE is the CIEDE2000 distance between two colours. Fully transparent
// colours have no defined hue, so they count as maximally different from
// anything visible.
func deltaE(a, b color.RGBA) float64 {
	ca, okA := colorful.MakeColor(a)
	cb, okB := colorful.MakeColor(b)
	if !okA || !okB {
		if okA == okB {
			return 0
		}
		return 100
	}
	return ca.DistanceCIEDE2000(cb)
}
