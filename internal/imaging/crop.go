package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/png-crop/internal/pngcrop"
)

// CropResult contains the cropped image data
type CropResult struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	InputBytes    int    `json:"input_bytes"`
	OutputBytes   int    `json:"output_bytes"`
	ImageBase64   string `json:"image_base64,omitempty"`
	OutputPath    string `json:"output_path,omitempty"`
	PreviewBase64 string `json:"preview_base64,omitempty"`
	MimeType      string `json:"mime_type"`

	// PNG holds the cropped file; it is not serialized.
	PNG []byte `json:"-"`
}

// Crop extracts a rectangular region from a PNG without re-encoding its pixels.
//
// When scale is positive and not 1.0, a resampled preview of the cropped
// region is attached as PreviewBase64. The preview is a separate, lossy
// rendering; the cropped PNG itself is always lossless.
func Crop(data []byte, r pngcrop.Rect, scale float64, opts ...pngcrop.Option) (*CropResult, error) {
	out, err := pngcrop.Crop(data, r, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to crop image: %w", err)
	}

	result := &CropResult{
		Width:       int(r.W),
		Height:      int(r.H),
		InputBytes:  len(data),
		OutputBytes: len(out),
		MimeType:    "image/png",
		PNG:         out,
	}

	if scale != 1.0 && scale > 0 {
		preview, err := scalePreview(out, scale)
		if err != nil {
			return nil, err
		}
		result.PreviewBase64 = base64.StdEncoding.EncodeToString(preview)
	}
	return result, nil
}

// scalePreview decodes a PNG, resizes it by scale and re-encodes it.
func scalePreview(data []byte, scale float64) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cropped image: %w", err)
	}

	newWidth := max(1, int(float64(img.Bounds().Dx())*scale))
	newHeight := max(1, int(float64(img.Bounds().Dy())*scale))
	resized := imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// QuadrantRect resolves a named region of a width x height image
func QuadrantRect(region string, width, height int) (pngcrop.Rect, error) {
	w := width
	h := height
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch region {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		// Center 50% of the image
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return pngcrop.Rect{}, fmt.Errorf("unknown region: %s", region)
	}

	return pngcrop.Rect{X: uint32(x1), Y: uint32(y1), W: uint32(x2 - x1), H: uint32(y2 - y1)}, nil
}

// CropQuadrant extracts a named region from a PNG
func CropQuadrant(data []byte, region string, scale float64, opts ...pngcrop.Option) (*CropResult, error) {
	b, err := bounds(data)
	if err != nil {
		return nil, err
	}
	r, err := QuadrantRect(region, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	return Crop(data, r, scale, opts...)
}

// RectFromCorners converts the (x1,y1)-(x2,y2) corner form, x2/y2
// exclusive, into a Rect. Coordinates must be non-negative and ordered.
func RectFromCorners(x1, y1, x2, y2 int) (pngcrop.Rect, error) {
	if x1 < 0 || y1 < 0 {
		return pngcrop.Rect{}, fmt.Errorf("crop region (%d,%d)-(%d,%d) has negative coordinates", x1, y1, x2, y2)
	}
	if x1 >= x2 || y1 >= y2 {
		return pngcrop.Rect{}, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	return pngcrop.Rect{X: uint32(x1), Y: uint32(y1), W: uint32(x2 - x1), H: uint32(y2 - y1)}, nil
}

// Rectangle converts a Rect to an image.Rectangle.
func Rectangle(r pngcrop.Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.W), int(r.Y)+int(r.H))
}
