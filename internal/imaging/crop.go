package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ExpandRect grows r by margin pixels on every side and clamps the result to
// bounds.
//
// A negative margin is treated as zero. The returned rectangle never extends
// outside bounds, so a box that already touches an edge simply stays there.
func ExpandRect(r image.Rectangle, margin int, bounds image.Rectangle) image.Rectangle {
	if margin < 0 {
		margin = 0
	}
	return image.Rect(
		max(bounds.Min.X, r.Min.X-margin),
		max(bounds.Min.Y, r.Min.Y-margin),
		min(bounds.Max.X, r.Max.X+margin),
		min(bounds.Max.Y, r.Max.Y+margin),
	)
}

// CropNRGBA extracts the half-open region r from img into a new buffer whose
// bounds start at (0,0).
//
// The region must lie within the image bounds and have a positive area.
func CropNRGBA(img image.Image, r image.Rectangle) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	return imaging.Crop(img, r), nil
}

// FitWithin downscales img so that neither side exceeds maxSize, keeping the
// aspect ratio.
//
// Resampling is nearest-neighbor, so no pixel value is produced that was not
// already present in img. A maxSize of zero or less, or an image that already
// fits, returns img unchanged.
func FitWithin(img *image.NRGBA, maxSize int) *image.NRGBA {
	if maxSize <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxSize && b.Dy() <= maxSize {
		return img
	}
	return imaging.Fit(img, maxSize, maxSize, imaging.NearestNeighbor)
}
