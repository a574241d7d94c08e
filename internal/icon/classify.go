package icon

import (
	"image"
	"image/color"

	"github.com/ironsheep/icon-extract/internal/imaging"
)

// Classify paints a new transparent canvas the size of src: every pixel whose
// channel average is strictly below threshold becomes target at full opacity,
// every other pixel stays (0,0,0,0).
//
// Each pixel is decided on its own. There is no neighborhood or connected
// component logic, so a single dark speck counts exactly like a large shape.
// The alpha channel of src is ignored.
//
// It returns the canvas and the number of pixels painted.
func Classify(src *image.NRGBA, target color.NRGBA, threshold float64) (*image.NRGBA, int) {
	b := src.Bounds()
	canvas := image.NewNRGBA(b)
	w := b.Dx()
	matched := 0

	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := canvas.PixOffset(b.Min.X, y)
		srow := src.Pix[si : si+w*4 : si+w*4]
		drow := canvas.Pix[di : di+w*4 : di+w*4]
		for i := 0; i < len(srow); i += 4 {
			if imaging.Brightness(srow[i], srow[i+1], srow[i+2]) < threshold {
				drow[i+0] = target.R
				drow[i+1] = target.G
				drow[i+2] = target.B
				drow[i+3] = 255
				matched++
			}
		}
	}
	return canvas, matched
}

// ContentBounds returns the smallest half-open rectangle containing every
// canvas pixel with non-zero alpha. The boolean is false when there is none.
func ContentBounds(canvas *image.NRGBA) (image.Rectangle, bool) {
	b := canvas.Bounds()
	w := b.Dx()

	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := canvas.PixOffset(b.Min.X, y)
		row := canvas.Pix[off : off+w*4 : off+w*4]
		first := -1
		last := -1
		for x := 0; x < w; x++ {
			if row[x*4+3] != 0 {
				if first < 0 {
					first = x
				}
				last = x
			}
		}
		if first < 0 {
			continue
		}
		if y < minY {
			minY = y
		}
		maxY = y
		minX = min(minX, b.Min.X+first)
		maxX = max(maxX, b.Min.X+last)
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
