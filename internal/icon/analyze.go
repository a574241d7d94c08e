package icon

import (
	"image"
	"math"

	"github.com/ironsheep/icon-extract/internal/imaging"
)

// Analysis summarizes the brightness distribution of an image relative to a
// classification threshold.
type Analysis struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	MinBrightness  float64 `json:"min_brightness"`
	MaxBrightness  float64 `json:"max_brightness"`
	MeanBrightness float64 `json:"mean_brightness"`

	Threshold      float64 `json:"threshold"`
	MatchedPixels  int     `json:"matched_pixels"`
	MatchedPercent float64 `json:"matched_percent"`

	// SuggestedThreshold is the smallest whole-number threshold at which the
	// darkest pixel of the image would be classified as content.
	SuggestedThreshold float64 `json:"suggested_threshold"`
}

// Analyze computes brightness statistics for src and counts how many pixels
// Classify would paint at threshold.
func Analyze(src *image.NRGBA, threshold float64) *Analysis {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	a := &Analysis{Width: w, Height: h, Threshold: threshold}
	if w == 0 || h == 0 {
		return a
	}

	lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := src.PixOffset(b.Min.X, y)
		row := src.Pix[off : off+w*4 : off+w*4]
		for i := 0; i < len(row); i += 4 {
			v := imaging.Brightness(row[i], row[i+1], row[i+2])
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			sum += v
			if v < threshold {
				a.MatchedPixels++
			}
		}
	}

	total := float64(w * h)
	a.MinBrightness = round2(lo)
	a.MaxBrightness = round2(hi)
	a.MeanBrightness = round2(sum / total)
	a.MatchedPercent = round2(float64(a.MatchedPixels) / total * 100)
	a.SuggestedThreshold = math.Floor(lo) + 1
	return a
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
