package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned (wrapped) by ParseHexColor for any string that is
// not exactly "#RRGGBB".
var ErrInvalidHex = errors.New("invalid hex color")

// ParseHexColor parses a 7-character "#RRGGBB" color string into an opaque
// color.NRGBA.
//
// The format is strict: a leading '#', followed by exactly six hexadecimal
// digits (upper or lower case). Short forms ("#FFF"), alpha suffixes and
// missing '#' are rejected with an error wrapping ErrInvalidHex.
func ParseHexColor(s string) (color.NRGBA, error) {
	if len(s) != 7 {
		return color.NRGBA{}, fmt.Errorf("%w %q: expected 7 characters, got %d", ErrInvalidHex, s, len(s))
	}
	if s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("%w %q: missing leading '#'", ErrInvalidHex, s)
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return color.NRGBA{}, fmt.Errorf("%w %q: non-hex character %q at position %d", ErrInvalidHex, s, s[i], i)
		}
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w %q: %v", ErrInvalidHex, s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Brightness returns the unweighted mean of the three color channels, computed
// with real division so that e.g. (250,250,251) yields 250.333...
func Brightness(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor represents a non-premultiplied RGBA color with 8-bit components.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = fully opaque
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes the color of a single pixel.
//
// Brightness is the same channel average the icon classifier compares
// against its threshold, so sampling a pixel tells the caller directly
// whether it would be treated as content.
type ColorResult struct {
	Hex        string    `json:"hex"`
	RGB        RGBColor  `json:"rgb"`
	RGBA       RGBAColor `json:"rgba"`
	HSL        HSLColor  `json:"hsl"`
	Brightness float64   `json:"brightness"`
}

// SampleColor reads the color at a pixel coordinate.
//
// Coordinates are 0-based with origin at the top-left of the image bounds.
// Channels are reported non-premultiplied, matching what LoadNRGBA produces.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)

	return &ColorResult{
		Hex:        fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		RGB:        RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA:       RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:        toHSL(c.R, c.G, c.B),
		Brightness: math.Round(Brightness(c.R, c.G, c.B)*100) / 100,
	}, nil
}

func toHSL(r, g, b uint8) HSLColor {
	h, s, l := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}.Hsl()
	return HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}
}
