package icon

import (
	"errors"
	"image"
	"image/color"
	"io/fs"

	"github.com/ironsheep/icon-extract/internal/imaging"
)

const (
	// DefaultTargetHex is the color painted onto matched pixels.
	DefaultTargetHex = "#FFB300"

	// DefaultThreshold is the brightness below which a pixel is content.
	DefaultThreshold = 250.0

	// DefaultMargin is the padding, in pixels, kept around the content box.
	DefaultMargin = 20
)

// Options controls a single extraction.
type Options struct {
	// TargetHex is the "#RRGGBB" color given to every matched pixel.
	TargetHex string

	// Threshold is compared against each pixel's channel average; pixels
	// strictly below it are content. Values outside 0-255 are accepted and
	// simply match everything or nothing.
	Threshold float64

	// Margin is added around the content box before cropping, clamped to the
	// image. Negative values are treated as zero.
	Margin int

	// MaxSize, when positive, downscales the cropped icon (nearest neighbor)
	// so that neither side exceeds it.
	MaxSize int
}

// DefaultOptions returns the options used when the caller supplies none.
func DefaultOptions() Options {
	return Options{
		TargetHex: DefaultTargetHex,
		Threshold: DefaultThreshold,
		Margin:    DefaultMargin,
	}
}

// Bounds is a half-open rectangle [X1,X2) x [Y1,Y2) in source pixel
// coordinates.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func boundsOf(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Result describes a successful extraction.
type Result struct {
	// OutputPath is where the icon was written. Empty for ExtractImage.
	OutputPath string `json:"output_path,omitempty"`

	// Width and Height are the dimensions of the produced icon.
	Width  int `json:"width"`
	Height int `json:"height"`

	// ContentBounds is the tight box around matched pixels.
	ContentBounds Bounds `json:"content_bounds"`

	// CropBounds is ContentBounds grown by the margin and clamped.
	CropBounds Bounds `json:"crop_bounds"`

	MatchedPixels int `json:"matched_pixels"`
}

// ExtractImage runs classification, bounding-box detection and the margin
// crop on an in-memory image. Nothing is written.
//
// Errors are *Error with Kind ErrInvalidColorFormat, or *NoContentError.
func ExtractImage(src image.Image, opts Options) (*image.NRGBA, *Result, error) {
	target, err := parseTarget(opts.TargetHex)
	if err != nil {
		return nil, nil, err
	}
	return extract(imaging.ToNRGBA(src), target, opts)
}

// Extract loads the image at inputPath, extracts the icon silhouette and
// writes it as PNG to outputPath.
//
// On success exactly one file is written and the result reports its size.
// On any error nothing is written at outputPath. The returned error matches
// (errors.Is) one of ErrFileNotFound, ErrUnreadableImage,
// ErrInvalidColorFormat, ErrNoContentDetected or ErrWriteFailure.
//
// Extract keeps no state between calls.
func Extract(inputPath, outputPath string, opts Options) (*Result, error) {
	target, err := parseTarget(opts.TargetHex)
	if err != nil {
		return nil, err
	}

	src, _, err := imaging.LoadNRGBA(inputPath)
	if err != nil {
		kind := ErrUnreadableImage
		if errors.Is(err, fs.ErrNotExist) {
			kind = ErrFileNotFound
		}
		return nil, &Error{Op: "load", Path: inputPath, Kind: kind, Err: err}
	}

	out, res, err := extract(src, target, opts)
	if err != nil {
		return nil, err
	}

	if err := imaging.WritePNG(outputPath, out); err != nil {
		return nil, &Error{Op: "write", Path: outputPath, Kind: ErrWriteFailure, Err: err}
	}
	res.OutputPath = outputPath
	return res, nil
}

func parseTarget(hex string) (color.NRGBA, error) {
	c, err := imaging.ParseHexColor(hex)
	if err != nil {
		return color.NRGBA{}, &Error{Op: "parse color", Kind: ErrInvalidColorFormat, Err: err}
	}
	return c, nil
}

func extract(src *image.NRGBA, target color.NRGBA, opts Options) (*image.NRGBA, *Result, error) {
	canvas, matched := Classify(src, target, opts.Threshold)

	content, ok := ContentBounds(canvas)
	if !ok {
		return nil, nil, &NoContentError{
			Threshold: opts.Threshold,
			Analysis:  Analyze(src, opts.Threshold),
		}
	}

	crop := imaging.ExpandRect(content, opts.Margin, canvas.Bounds())
	out, err := imaging.CropNRGBA(canvas, crop)
	if err != nil {
		return nil, nil, err
	}
	out = imaging.FitWithin(out, opts.MaxSize)

	b := out.Bounds()
	return out, &Result{
		Width:         b.Dx(),
		Height:        b.Dy(),
		ContentBounds: boundsOf(content),
		CropBounds:    boundsOf(crop),
		MatchedPixels: matched,
	}, nil
}
