// Package icon extracts a solid-color silhouette from a raster image.
//
// Extraction runs three stages on one image:
//
//  1. Classification: every pixel whose (R+G+B)/3 is strictly below the
//     threshold is painted with the target color at full opacity onto a
//     transparent canvas of the same size.
//  2. Bounding box: the tight half-open rectangle around all painted pixels.
//  3. Margin crop: the box is grown by the margin, clamped to the canvas, and
//     the canvas is cropped to it and written as PNG.
//
// If nothing is painted, Extract returns an error matching
// ErrNoContentDetected and writes nothing. That outcome is expected for a bad
// threshold choice; NoContentError carries an Analysis with a suggested
// threshold.
//
// Every call owns its buffers. Concurrent calls on different images are safe;
// concurrent calls writing the same output path are last-writer-wins.
package icon
