// Package imaging provides the image plumbing used by icon extraction and the
// MCP server.
//
// This package covers loading and normalizing raster files, strict hex color
// parsing, pixel sampling, rectangle margin/clamp arithmetic, cropping,
// bounded nearest-neighbor downscaling, and atomic PNG output. All operations
// work with standard Go image types and use a coordinate system where (0,0) is
// the top-left corner, X increases rightward and Y increases downward.
//
// # Coordinate System
//
// Regions are half-open: Min is inclusive, Max is exclusive, exactly as with
// image.Rectangle. A rectangle (50,50)-(51,51) covers one pixel.
//
// # Pixel Format
//
// LoadNRGBA always returns *image.NRGBA with bounds starting at (0,0). Channels
// are non-premultiplied 8-bit values; images without alpha get A=255.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless and
// may be called concurrently on different images.
//
// # Error Handling
//
// Functions return wrapped errors for:
//   - File I/O errors during loading (fs.ErrNotExist is preserved)
//   - Decode errors for unsupported or corrupt files
//   - Malformed color strings (ErrInvalidHex)
//   - Crop regions outside bounds or with zero area
//   - Encoding, write and rename failures during PNG output
package imaging
