package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// decodeFile opens and decodes an image file, returning the decoded image and
// the format name reported by the registered decoder.
//
// Open failures wrap the underlying *os.PathError so callers can test for
// fs.ErrNotExist; decode failures wrap the decoder error.
func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// LoadNRGBA loads an image from disk and normalizes it to a non-premultiplied
// 8-bit RGBA buffer whose bounds start at (0,0).
//
// Formats without an alpha channel (JPEG, opaque PNG) come back with alpha=255
// for every pixel. Paletted images are expanded to full color.
//
// The image is never cached: every call reads the file again and returns a
// buffer owned exclusively by the caller.
//
// Returns:
//   - *image.NRGBA: The normalized pixel buffer.
//   - string: The format name reported by the decoder ("png", "jpeg", ...).
//   - error: Non-nil if the file cannot be opened or decoded.
func LoadNRGBA(path string) (*image.NRGBA, string, error) {
	img, format, err := decodeFile(path)
	if err != nil {
		return nil, "", err
	}
	return ToNRGBA(img), format, nil
}

// ToNRGBA copies img into a non-premultiplied 8-bit RGBA buffer whose bounds
// start at (0,0). The result never aliases img.
func ToNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// The cache backs the server's inspection tools (metadata and pixel sampling),
// where the same file is typically queried many times while a threshold is
// being tuned. Extraction never goes through the cache.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
	format map[string]string
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
		format: make(map[string]string),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (relative vs absolute) result in separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.format[path] = format
	c.mu.Unlock()

	return img, nil
}

// Evict removes a specific image from the cache by its path.
//
// The server evicts an output path after writing an icon to it, so later
// inspection calls see the new file rather than a stale decode.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	delete(c.format, path)
	c.mu.Unlock()
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.format = make(map[string]string)
	c.mu.Unlock()
}

func (c *ImageCache) formatOf(path string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.format[path]
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format reported by the decoder: "png", "jpeg", "gif",
	// "bmp", "tiff". Falls back to the file extension when the decoder
	// name is unavailable.
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := cache.formatOf(path)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
