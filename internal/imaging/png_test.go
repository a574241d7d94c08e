package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(1, 1, color.NRGBA{33, 150, 243, 255})

	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}

	got := ToNRGBA(decoded)
	if !bytes.Equal(got.Pix, img.Pix) {
		t.Errorf("pixels changed through PNG round trip")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory should only hold the output, got %d entries", len(entries))
	}
}

func TestWritePNG_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	if err := WritePNG(path, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output was not replaced with a PNG")
	}
}

func TestWritePNG_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "icon.png")

	if err := WritePNG(path, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Fatal("WritePNG should fail when the parent directory is missing")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("no files should be left behind, got %d", len(entries))
	}
}

func TestWritePNG_Deterministic(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}

	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	if err := WritePNG(a, img); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	if err := WritePNG(b, img); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if !bytes.Equal(da, db) {
		t.Error("identical images produced different files")
	}
}
