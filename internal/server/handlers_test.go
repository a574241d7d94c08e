package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/icon-extract/internal/icon"
	"github.com/ironsheep/icon-extract/internal/imaging"
)

// createTestImageFile writes a white PNG with a black square into t.TempDir.
// The square covers [sq, 2*sq) on both axes; sq=0 gives a plain white image.
func createTestImageFile(t *testing.T, width, height, sq int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			if sq > 0 && x >= sq && x < 2*sq && y >= sq && y < 2*sq {
				c = color.NRGBA{0, 0, 0, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeContent unmarshals the JSON text of a successful tool response into v.
func decodeContent(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
}

func TestHandleToolsCall_IconExtract(t *testing.T) {
	s := newTestServer()
	in := createTestImageFile(t, 100, 100, 30)
	out := filepath.Join(t.TempDir(), "icon.png")

	resp := callTool(t, s, "icon_extract", map[string]interface{}{
		"input_path":  in,
		"output_path": out,
		"target_hex":  "#2196F3",
	})

	var res icon.Result
	decodeContent(t, resp, &res)

	if res.ContentBounds != (icon.Bounds{X1: 30, Y1: 30, X2: 60, Y2: 60}) {
		t.Errorf("ContentBounds: got %+v", res.ContentBounds)
	}
	if res.Width != 70 || res.Height != 70 {
		t.Errorf("size: got %dx%d, want 70x70", res.Width, res.Height)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestHandleToolsCall_IconExtract_ExplicitZeroMargin(t *testing.T) {
	s := newTestServer()
	in := createTestImageFile(t, 100, 100, 30)
	out := filepath.Join(t.TempDir(), "icon.png")

	resp := callTool(t, s, "icon_extract", map[string]interface{}{
		"input_path":  in,
		"output_path": out,
		"margin":      0,
	})

	var res icon.Result
	decodeContent(t, resp, &res)
	if res.Width != 30 || res.Height != 30 {
		t.Errorf("size: got %dx%d, want 30x30", res.Width, res.Height)
	}
}

func TestHandleToolsCall_IconExtract_NoContent(t *testing.T) {
	s := newTestServer()
	in := createTestImageFile(t, 20, 20, 0)
	out := filepath.Join(t.TempDir(), "icon.png")

	resp := callTool(t, s, "icon_extract", map[string]interface{}{
		"input_path":  in,
		"output_path": out,
		"threshold":   0,
	})

	if resp.Error == nil {
		t.Fatal("expected error for white image")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
	if resp.Error.Message != "No content detected" {
		t.Errorf("Error message: got %q", resp.Error.Message)
	}
	a, ok := resp.Error.Data.(*icon.Analysis)
	if !ok {
		t.Fatalf("Error data should be *icon.Analysis, got %T", resp.Error.Data)
	}
	if a.SuggestedThreshold != 256 {
		t.Errorf("SuggestedThreshold: got %v, want 256", a.SuggestedThreshold)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("no output should be written")
	}
}

func TestHandleToolsCall_IconExtract_Failures(t *testing.T) {
	s := newTestServer()
	in := createTestImageFile(t, 20, 20, 5)
	dir := t.TempDir()

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing input", map[string]interface{}{"input_path": filepath.Join(dir, "nope.png"), "output_path": filepath.Join(dir, "a.png")}},
		{"bad color", map[string]interface{}{"input_path": in, "output_path": filepath.Join(dir, "b.png"), "target_hex": "blue"}},
		{"unwritable output", map[string]interface{}{"input_path": in, "output_path": filepath.Join(dir, "x", "c.png")}},
		{"negative margin", map[string]interface{}{"input_path": in, "output_path": filepath.Join(dir, "d.png"), "margin": -3}},
		{"no paths", map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "icon_extract", tt.args)
			if resp.Error == nil {
				t.Fatal("expected error")
			}
			if resp.Error.Message != "Tool execution failed" {
				t.Errorf("Error message: got %q", resp.Error.Message)
			}
		})
	}
}

func TestHandleToolsCall_IconExtract_EvictsOutput(t *testing.T) {
	s := newTestServer()
	in := createTestImageFile(t, 60, 60, 20)
	out := filepath.Join(t.TempDir(), "icon.png")

	if err := imaging.WritePNG(out, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("failed to seed output: %v", err)
	}
	if _, err := s.cache.Load(out); err != nil {
		t.Fatalf("failed to prime cache: %v", err)
	}

	resp := callTool(t, s, "icon_extract", map[string]interface{}{"input_path": in, "output_path": out})
	var res icon.Result
	decodeContent(t, resp, &res)

	var info imaging.ImageInfo
	decodeContent(t, callTool(t, s, "image_load", map[string]interface{}{"path": out}), &info)
	if info.Width != res.Width || info.Height != res.Height {
		t.Errorf("image_load saw %dx%d, want fresh %dx%d", info.Width, info.Height, res.Width, res.Height)
	}
}

func TestHandleToolsCall_IconAnalyze(t *testing.T) {
	s := newTestServer()
	in := createTestImageFile(t, 10, 10, 2)

	var a icon.Analysis
	decodeContent(t, callTool(t, s, "icon_analyze", map[string]interface{}{"path": in}), &a)

	if a.Threshold != 250 {
		t.Errorf("Threshold: got %v, want server default 250", a.Threshold)
	}
	if a.MatchedPixels != 4 {
		t.Errorf("MatchedPixels: got %d, want 4", a.MatchedPixels)
	}
	if a.MinBrightness != 0 || a.MaxBrightness != 255 {
		t.Errorf("brightness range: got %v-%v, want 0-255", a.MinBrightness, a.MaxBrightness)
	}
}

func TestHandleToolsCall_IconAnalyze_ExplicitThreshold(t *testing.T) {
	s := newTestServer()
	in := createTestImageFile(t, 10, 10, 2)

	var a icon.Analysis
	decodeContent(t, callTool(t, s, "icon_analyze", map[string]interface{}{"path": in, "threshold": 0}), &a)
	if a.MatchedPixels != 0 {
		t.Errorf("MatchedPixels: got %d, want 0", a.MatchedPixels)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := newTestServer()
	in := createTestImageFile(t, 100, 80, 0)

	var info imaging.ImageInfo
	decodeContent(t, callTool(t, s, "image_load", map[string]interface{}{"path": in}), &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
}

func TestHandleToolsCall_ImageSampleColor(t *testing.T) {
	s := newTestServer()
	in := createTestImageFile(t, 10, 10, 2)

	var c imaging.ColorResult
	decodeContent(t, callTool(t, s, "image_sample_color", map[string]interface{}{"path": in, "x": 3, "y": 3}), &c)
	if c.Hex != "#000000" || c.Brightness != 0 {
		t.Errorf("got %s brightness %v, want #000000 brightness 0", c.Hex, c.Brightness)
	}

	resp := callTool(t, s, "image_sample_color", map[string]interface{}{"path": in, "x": 10, "y": 0})
	if resp.Error == nil {
		t.Error("expected error for out-of-bounds sample")
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "image_edge_detect", map[string]interface{}{"path": "/x.png"})

	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer()
	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{invalid json}`),
	})

	if resp.Error == nil {
		t.Fatal("expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}
