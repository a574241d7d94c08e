package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ironsheep/icon-extract/internal/icon"
	"github.com/ironsheep/icon-extract/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "icon_extract").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// An extraction that finds no content uses the same code with the message
// "No content detected" and the brightness analysis as data, so clients can
// retry with a suggested threshold.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		var nc *icon.NoContentError
		if errors.As(err, &nc) {
			return s.errorResponse(req.ID, -32000, "No content detected", nc.Analysis)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "icon_extract":
		return s.handleIconExtract(args)
	case "icon_analyze":
		return s.handleIconAnalyze(args)
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	if str, ok := data.(string); ok && str == "" {
		data = nil
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Extraction Handlers ===

// Optional numeric fields are pointers so an explicit 0 is not mistaken for
// "use the default".
type iconExtractArgs struct {
	InputPath  string   `json:"input_path"`
	OutputPath string   `json:"output_path"`
	TargetHex  string   `json:"target_hex"`
	Threshold  *float64 `json:"threshold"`
	Margin     *int     `json:"margin"`
	MaxSize    *int     `json:"max_size"`
}

func (s *Server) handleIconExtract(args json.RawMessage) (interface{}, error) {
	var a iconExtractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.InputPath == "" || a.OutputPath == "" {
		return nil, fmt.Errorf("input_path and output_path are required")
	}

	opts := s.defaults
	if a.TargetHex != "" {
		opts.TargetHex = a.TargetHex
	}
	if a.Threshold != nil {
		opts.Threshold = *a.Threshold
	}
	if a.Margin != nil {
		if *a.Margin < 0 {
			return nil, fmt.Errorf("margin must be non-negative, got %d", *a.Margin)
		}
		opts.Margin = *a.Margin
	}
	if a.MaxSize != nil {
		opts.MaxSize = *a.MaxSize
	}

	if s.debug {
		log.Printf("icon_extract %s -> %s color=%s threshold=%g margin=%d",
			a.InputPath, a.OutputPath, opts.TargetHex, opts.Threshold, opts.Margin)
	}

	res, err := icon.Extract(a.InputPath, a.OutputPath, opts)
	if err != nil {
		return nil, err
	}
	s.cache.Evict(a.OutputPath)
	return res, nil
}

type iconAnalyzeArgs struct {
	Path      string   `json:"path"`
	Threshold *float64 `json:"threshold"`
}

func (s *Server) handleIconAnalyze(args json.RawMessage) (interface{}, error) {
	var a iconAnalyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	threshold := s.defaults.Threshold
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return icon.Analyze(imaging.ToNRGBA(img), threshold), nil
}

// === Inspection Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}
