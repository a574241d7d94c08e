package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Extraction
		{
			Name:        "icon_extract",
			Description: "Extract a solid-color icon silhouette: pixels whose (R+G+B)/3 is below the threshold are recolored to the target color, everything else becomes transparent, and the result is cropped to the content plus a margin and written as PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image (PNG, JPEG, GIF, BMP, TIFF)",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the PNG to write",
					},
					"target_hex": map[string]interface{}{
						"type":        "string",
						"description": "Icon color as #RRGGBB. Defaults to the server's configured color (#FFB300)",
						"pattern":     "^#[0-9A-Fa-f]{6}$",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Brightness threshold; pixels strictly darker are icon content. Default 250",
					},
					"margin": map[string]interface{}{
						"type":        "integer",
						"description": "Padding in pixels around the content, clamped to the image. Default 20",
						"minimum":     0,
					},
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Optional: downscale so neither side exceeds this many pixels. 0 keeps the cropped size",
						"minimum":     0,
					},
				},
				"required": []string{"input_path", "output_path"},
			},
		},
		{
			Name:        "icon_analyze",
			Description: "Report the brightness range of an image, how many pixels a threshold would classify as icon content, and a suggested threshold.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Threshold to evaluate. Defaults to the server's configured threshold",
					},
				},
				"required": []string{"path"},
			},
		},

		// Inspection
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and alpha support.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color and brightness at a pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
