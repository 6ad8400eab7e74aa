package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// quadrantRegions are the named regions accepted by png_crop_quadrant.
var quadrantRegions = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func integerProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"description": description,
	}
}

var (
	outputPathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Optional absolute path to write the cropped PNG to. When omitted the PNG is returned as base64",
	}
	scaleProperty = map[string]interface{}{
		"type":        "number",
		"description": "Optional preview scale factor (e.g., 2.0 to double size). The cropped PNG itself is never rescaled. Default 1.0 (no preview)",
		"default":     1.0,
	}
	filterProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"none", "adaptive"},
		"description": "Optional scanline filter for the re-encoded pixels. Default from server configuration",
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "png_info",
			Description: "Read the header of a PNG file and return its dimensions, colour model, bit depth and whether it carries transparency.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the PNG file"),
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "png_crop",
			Description: "Losslessly crop a rectangular region from a PNG. Bit depth, palette and metadata are preserved. Returns the cropped PNG as base64 or writes it to output_path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty("Absolute path to the PNG file"),
					"x":           integerProperty("Left edge X coordinate (0-based)"),
					"y":           integerProperty("Top edge Y coordinate (0-based)"),
					"width":       integerProperty("Width of the region in pixels"),
					"height":      integerProperty("Height of the region in pixels"),
					"output_path": outputPathProperty,
					"scale":       scaleProperty,
					"filter":      filterProperty,
				},
				"required": []string{"path", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "png_crop_quadrant",
			Description: "Losslessly crop a named region of a PNG (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the PNG file"),
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        quadrantRegions,
						"description": "Named region to extract",
					},
					"output_path": outputPathProperty,
					"scale":       scaleProperty,
					"filter":      filterProperty,
				},
				"required": []string{"path", "region"},
			},
		},

		// Analysis Helpers
		{
			Name:        "png_verify",
			Description: "Check that a cropped PNG holds exactly the pixels of a region of the original. Reports mismatched pixel count and the largest CIEDE2000 colour difference.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"original": pathProperty("Absolute path to the original PNG file"),
					"cropped":  pathProperty("Absolute path to the cropped PNG file"),
					"x":        integerProperty("Left edge X coordinate of the region in the original"),
					"y":        integerProperty("Top edge Y coordinate of the region in the original"),
					"width":    integerProperty("Width of the region in pixels"),
					"height":   integerProperty("Height of the region in pixels"),
				},
				"required": []string{"original", "cropped", "x", "y", "width", "height"},
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
