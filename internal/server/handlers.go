package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/apex/log"

	"github.com/ironsheep/png-crop/internal/imaging"
	"github.com/ironsheep/png-crop/internal/pngcrop"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "png_info", "png_crop").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithFields(log.Fields{
			"tool": params.Name,
			"id":   req.ID,
		}).WithError(err).Warn("tool execution failed")
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads files from cache as needed
//  4. Calls the appropriate imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "png_info":
		return s.handlePNGInfo(args)
	case "png_crop":
		return s.handlePNGCrop(args)
	case "png_crop_quadrant":
		return s.handlePNGCropQuadrant(args)
	case "png_verify":
		return s.handlePNGVerify(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type pngInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handlePNGInfo(args json.RawMessage) (interface{}, error) {
	var a pngInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Region Operation Handlers ===

// regionArgs is the x/y/width/height block shared by png_crop and png_verify.
type regionArgs struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r regionArgs) rect() (pngcrop.Rect, error) {
	if r.X < 0 || r.Y < 0 || r.Width < 0 || r.Height < 0 {
		return pngcrop.Rect{}, fmt.Errorf("region x=%d y=%d width=%d height=%d has negative values", r.X, r.Y, r.Width, r.Height)
	}
	if int64(r.X) > math.MaxUint32 || int64(r.Y) > math.MaxUint32 || int64(r.Width) > math.MaxUint32 || int64(r.Height) > math.MaxUint32 {
		return pngcrop.Rect{}, fmt.Errorf("region x=%d y=%d width=%d height=%d exceeds 32 bits", r.X, r.Y, r.Width, r.Height)
	}
	return pngcrop.Rect{X: uint32(r.X), Y: uint32(r.Y), W: uint32(r.Width), H: uint32(r.Height)}, nil
}

// outputArgs are the optional output controls shared by the crop tools.
type outputArgs struct {
	OutputPath string  `json:"output_path"`
	Scale      float64 `json:"scale"`
	Filter     string  `json:"filter"`
}

// cropOptions returns the server's crop options with the per-call filter
// override applied last.
func (s *Server) cropOptions(o outputArgs) ([]pngcrop.Option, error) {
	opts := append([]pngcrop.Option(nil), s.opts...)
	if o.Filter != "" {
		f, err := pngcrop.ParseFilterStrategy(o.Filter)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pngcrop.WithFilter(f))
	}
	return opts, nil
}

// deliver writes the cropped PNG to the requested path or inlines it as
// base64 in the result.
func (s *Server) deliver(result *imaging.CropResult, o outputArgs) (*imaging.CropResult, error) {
	if o.OutputPath == "" {
		result.ImageBase64 = base64.StdEncoding.EncodeToString(result.PNG)
		return result, nil
	}
	if err := os.WriteFile(o.OutputPath, result.PNG, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write cropped image: %w", err)
	}
	// A later png_info or png_verify must see the new file, not a stale copy
	s.cache.Evict(o.OutputPath)
	result.OutputPath = o.OutputPath
	s.log.WithFields(log.Fields{
		"path":  o.OutputPath,
		"bytes": result.OutputBytes,
	}).Info("wrote cropped image")
	return result, nil
}

type pngCropArgs struct {
	Path string `json:"path"`
	regionArgs
	outputArgs
}

func (s *Server) handlePNGCrop(args json.RawMessage) (interface{}, error) {
	var a pngCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	r, err := a.rect()
	if err != nil {
		return nil, err
	}
	opts, err := s.cropOptions(a.outputArgs)
	if err != nil {
		return nil, err
	}
	data, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	result, err := imaging.Crop(data, r, a.Scale, opts...)
	if err != nil {
		return nil, err
	}
	return s.deliver(result, a.outputArgs)
}

type pngCropQuadrantArgs struct {
	Path   string `json:"path"`
	Region string `json:"region"`
	outputArgs
}

func (s *Server) handlePNGCropQuadrant(args json.RawMessage) (interface{}, error) {
	var a pngCropQuadrantArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	opts, err := s.cropOptions(a.outputArgs)
	if err != nil {
		return nil, err
	}
	data, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	result, err := imaging.CropQuadrant(data, a.Region, a.Scale, opts...)
	if err != nil {
		return nil, err
	}
	return s.deliver(result, a.outputArgs)
}

// === Analysis Helper Handlers ===

type pngVerifyArgs struct {
	Original string `json:"original"`
	Cropped  string `json:"cropped"`
	regionArgs
}

func (s *Server) handlePNGVerify(args json.RawMessage) (interface{}, error) {
	var a pngVerifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := a.rect()
	if err != nil {
		return nil, err
	}
	original, err := s.cache.Load(a.Original)
	if err != nil {
		return nil, err
	}
	cropped, err := s.cache.Load(a.Cropped)
	if err != nil {
		return nil, err
	}
	return imaging.Verify(original, cropped, r)
}
