// Package server implements the MCP (Model Context Protocol) server for lossless PNG cropping.
//
// This package provides a JSON-RPC 2.0 server that exposes the crop engine
// through the MCP protocol, so MCP-compatible clients can cut regions out of
// PNG files without re-encoding or degrading them.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - png_info: Dimensions, colour model, bit depth and transparency
//   - png_crop: Lossless crop of an x/y/width/height region
//   - png_crop_quadrant: Lossless crop of a named region (top-left, center, etc.)
//   - png_verify: Pixel-for-pixel check of a cropped file against its source
//
// The crop tools return the PNG as base64 unless output_path is given, and
// can attach a scaled preview.
//
// # File Caching
//
// The server keeps raw file bytes in an in-memory cache keyed by path.
// Writing to output_path evicts that path so later calls see the new file.
//
// # Logging
//
// Logs go to the configured apex/log logger, never to stdout, which carries
// protocol traffic only. Tool failures are logged at warn level.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err.Error())
//	}
//	if err := server.New(cfg, log.Log).Run(); err != nil {
//	    log.Fatal(err.Error())
//	}
package server
