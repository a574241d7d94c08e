// Package server implements an MCP (Model Context Protocol) server exposing
// icon extraction as tools.
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
//   - icon_extract: Recolor dark pixels, crop to content plus margin, write PNG
//   - icon_analyze: Brightness statistics and a suggested threshold
//   - image_load: Image metadata
//   - image_sample_color: Color and brightness at a pixel
//
// Omitted extraction parameters fall back to the Options passed to New,
// which the CLI fills from ICON_EXTRACT_* environment variables.
//
// # Image Caching
//
// image_load, image_sample_color and icon_analyze share an in-memory cache
// keyed by path. icon_extract always reads its input from disk and evicts its
// output path from the cache after writing.
//
// # Error Handling
//
// Tool failures are JSON-RPC errors with code -32000. The message is
// "No content detected" when extraction matched no pixels (data carries the
// brightness analysis) and "Tool execution failed" otherwise (data carries
// the Go error string).
package server
