package server

import (
	"strings"

	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// noArgs is the schema of a tool without parameters.
func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "image_load",
			Description: "Load an image file (PNG, JPEG, GIF, BMP, TIFF or WebP) as the current image. Replaces any image already loaded.",
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
			Name:        "image_save",
			Description: "Save the current image. The format follows the file extension (.png, .jpg, .jpeg, .gif, .bmp, .tif, .tiff).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the file to write",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Report the current image size, edit version, last parameter error and capture state.",
			InputSchema: noArgs(),
		},

		// Transforms
		{
			Name: "image_apply",
			Description: "Apply one transform to the current image. With commit=false the result is returned as a " +
				"base64 PNG and the current image is left unchanged (filter preview). Kinds: " +
				strings.Join(imaging.Kinds(), ", ") + ".",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kind": map[string]interface{}{
						"type":        "string",
						"description": "Transform to apply",
						"enum":        imaging.Kinds(),
					},
					"kernel_size": map[string]interface{}{
						"type":        "integer",
						"description": "gaussian_blur: odd kernel size >= 3",
						"default":     imaging.DefaultBlurKernel,
					},
					"low": map[string]interface{}{
						"type":        "number",
						"description": "edge_detect: low hysteresis threshold",
						"default":     imaging.DefaultEdgeLow,
					},
					"high": map[string]interface{}{
						"type":        "number",
						"description": "edge_detect: high hysteresis threshold",
						"default":     imaging.DefaultEdgeHigh,
					},
					"delta": map[string]interface{}{
						"type":        "number",
						"description": "brightness: value added to the HSV value channel, 0-255 scale",
						"default":     imaging.DefaultBrightnessDx,
					},
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "brightness_scale/contrast: multiplier >= 0; scale_by: factor in (0, 1] (default: 0.5)",
					},
					"commit": map[string]interface{}{
						"type":        "boolean",
						"description": "Replace the current image with the result",
						"default":     true,
					},
				},
				"required": []string{"kind"},
			},
		},
		{
			Name:        "image_preview",
			Description: "Return a bounded, never-upscaled preview of the current image as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview width (default: configured preview width)",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview height (default: configured preview height)",
					},
				},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel of the current image. Returns hex, RGB, HSL and HSV values.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (column)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (row)",
					},
				},
				"required": []string{"x", "y"},
			},
		},

		// Live capture
		{
			Name:        "capture_start",
			Description: "Open the camera and start the live capture loop. Does nothing if capture is already running.",
			InputSchema: noArgs(),
		},
		{
			Name:        "capture_stop",
			Description: "Stop the live capture loop and release the camera. Does nothing if capture is idle.",
			InputSchema: noArgs(),
		},
		{
			Name:        "capture_status",
			Description: "Report the capture state (idle, starting, running), frames shown and the last camera error.",
			InputSchema: noArgs(),
		},
		{
			Name:        "capture_snapshot",
			Description: "Return the latest live frame preview as base64 PNG. With load=true the frame also becomes the current image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"load": map[string]interface{}{
						"type":        "boolean",
						"description": "Make the frame the current image",
						"default":     false,
					},
				},
			},
		},
	}
}

// handleToolsList returns the tool catalogue.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
