package server

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_save",
		"image_info",
		"image_apply",
		"image_preview",
		"image_sample_color",
		"capture_start",
		"capture_stop",
		"capture_status",
		"capture_snapshot",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("Expected %d tools, got %d", len(expectedTools), len(tools))
	}

	toolNames := make(map[string]bool)
	for _, tool := range tools {
		if toolNames[tool.Name] {
			t.Errorf("Duplicate tool: %s", tool.Name)
		}
		toolNames[tool.Name] = true
	}

	for _, name := range expectedTools {
		if !toolNames[name] {
			t.Errorf("Missing expected tool: %s", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name should not be empty")
			}
			if tool.Description == "" {
				t.Error("Tool description should not be empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("InputSchema should not be nil")
			}

			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema should have 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type should be 'object', got %v", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema should have a 'properties' map")
			}

			// Every required field must be a declared property.
			if required, ok := tool.InputSchema["required"].([]string); ok {
				for _, field := range required {
					if _, ok := props[field]; !ok {
						t.Errorf("required field %q is not a property", field)
					}
				}
			}

			// And every tool executor must know the tool.
			s := newTestServer(t)
			if _, err := s.executeTool(context.Background(), tool.Name, json.RawMessage(`{}`)); err != nil && err.Error() == "unknown tool: "+tool.Name {
				t.Errorf("tool %s is not dispatched", tool.Name)
			}
		})
	}
}

func TestToolDefinitions_RequiredFields(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"image_load", []string{"path"}},
		{"image_save", []string{"path"}},
		{"image_apply", []string{"kind"}},
		{"image_sample_color", []string{"x", "y"}},
	}

	tools := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		tools[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool, ok := tools[tt.tool]
			if !ok {
				t.Fatalf("tool %s not found", tt.tool)
			}
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("required should be []string")
			}
			if !reflect.DeepEqual(required, tt.required) {
				t.Errorf("required: got %v, want %v", required, tt.required)
			}
		})
	}

	for _, name := range []string{"image_info", "image_preview", "capture_start", "capture_stop", "capture_status", "capture_snapshot"} {
		if _, ok := tools[name].InputSchema["required"]; ok {
			t.Errorf("%s should have no required fields", name)
		}
	}
}

func TestToolDefinitions_ApplyKinds(t *testing.T) {
	var apply Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "image_apply" {
			apply = tool
		}
	}

	props := apply.InputSchema["properties"].(map[string]interface{})
	kind := props["kind"].(map[string]interface{})
	enum, ok := kind["enum"].([]string)
	if !ok {
		t.Fatal("kind should have an enum of strings")
	}
	if !reflect.DeepEqual(enum, imaging.Kinds()) {
		t.Errorf("kind enum: got %v, want %v", enum, imaging.Kinds())
	}

	// Every advertised kind must be accepted.
	for _, k := range enum {
		if _, err := (imaging.TransformSpec{Kind: k}).Transform(); err != nil {
			t.Errorf("kind %s rejected with default parameters: %v", k, err)
		}
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	tests := []struct {
		tool        string
		param       string
		wantDefault interface{}
	}{
		{"image_apply", "kernel_size", imaging.DefaultBlurKernel},
		{"image_apply", "low", imaging.DefaultEdgeLow},
		{"image_apply", "high", imaging.DefaultEdgeHigh},
		{"image_apply", "delta", imaging.DefaultBrightnessDx},
		{"image_apply", "commit", true},
		{"capture_snapshot", "load", false},
	}

	tools := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		tools[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool+"/"+tt.param, func(t *testing.T) {
			props := tools[tt.tool].InputSchema["properties"].(map[string]interface{})
			param, ok := props[tt.param].(map[string]interface{})
			if !ok {
				t.Fatalf("parameter %s not found", tt.param)
			}
			if param["default"] != tt.wantDefault {
				t.Errorf("default: got %v, want %v", param["default"], tt.wantDefault)
			}
		})
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: "list-1", Method: "tools/list"})

	if resp.ID != "list-1" {
		t.Errorf("ID: got %v, want list-1", resp.ID)
	}
	if resp.Error != nil {
		t.Errorf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be []Tool")
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("Tool count mismatch: got %d, want %d", len(tools), len(GetToolDefinitions()))
	}

	// The catalogue must survive the wire.
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Result struct {
			Tools []Tool `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Result.Tools) != len(tools) {
		t.Errorf("decoded %d tools, want %d", len(decoded.Result.Tools), len(tools))
	}
}
