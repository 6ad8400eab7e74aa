package server

import (
	"encoding/json"
	"testing"
)

func toolsByName() map[string]Tool {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}
	return toolMap
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"png_info",
		"png_crop",
		"png_crop_quadrant",
		"png_verify",
	}

	toolMap := toolsByName()
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(toolMap) != len(tools) {
		t.Error("tool names are not unique")
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required field must be declared
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("InputSchema required should be a string slice")
			}
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("required field %s missing from properties", name)
				}
			}
		})
	}
}

func TestToolDefinitions_CropCoordinates(t *testing.T) {
	toolMap := toolsByName()

	for _, name := range []string{"png_crop", "png_verify"} {
		t.Run(name, func(t *testing.T) {
			props := toolMap[name].InputSchema["properties"].(map[string]interface{})
			for _, coord := range []string{"x", "y", "width", "height"} {
				prop, ok := props[coord].(map[string]interface{})
				if !ok {
					t.Fatalf("%s should have %s property", name, coord)
				}
				if prop["type"] != "integer" {
					t.Errorf("%s type: got %v, want integer", coord, prop["type"])
				}
			}
		})
	}
}

func TestToolDefinitions_CropQuadrantRegions(t *testing.T) {
	props := toolsByName()["png_crop_quadrant"].InputSchema["properties"].(map[string]interface{})
	region := props["region"].(map[string]interface{})

	enum, ok := region["enum"].([]string)
	if !ok {
		t.Fatal("region should have an enum")
	}

	expected := map[string]bool{
		"top-left": true, "top-right": true, "bottom-left": true, "bottom-right": true,
		"top-half": true, "bottom-half": true, "left-half": true, "right-half": true,
		"center": true,
	}
	if len(enum) != len(expected) {
		t.Errorf("got %d regions, want %d", len(enum), len(expected))
	}
	for _, r := range enum {
		if !expected[r] {
			t.Errorf("unexpected region %s", r)
		}
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolMap := toolsByName()

	for _, name := range []string{"png_crop", "png_crop_quadrant"} {
		props := toolMap[name].InputSchema["properties"].(map[string]interface{})
		scale, ok := props["scale"].(map[string]interface{})
		if !ok {
			t.Fatalf("%s should have scale property", name)
		}
		if scale["default"] != 1.0 {
			t.Errorf("%s scale default: got %v, want 1.0", name, scale["default"])
		}
		if _, ok := props["output_path"]; !ok {
			t.Errorf("%s should have output_path property", name)
		}
	}
}

func TestToolDefinitions_JSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Failed to marshal tools: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal tools: %v", err)
	}
	for _, tool := range decoded {
		if _, ok := tool["inputSchema"]; !ok {
			t.Errorf("tool %v missing inputSchema key", tool["name"])
		}
	}
}
