package domain

import (
	"context"

	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SetParentInput represents the MCP tool input for reparenting an object.
type SetParentInput struct {
	SceneID  string `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID string `json:"object_id" jsonschema:"object to move"`
	ParentID string `json:"parent_id,omitempty" jsonschema:"new parent object id; empty detaches to the root"`
}

// SetParentResult represents the MCP tool output for reparenting an object.
type SetParentResult struct {
	Success  bool   `json:"success"`
	SceneID  string `json:"scene_id"`
	ObjectID string `json:"object_id"`
	ParentID string `json:"parent_id,omitempty"`
}

// SetParentTool defines the MCP tool schema for reparenting an object.
func SetParentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_set_parent",
		Description: "Moves an object under a new parent, or detaches it when parent_id is empty. Moves that would create a cycle are rejected.",
	}
}

// SetParentHandler executes a reparent request.
func SetParentHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[SetParentInput, SetParentResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetParentInput) (*mcp.CallToolResult, SetParentResult, error) {
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, SetParentResult{}, err
		}
		if err := sc.SetParent(input.ObjectID, input.ParentID); err != nil {
			return nil, SetParentResult{}, err
		}
		recorder.Record(ctx, "object_set_parent", sc.ID(), input.ObjectID, input)

		result := SetParentResult{Success: true, SceneID: sc.ID(), ObjectID: input.ObjectID, ParentID: input.ParentID}
		if input.ParentID == "" {
			return textResult("Detached %q from its parent in scene %q", input.ObjectID, sc.ID()), result, nil
		}
		return textResult("Moved %q under %q in scene %q", input.ObjectID, input.ParentID, sc.ID()), result, nil
	}
}

// ObjectDeleteInput represents the MCP tool input for object deletion.
type ObjectDeleteInput struct {
	SceneID   string `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID  string `json:"object_id" jsonschema:"object to delete"`
	Recursive *bool  `json:"recursive,omitempty" jsonschema:"also delete the object's descendants (default true)"`
}

// ObjectDeleteResult represents the MCP tool output for object deletion.
type ObjectDeleteResult struct {
	Success   bool   `json:"success"`
	SceneID   string `json:"scene_id"`
	ObjectID  string `json:"object_id"`
	Recursive bool   `json:"recursive"`
}

// ObjectDeleteTool defines the MCP tool schema for object deletion.
func ObjectDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_delete",
		Description: "Deletes an object and, by default, its descendants. With recursive false, children are reattached to the deleted object's parent.",
	}
}

// ObjectDeleteHandler executes an object deletion request.
func ObjectDeleteHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[ObjectDeleteInput, ObjectDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ObjectDeleteInput) (*mcp.CallToolResult, ObjectDeleteResult, error) {
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, ObjectDeleteResult{}, err
		}
		recursive := input.Recursive == nil || *input.Recursive
		if err := sc.Delete(input.ObjectID, recursive); err != nil {
			return nil, ObjectDeleteResult{}, err
		}
		recorder.Record(ctx, "object_delete", sc.ID(), input.ObjectID, input)

		mode := "and reattached its children"
		if recursive {
			mode = "and its descendants"
		}
		return textResult("Deleted %q %s in scene %q", input.ObjectID, mode, sc.ID()),
			ObjectDeleteResult{Success: true, SceneID: sc.ID(), ObjectID: input.ObjectID, Recursive: recursive}, nil
	}
}
