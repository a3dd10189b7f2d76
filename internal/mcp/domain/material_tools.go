package domain

import (
	"context"

	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SetTransformInput represents the MCP tool input for transform updates.
type SetTransformInput struct {
	SceneID  string    `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID string    `json:"object_id" jsonschema:"object to update"`
	Position *VecInput `json:"position,omitempty" jsonschema:"new position; omitted components keep their value"`
	Rotation *VecInput `json:"rotation,omitempty" jsonschema:"new rotation in radians; omitted components keep their value"`
	Scale    *VecInput `json:"scale,omitempty" jsonschema:"new scale; omitted components keep their value"`
}

// SetTransformResult represents the MCP tool output for transform updates.
type SetTransformResult struct {
	Success  bool   `json:"success"`
	SceneID  string `json:"scene_id"`
	ObjectID string `json:"object_id"`
}

// SetTransformTool defines the MCP tool schema for transform updates.
func SetTransformTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_set_transform",
		Description: "Updates an object's position, rotation, or scale. Omitted fields are left unchanged.",
	}
}

// SetTransformHandler executes a transform update request.
func SetTransformHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[SetTransformInput, SetTransformResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetTransformInput) (*mcp.CallToolResult, SetTransformResult, error) {
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, SetTransformResult{}, err
		}
		if err := sc.SetTransform(input.ObjectID, input.Position.toVec(), input.Rotation.toVec(), input.Scale.toVec()); err != nil {
			return nil, SetTransformResult{}, err
		}
		recorder.Record(ctx, "object_set_transform", sc.ID(), input.ObjectID, input)
		return textResult("Updated transform of %q in scene %q", input.ObjectID, sc.ID()),
			SetTransformResult{Success: true, SceneID: sc.ID(), ObjectID: input.ObjectID}, nil
	}
}

// SetMaterialInput represents the MCP tool input for inline material updates.
type SetMaterialInput struct {
	SceneID  string        `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID string        `json:"object_id" jsonschema:"object to update"`
	Material MaterialInput `json:"material" jsonschema:"replacement material description"`
}

// SetMaterialResult represents the MCP tool output for inline material
// updates.
type SetMaterialResult struct {
	Success  bool   `json:"success"`
	SceneID  string `json:"scene_id"`
	ObjectID string `json:"object_id"`
	Style    string `json:"style"`
}

// SetMaterialTool defines the MCP tool schema for inline material updates.
func SetMaterialTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_set_material",
		Description: "Replaces an object's inline material wholesale. A library reference on the object is untouched.",
	}
}

// SetMaterialHandler executes an inline material update request.
func SetMaterialHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[SetMaterialInput, SetMaterialResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetMaterialInput) (*mcp.CallToolResult, SetMaterialResult, error) {
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, SetMaterialResult{}, err
		}
		material, err := input.Material.toMaterial()
		if err != nil {
			return nil, SetMaterialResult{}, err
		}
		if err := sc.SetMaterial(input.ObjectID, material); err != nil {
			return nil, SetMaterialResult{}, err
		}
		recorder.Record(ctx, "object_set_material", sc.ID(), input.ObjectID, input)
		return textResult("Set %s material on %q in scene %q", material.Style, input.ObjectID, sc.ID()),
			SetMaterialResult{Success: true, SceneID: sc.ID(), ObjectID: input.ObjectID, Style: string(material.Style)}, nil
	}
}

// MaterialCreateInput represents the MCP tool input for library material
// creation.
type MaterialCreateInput struct {
	SceneID    string        `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	MaterialID string        `json:"material_id" jsonschema:"identifier in the scene's material library"`
	Material   MaterialInput `json:"material" jsonschema:"material description to store"`
}

// MaterialCreateResult represents the MCP tool output for library material
// creation.
type MaterialCreateResult struct {
	Success    bool   `json:"success"`
	SceneID    string `json:"scene_id"`
	MaterialID string `json:"material_id"`
	Style      string `json:"style"`
}

// MaterialCreateTool defines the MCP tool schema for library material
// creation.
func MaterialCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "material_create",
		Description: "Stores a named material in the scene's library. An existing entry with the same id is replaced.",
	}
}

// MaterialCreateHandler executes a library material creation request.
func MaterialCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[MaterialCreateInput, MaterialCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MaterialCreateInput) (*mcp.CallToolResult, MaterialCreateResult, error) {
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, MaterialCreateResult{}, err
		}
		material, err := input.Material.toMaterial()
		if err != nil {
			return nil, MaterialCreateResult{}, err
		}
		if err := sc.AddLibraryMaterial(input.MaterialID, material); err != nil {
			return nil, MaterialCreateResult{}, err
		}
		recorder.Record(ctx, "material_create", sc.ID(), "", input)
		return textResult("Stored %s material %q in scene %q", material.Style, input.MaterialID, sc.ID()),
			MaterialCreateResult{Success: true, SceneID: sc.ID(), MaterialID: input.MaterialID, Style: string(material.Style)}, nil
	}
}

// MaterialApplyInput represents the MCP tool input for applying a library
// material to an object.
type MaterialApplyInput struct {
	SceneID    string `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID   string `json:"object_id" jsonschema:"object to apply the material to"`
	MaterialID string `json:"material_id" jsonschema:"library material id"`
}

// MaterialApplyResult represents the MCP tool output for applying a library
// material.
type MaterialApplyResult struct {
	Success    bool   `json:"success"`
	SceneID    string `json:"scene_id"`
	ObjectID   string `json:"object_id"`
	MaterialID string `json:"material_id"`
}

// MaterialApplyTool defines the MCP tool schema for applying a library
// material.
func MaterialApplyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "material_apply",
		Description: "Points an object at a library material. Later edits to the library entry are picked up by reference.",
	}
}

// MaterialApplyHandler executes a material application request.
func MaterialApplyHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[MaterialApplyInput, MaterialApplyResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MaterialApplyInput) (*mcp.CallToolResult, MaterialApplyResult, error) {
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, MaterialApplyResult{}, err
		}
		if err := sc.ApplyMaterial(input.ObjectID, input.MaterialID); err != nil {
			return nil, MaterialApplyResult{}, err
		}
		recorder.Record(ctx, "material_apply", sc.ID(), input.ObjectID, input)
		return textResult("Applied material %q to %q in scene %q", input.MaterialID, input.ObjectID, sc.ID()),
			MaterialApplyResult{Success: true, SceneID: sc.ID(), ObjectID: input.ObjectID, MaterialID: input.MaterialID}, nil
	}
}
