package domain

import (
	"context"

	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CameraCreateInput represents the MCP tool input for camera creation.
type CameraCreateInput struct {
	SceneID     string          `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID    string          `json:"object_id" jsonschema:"identifier for the new camera"`
	Projection  string          `json:"projection" jsonschema:"perspective or orthographic"`
	FOV         *float64        `json:"fov,omitempty" jsonschema:"vertical field of view in degrees (perspective only)"`
	Near        *float64        `json:"near,omitempty" jsonschema:"near clipping plane distance"`
	Far         *float64        `json:"far,omitempty" jsonschema:"far clipping plane distance"`
	LookAt      *VecInput       `json:"look_at,omitempty" jsonschema:"point the camera aims at"`
	Transform   *TransformInput `json:"transform,omitempty" jsonschema:"initial transform"`
	ParentID    string          `json:"parent_id,omitempty" jsonschema:"existing parent object id"`
	SetAsActive bool            `json:"set_as_active,omitempty" jsonschema:"make this the scene's active camera"`
}

// CameraCreateResult represents the MCP tool output for camera creation.
type CameraCreateResult struct {
	Success    bool   `json:"success"`
	SceneID    string `json:"scene_id"`
	ObjectID   string `json:"object_id"`
	Projection string `json:"projection"`
	Active     bool   `json:"active"`
}

// CameraCreateTool defines the MCP tool schema for camera creation.
func CameraCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "camera_create",
		Description: "Creates a perspective or orthographic camera, optionally activating it.",
	}
}

// CameraCreateHandler executes a camera creation request. The camera is a
// regular scene object and participates in the hierarchy like any other node.
func CameraCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[CameraCreateInput, CameraCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CameraCreateInput) (*mcp.CallToolResult, CameraCreateResult, error) {
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, CameraCreateResult{}, err
		}

		node := &scene.Node{
			ID:        input.ObjectID,
			Kind:      scene.KindCamera,
			Transform: input.Transform.toTransform(),
			Camera: &scene.CameraSpec{
				Projection: scene.Projection(input.Projection),
				LookAt:     input.LookAt.toVec(),
				FOV:        input.FOV,
				Near:       input.Near,
				Far:        input.Far,
			},
		}
		if err := sc.AddCamera(node, input.ParentID, input.SetAsActive); err != nil {
			return nil, CameraCreateResult{}, err
		}
		recorder.Record(ctx, "camera_create", sc.ID(), node.ID, input)

		activeNote := ""
		if input.SetAsActive {
			activeNote = " and set it active"
		}
		return textResult("Created %s camera %q in scene %q%s%s",
				input.Projection, node.ID, sc.ID(), parentSuffix(input.ParentID), activeNote),
			CameraCreateResult{
				Success:    true,
				SceneID:    sc.ID(),
				ObjectID:   node.ID,
				Projection: input.Projection,
				Active:     input.SetAsActive,
			}, nil
	}
}

// CameraSetActiveInput represents the MCP tool input for camera activation.
type CameraSetActiveInput struct {
	SceneID  string `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID string `json:"object_id" jsonschema:"camera object id to activate"`
}

// CameraSetActiveResult represents the MCP tool output for camera activation.
type CameraSetActiveResult struct {
	Success  bool   `json:"success"`
	SceneID  string `json:"scene_id"`
	ObjectID string `json:"object_id"`
}

// CameraSetActiveTool defines the MCP tool schema for camera activation.
func CameraSetActiveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "camera_set_active",
		Description: "Selects which camera renders the scene. The object must be a camera.",
	}
}

// CameraSetActiveHandler executes a camera activation request.
func CameraSetActiveHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[CameraSetActiveInput, CameraSetActiveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CameraSetActiveInput) (*mcp.CallToolResult, CameraSetActiveResult, error) {
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, CameraSetActiveResult{}, err
		}
		if err := sc.SetActiveCamera(input.ObjectID); err != nil {
			return nil, CameraSetActiveResult{}, err
		}
		recorder.Record(ctx, "camera_set_active", sc.ID(), input.ObjectID, input)
		return textResult("Activated camera %q in scene %q", input.ObjectID, sc.ID()),
			CameraSetActiveResult{Success: true, SceneID: sc.ID(), ObjectID: input.ObjectID}, nil
	}
}
