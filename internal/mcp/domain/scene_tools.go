package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SceneCreateInput represents the MCP tool input for scene creation.
type SceneCreateInput struct {
	SceneID string `json:"scene_id" jsonschema:"identifier for the new scene"`
}

// SceneCreateResult represents the MCP tool output for scene creation.
type SceneCreateResult struct {
	Success bool   `json:"success"`
	SceneID string `json:"scene_id" jsonschema:"created scene identifier"`
	Active  bool   `json:"active" jsonschema:"whether the scene became the active scene"`
}

// SceneCreateTool defines the MCP tool schema for creating scenes.
func SceneCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scene_create",
		Description: "Creates a new empty 3D scene. The first scene created becomes the active scene.",
	}
}

// SceneCreateHandler executes a scene creation request.
func SceneCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[SceneCreateInput, SceneCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SceneCreateInput) (*mcp.CallToolResult, SceneCreateResult, error) {
		created, err := registry.CreateScene(input.SceneID)
		if err != nil {
			return nil, SceneCreateResult{}, err
		}

		active := false
		if activeScene, activeErr := registry.ActiveScene(); activeErr == nil && activeScene == created {
			active = true
		}
		recorder.Record(ctx, "scene_create", created.ID(), "", input)

		result := SceneCreateResult{Success: true, SceneID: created.ID(), Active: active}
		return textResult("Created scene %q", created.ID()), result, nil
	}
}

// SceneSetActiveInput represents the MCP tool input for activating a scene.
type SceneSetActiveInput struct {
	SceneID string `json:"scene_id" jsonschema:"scene to make active"`
}

// SceneSetActiveResult represents the MCP tool output for activating a scene.
type SceneSetActiveResult struct {
	Success bool   `json:"success"`
	SceneID string `json:"scene_id" jsonschema:"active scene identifier"`
}

// SceneSetActiveTool defines the MCP tool schema for activating a scene.
func SceneSetActiveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scene_set_active",
		Description: "Makes an existing scene the active scene used when commands omit a scene id.",
	}
}

// SceneSetActiveHandler executes a scene activation request.
func SceneSetActiveHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[SceneSetActiveInput, SceneSetActiveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SceneSetActiveInput) (*mcp.CallToolResult, SceneSetActiveResult, error) {
		if err := registry.SetActiveScene(input.SceneID); err != nil {
			return nil, SceneSetActiveResult{}, err
		}
		recorder.Record(ctx, "scene_set_active", input.SceneID, "", input)

		result := SceneSetActiveResult{Success: true, SceneID: input.SceneID}
		return textResult("Scene %q is now active", input.SceneID), result, nil
	}
}

// SceneInfoInput represents the MCP tool input for querying a scene.
type SceneInfoInput struct {
	SceneID        string `json:"scene_id,omitempty" jsonschema:"scene to inspect; empty means active scene"`
	IncludeObjects *bool  `json:"include_objects,omitempty" jsonschema:"include the full object mapping (default true)"`
	IncludeCameras *bool  `json:"include_cameras,omitempty" jsonschema:"include the full camera mapping (default true)"`
}

// SceneInfoResult represents the MCP tool output for querying a scene.
type SceneInfoResult struct {
	Success        bool                   `json:"success"`
	SceneID        string                 `json:"scene_id"`
	ActiveCameraID string                 `json:"active_camera_id,omitempty"`
	ObjectCount    int                    `json:"object_count"`
	CameraCount    int                    `json:"camera_count"`
	MaterialCount  int                    `json:"material_count"`
	AnimationCount int                    `json:"animation_count"`
	Objects        map[string]*scene.Node `json:"objects,omitempty"`
	Cameras        map[string]*scene.Node `json:"cameras,omitempty"`
}

// SceneInfoTool defines the MCP tool schema for querying scene state.
func SceneInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scene_get_info",
		Description: "Returns a snapshot of a scene: active camera, counts, and optionally the full object and camera mappings.",
	}
}

// SceneInfoHandler executes a scene query request.
func SceneInfoHandler(registry *scene.Registry) mcp.ToolHandlerFor[SceneInfoInput, SceneInfoResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SceneInfoInput) (*mcp.CallToolResult, SceneInfoResult, error) {
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, SceneInfoResult{}, err
		}

		includeObjects := input.IncludeObjects == nil || *input.IncludeObjects
		includeCameras := input.IncludeCameras == nil || *input.IncludeCameras
		info := sc.Info(includeObjects, includeCameras)

		result := SceneInfoResult{
			Success:        true,
			SceneID:        info.SceneID,
			ActiveCameraID: info.ActiveCameraID,
			ObjectCount:    info.ObjectCount,
			CameraCount:    info.CameraCount,
			MaterialCount:  info.MaterialCount,
			AnimationCount: info.AnimationCount,
			Objects:        info.Objects,
			Cameras:        info.Cameras,
		}
		description := fmt.Sprintf("Scene %q has %d objects and %d cameras", info.SceneID, info.ObjectCount, info.CameraCount)
		if info.ActiveCameraID != "" {
			description += fmt.Sprintf("; active camera %q", info.ActiveCameraID)
		}
		return textResult("%s", description), result, nil
	}
}

// SceneListPayload represents the MCP resource payload for scene listings.
type SceneListPayload struct {
	Scenes []scene.Summary `json:"scenes"`
}

// SceneListResource defines the MCP resource for scene listings.
func SceneListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "scene_list",
		Title:       "Scenes",
		Description: "Readable listing of scenes with object and camera counts",
		MIMEType:    "application/json",
		URI:         "scenes://list",
	}
}

// SceneListResourceHandler returns a readable scene listing resource.
func SceneListResourceHandler(registry *scene.Registry) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := SceneListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		payload := SceneListPayload{Scenes: registry.ListScenes()}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal scene list: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// ActiveSceneResource defines the MCP resource for the active scene snapshot.
func ActiveSceneResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "active_scene",
		Title:       "Active scene",
		Description: "Full snapshot of the currently active scene",
		MIMEType:    "application/json",
		URI:         "scenes://active",
	}
}

// ActiveSceneResourceHandler returns the active scene's snapshot.
func ActiveSceneResourceHandler(registry *scene.Registry) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := ActiveSceneResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		sc, err := registry.ActiveScene()
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(sc.Snapshot(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal active scene: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
