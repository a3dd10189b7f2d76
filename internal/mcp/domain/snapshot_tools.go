package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/lbruel/sceneforge/internal/platform/errors"
	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/lbruel/sceneforge/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SceneSaveInput represents the MCP tool input for saving a scene snapshot.
type SceneSaveInput struct {
	SceneID string `json:"scene_id,omitempty" jsonschema:"scene to save; empty means active scene"`
}

// SceneSaveResult represents the MCP tool output for saving a scene snapshot.
type SceneSaveResult struct {
	Success     bool   `json:"success"`
	SceneID     string `json:"scene_id"`
	ObjectCount int    `json:"object_count"`
}

// SceneSaveTool defines the MCP tool schema for saving a scene snapshot.
func SceneSaveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scene_save",
		Description: "Persists a point-in-time snapshot of a scene. A previous snapshot with the same scene id is replaced.",
	}
}

// SceneSaveHandler executes a scene save request.
func SceneSaveHandler(registry *scene.Registry, store storage.SceneStore, recorder Recorder) mcp.ToolHandlerFor[SceneSaveInput, SceneSaveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SceneSaveInput) (*mcp.CallToolResult, SceneSaveResult, error) {
		if store == nil {
			return nil, SceneSaveResult{}, apperrors.New(apperrors.CodeStorageUnconfigured, "snapshot storage is not configured")
		}
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, SceneSaveResult{}, err
		}
		snapshot := sc.Snapshot()
		if err := store.Put(ctx, snapshot); err != nil {
			return nil, SceneSaveResult{}, apperrors.Wrap(apperrors.CodeUnknown, "save snapshot", err)
		}
		recorder.Record(ctx, "scene_save", sc.ID(), "", input)
		return textResult("Saved scene %q (%d objects)", sc.ID(), len(snapshot.Objects)),
			SceneSaveResult{Success: true, SceneID: sc.ID(), ObjectCount: len(snapshot.Objects)}, nil
	}
}

// SceneLoadInput represents the MCP tool input for loading a scene snapshot.
type SceneLoadInput struct {
	SceneID string `json:"scene_id" jsonschema:"scene id of the snapshot to load"`
}

// SceneLoadResult represents the MCP tool output for loading a scene
// snapshot.
type SceneLoadResult struct {
	Success     bool   `json:"success"`
	SceneID     string `json:"scene_id"`
	ObjectCount int    `json:"object_count"`
	CameraCount int    `json:"camera_count"`
}

// SceneLoadTool defines the MCP tool schema for loading a scene snapshot.
func SceneLoadTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scene_load",
		Description: "Restores a saved snapshot into the registry, replacing any in-memory scene with the same id.",
	}
}

// SceneLoadHandler executes a scene load request.
func SceneLoadHandler(registry *scene.Registry, store storage.SceneStore, recorder Recorder) mcp.ToolHandlerFor[SceneLoadInput, SceneLoadResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SceneLoadInput) (*mcp.CallToolResult, SceneLoadResult, error) {
		if store == nil {
			return nil, SceneLoadResult{}, apperrors.New(apperrors.CodeStorageUnconfigured, "snapshot storage is not configured")
		}
		snapshot, err := store.Get(ctx, input.SceneID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, SceneLoadResult{}, apperrors.WithMetadata(apperrors.CodeSnapshotNotFound,
					"snapshot not found", map[string]string{"scene_id": input.SceneID})
			}
			return nil, SceneLoadResult{}, apperrors.Wrap(apperrors.CodeUnknown, "load snapshot", err)
		}
		sc, err := registry.Restore(snapshot)
		if err != nil {
			return nil, SceneLoadResult{}, err
		}
		recorder.Record(ctx, "scene_load", sc.ID(), "", input)

		info := sc.Info(false, false)
		return textResult("Loaded scene %q (%d objects, %d cameras)", sc.ID(), info.ObjectCount, info.CameraCount),
			SceneLoadResult{
				Success:     true,
				SceneID:     sc.ID(),
				ObjectCount: info.ObjectCount,
				CameraCount: info.CameraCount,
			}, nil
	}
}

// SavedScenesPayload represents the MCP resource payload for stored
// snapshot summaries.
type SavedScenesPayload struct {
	Snapshots []storage.SnapshotInfo `json:"snapshots"`
}

// SavedScenesResource defines the MCP resource for stored snapshots.
func SavedScenesResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "saved_scenes",
		Title:       "Saved scenes",
		Description: "Readable listing of persisted scene snapshots with object and camera counts",
		MIMEType:    "application/json",
		URI:         "scenes://saved",
	}
}

// SavedScenesResourceHandler returns a readable listing of stored snapshots.
func SavedScenesResourceHandler(store storage.SceneStore) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := SavedScenesResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		if store == nil {
			return nil, apperrors.New(apperrors.CodeStorageUnconfigured, "snapshot storage is not configured")
		}
		infos, err := store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}

		data, err := json.MarshalIndent(SavedScenesPayload{Snapshots: infos}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal saved scenes: %w", err)
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
