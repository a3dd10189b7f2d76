package domain

import (
	"context"

	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// KeyframeInput describes one keyframe of an animation track.
type KeyframeInput struct {
	Time   float64 `json:"time" jsonschema:"keyframe time in seconds from track start"`
	Value  any     `json:"value" jsonschema:"target property value at this keyframe"`
	Easing string  `json:"easing,omitempty" jsonschema:"easing function name, recorded verbatim"`
}

// AnimationCreateInput represents the MCP tool input for animation creation.
type AnimationCreateInput struct {
	SceneID     string          `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	AnimationID string          `json:"animation_id" jsonschema:"identifier for the new animation"`
	TargetID    string          `json:"target_id" jsonschema:"object the track animates; must exist at creation time"`
	Property    string          `json:"property" jsonschema:"animated property: position, rotation, scale, color, or opacity"`
	Keyframes   []KeyframeInput `json:"keyframes" jsonschema:"ordered keyframes; at least one required"`
	Duration    float64         `json:"duration,omitempty" jsonschema:"track duration in seconds"`
	Loop        bool            `json:"loop,omitempty" jsonschema:"restart the track when it finishes"`
}

// AnimationCreateResult represents the MCP tool output for animation creation.
type AnimationCreateResult struct {
	Success     bool   `json:"success"`
	SceneID     string `json:"scene_id"`
	AnimationID string `json:"animation_id"`
	TargetID    string `json:"target_id"`
	Property    string `json:"property"`
	Keyframes   int    `json:"keyframes"`
}

// AnimationCreateTool defines the MCP tool schema for animation creation.
func AnimationCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "animation_create",
		Description: "Declares a keyframe animation track on an object property. Tracks are stored, not played.",
	}
}

// AnimationCreateHandler executes an animation creation request.
func AnimationCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[AnimationCreateInput, AnimationCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AnimationCreateInput) (*mcp.CallToolResult, AnimationCreateResult, error) {
		sc, err := registry.Resolve(input.SceneID)
		if err != nil {
			return nil, AnimationCreateResult{}, err
		}

		keyframes := make([]scene.Keyframe, 0, len(input.Keyframes))
		for _, keyframe := range input.Keyframes {
			keyframes = append(keyframes, scene.Keyframe{
				Time:   keyframe.Time,
				Value:  keyframe.Value,
				Easing: keyframe.Easing,
			})
		}
		animation := &scene.Animation{
			ID:        input.AnimationID,
			TargetID:  input.TargetID,
			Property:  scene.Property(input.Property),
			Keyframes: keyframes,
			Duration:  input.Duration,
			Loop:      input.Loop,
		}
		if err := sc.AddAnimation(animation); err != nil {
			return nil, AnimationCreateResult{}, err
		}
		recorder.Record(ctx, "animation_create", sc.ID(), input.TargetID, input)

		return textResult("Created %s animation %q on %q in scene %q (%d keyframes)",
				input.Property, input.AnimationID, input.TargetID, sc.ID(), len(keyframes)),
			AnimationCreateResult{
				Success:     true,
				SceneID:     sc.ID(),
				AnimationID: input.AnimationID,
				TargetID:    input.TargetID,
				Property:    input.Property,
				Keyframes:   len(keyframes),
			}, nil
	}
}
