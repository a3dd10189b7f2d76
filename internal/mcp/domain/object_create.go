package domain

import (
	"context"
	"fmt"

	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ObjectCreateResult represents the MCP tool output shared by all object
// creation variants.
type ObjectCreateResult struct {
	Success  bool   `json:"success"`
	SceneID  string `json:"scene_id"`
	ObjectID string `json:"object_id"`
	Kind     string `json:"kind"`
	ParentID string `json:"parent_id,omitempty"`
}

// createObject resolves the scene, attaches transform and material, and
// inserts the node. The parent check inside AddNode runs before any
// mutation, so a failed creation leaves the scene untouched.
func createObject(ctx context.Context, registry *scene.Registry, recorder Recorder, tool string,
	sceneID string, node *scene.Node, parentID string, transform *TransformInput, material *MaterialInput, params any) (ObjectCreateResult, error) {

	sc, err := registry.Resolve(sceneID)
	if err != nil {
		return ObjectCreateResult{}, err
	}
	inline, err := material.toMaterial()
	if err != nil {
		return ObjectCreateResult{}, err
	}
	node.Transform = transform.toTransform()
	node.Material = inline

	if err := sc.AddNode(node, parentID); err != nil {
		return ObjectCreateResult{}, err
	}
	recorder.Record(ctx, tool, sc.ID(), node.ID, params)

	return ObjectCreateResult{
		Success:  true,
		SceneID:  sc.ID(),
		ObjectID: node.ID,
		Kind:     string(node.Kind),
		ParentID: parentID,
	}, nil
}

func parentSuffix(parentID string) string {
	if parentID == "" {
		return ""
	}
	return fmt.Sprintf(" under parent %q", parentID)
}

// CubeCreateInput represents the MCP tool input for cube creation.
type CubeCreateInput struct {
	SceneID   string          `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID  string          `json:"object_id" jsonschema:"identifier for the new object"`
	Width     float64         `json:"width,omitempty" jsonschema:"cube width (default 1)"`
	Height    float64         `json:"height,omitempty" jsonschema:"cube height (default 1)"`
	Depth     float64         `json:"depth,omitempty" jsonschema:"cube depth (default 1)"`
	Transform *TransformInput `json:"transform,omitempty" jsonschema:"initial transform"`
	Material  *MaterialInput  `json:"material,omitempty" jsonschema:"inline material"`
	ParentID  string          `json:"parent_id,omitempty" jsonschema:"existing parent object id"`
}

// CubeCreateTool defines the MCP tool schema for cube creation.
func CubeCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_create_cube",
		Description: "Creates a cube primitive in a scene. Dimensions default to 1.",
	}
}

// CubeCreateHandler executes a cube creation request.
func CubeCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[CubeCreateInput, ObjectCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CubeCreateInput) (*mcp.CallToolResult, ObjectCreateResult, error) {
		node := &scene.Node{
			ID:   input.ObjectID,
			Kind: scene.KindCube,
			Geometry: scene.Geometry{
				Cube: &scene.CubeGeometry{Width: input.Width, Height: input.Height, Depth: input.Depth},
			},
		}
		result, err := createObject(ctx, registry, recorder, "object_create_cube",
			input.SceneID, node, input.ParentID, input.Transform, input.Material, input)
		if err != nil {
			return nil, ObjectCreateResult{}, err
		}
		cube := node.Geometry.Cube
		return textResult("Created cube %q (%gx%gx%g) in scene %q%s",
			result.ObjectID, cube.Width, cube.Height, cube.Depth, result.SceneID, parentSuffix(input.ParentID)), result, nil
	}
}

// SphereCreateInput represents the MCP tool input for sphere creation.
type SphereCreateInput struct {
	SceneID        string          `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID       string          `json:"object_id" jsonschema:"identifier for the new object"`
	Radius         float64         `json:"radius,omitempty" jsonschema:"sphere radius (default 1)"`
	WidthSegments  int             `json:"width_segments,omitempty" jsonschema:"horizontal segment count (default 32)"`
	HeightSegments int             `json:"height_segments,omitempty" jsonschema:"vertical segment count (default 16)"`
	Transform      *TransformInput `json:"transform,omitempty" jsonschema:"initial transform"`
	Material       *MaterialInput  `json:"material,omitempty" jsonschema:"inline material"`
	ParentID       string          `json:"parent_id,omitempty" jsonschema:"existing parent object id"`
}

// SphereCreateTool defines the MCP tool schema for sphere creation.
func SphereCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_create_sphere",
		Description: "Creates a sphere primitive in a scene. Segments default to 32x16.",
	}
}

// SphereCreateHandler executes a sphere creation request.
func SphereCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[SphereCreateInput, ObjectCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SphereCreateInput) (*mcp.CallToolResult, ObjectCreateResult, error) {
		node := &scene.Node{
			ID:   input.ObjectID,
			Kind: scene.KindSphere,
			Geometry: scene.Geometry{
				Sphere: &scene.SphereGeometry{
					Radius:         input.Radius,
					WidthSegments:  input.WidthSegments,
					HeightSegments: input.HeightSegments,
				},
			},
		}
		result, err := createObject(ctx, registry, recorder, "object_create_sphere",
			input.SceneID, node, input.ParentID, input.Transform, input.Material, input)
		if err != nil {
			return nil, ObjectCreateResult{}, err
		}
		return textResult("Created sphere %q (radius %g) in scene %q%s",
			result.ObjectID, node.Geometry.Sphere.Radius, result.SceneID, parentSuffix(input.ParentID)), result, nil
	}
}

// CylinderCreateInput represents the MCP tool input for cylinder creation.
type CylinderCreateInput struct {
	SceneID        string          `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID       string          `json:"object_id" jsonschema:"identifier for the new object"`
	RadiusTop      float64         `json:"radius_top,omitempty" jsonschema:"top radius (default 1)"`
	RadiusBottom   float64         `json:"radius_bottom,omitempty" jsonschema:"bottom radius (default 1)"`
	Height         float64         `json:"height,omitempty" jsonschema:"cylinder height (default 1)"`
	RadialSegments int             `json:"radial_segments,omitempty" jsonschema:"radial segment count (default 32)"`
	HeightSegments int             `json:"height_segments,omitempty" jsonschema:"height segment count (default 1)"`
	OpenEnded      bool            `json:"open_ended,omitempty" jsonschema:"omit top and bottom caps"`
	Transform      *TransformInput `json:"transform,omitempty" jsonschema:"initial transform"`
	Material       *MaterialInput  `json:"material,omitempty" jsonschema:"inline material"`
	ParentID       string          `json:"parent_id,omitempty" jsonschema:"existing parent object id"`
}

// CylinderCreateTool defines the MCP tool schema for cylinder creation.
func CylinderCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_create_cylinder",
		Description: "Creates a cylinder primitive in a scene. Segments default to 32 radial and 1 height.",
	}
}

// CylinderCreateHandler executes a cylinder creation request.
func CylinderCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[CylinderCreateInput, ObjectCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CylinderCreateInput) (*mcp.CallToolResult, ObjectCreateResult, error) {
		node := &scene.Node{
			ID:   input.ObjectID,
			Kind: scene.KindCylinder,
			Geometry: scene.Geometry{
				Cylinder: &scene.CylinderGeometry{
					RadiusTop:      input.RadiusTop,
					RadiusBottom:   input.RadiusBottom,
					Height:         input.Height,
					RadialSegments: input.RadialSegments,
					HeightSegments: input.HeightSegments,
					OpenEnded:      input.OpenEnded,
				},
			},
		}
		result, err := createObject(ctx, registry, recorder, "object_create_cylinder",
			input.SceneID, node, input.ParentID, input.Transform, input.Material, input)
		if err != nil {
			return nil, ObjectCreateResult{}, err
		}
		return textResult("Created cylinder %q (height %g) in scene %q%s",
			result.ObjectID, node.Geometry.Cylinder.Height, result.SceneID, parentSuffix(input.ParentID)), result, nil
	}
}

// PlaneCreateInput represents the MCP tool input for plane creation.
type PlaneCreateInput struct {
	SceneID        string          `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID       string          `json:"object_id" jsonschema:"identifier for the new object"`
	Width          float64         `json:"width,omitempty" jsonschema:"plane width (default 1)"`
	Height         float64         `json:"height,omitempty" jsonschema:"plane height (default 1)"`
	WidthSegments  int             `json:"width_segments,omitempty" jsonschema:"width segment count (default 1)"`
	HeightSegments int             `json:"height_segments,omitempty" jsonschema:"height segment count (default 1)"`
	Transform      *TransformInput `json:"transform,omitempty" jsonschema:"initial transform"`
	Material       *MaterialInput  `json:"material,omitempty" jsonschema:"inline material"`
	ParentID       string          `json:"parent_id,omitempty" jsonschema:"existing parent object id"`
}

// PlaneCreateTool defines the MCP tool schema for plane creation.
func PlaneCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_create_plane",
		Description: "Creates a flat plane primitive in a scene. Segments default to 1x1.",
	}
}

// PlaneCreateHandler executes a plane creation request.
func PlaneCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[PlaneCreateInput, ObjectCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlaneCreateInput) (*mcp.CallToolResult, ObjectCreateResult, error) {
		node := &scene.Node{
			ID:   input.ObjectID,
			Kind: scene.KindPlane,
			Geometry: scene.Geometry{
				Plane: &scene.PlaneGeometry{
					Width:          input.Width,
					Height:         input.Height,
					WidthSegments:  input.WidthSegments,
					HeightSegments: input.HeightSegments,
				},
			},
		}
		result, err := createObject(ctx, registry, recorder, "object_create_plane",
			input.SceneID, node, input.ParentID, input.Transform, input.Material, input)
		if err != nil {
			return nil, ObjectCreateResult{}, err
		}
		plane := node.Geometry.Plane
		return textResult("Created plane %q (%gx%g) in scene %q%s",
			result.ObjectID, plane.Width, plane.Height, result.SceneID, parentSuffix(input.ParentID)), result, nil
	}
}

// ModelCreateInput represents the MCP tool input for glTF model creation.
type ModelCreateInput struct {
	SceneID   string          `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID  string          `json:"object_id" jsonschema:"identifier for the new object"`
	URL       string          `json:"url" jsonschema:"glTF asset URL, stored but never fetched"`
	Transform *TransformInput `json:"transform,omitempty" jsonschema:"initial transform"`
	Material  *MaterialInput  `json:"material,omitempty" jsonschema:"inline material override"`
	ParentID  string          `json:"parent_id,omitempty" jsonschema:"existing parent object id"`
}

// ModelCreateTool defines the MCP tool schema for glTF model creation.
func ModelCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_create_gltf_model",
		Description: "Places a glTF model reference in a scene. The URL is recorded, not downloaded.",
	}
}

// ModelCreateHandler executes a glTF model creation request.
func ModelCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[ModelCreateInput, ObjectCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ModelCreateInput) (*mcp.CallToolResult, ObjectCreateResult, error) {
		node := &scene.Node{
			ID:       input.ObjectID,
			Kind:     scene.KindGLTFModel,
			Geometry: scene.Geometry{Model: &scene.ModelGeometry{URL: input.URL}},
		}
		result, err := createObject(ctx, registry, recorder, "object_create_gltf_model",
			input.SceneID, node, input.ParentID, input.Transform, input.Material, input)
		if err != nil {
			return nil, ObjectCreateResult{}, err
		}
		return textResult("Created glTF model %q from %s in scene %q%s",
			result.ObjectID, input.URL, result.SceneID, parentSuffix(input.ParentID)), result, nil
	}
}

// ParametricCreateInput represents the MCP tool input for parametric surface
// creation.
type ParametricCreateInput struct {
	SceneID   string          `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID  string          `json:"object_id" jsonschema:"identifier for the new object"`
	Equation  string          `json:"equation" jsonschema:"surface equation in u and v, recorded verbatim"`
	USegments int             `json:"u_segments,omitempty" jsonschema:"u segment count (default 32)"`
	VSegments int             `json:"v_segments,omitempty" jsonschema:"v segment count (default 32)"`
	URange    []float64       `json:"u_range,omitempty" jsonschema:"u parameter range [min,max] (default [0,1])"`
	VRange    []float64       `json:"v_range,omitempty" jsonschema:"v parameter range [min,max] (default [0,1])"`
	Transform *TransformInput `json:"transform,omitempty" jsonschema:"initial transform"`
	Material  *MaterialInput  `json:"material,omitempty" jsonschema:"inline material"`
	ParentID  string          `json:"parent_id,omitempty" jsonschema:"existing parent object id"`
}

// ParametricCreateTool defines the MCP tool schema for parametric creation.
func ParametricCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_create_parametric",
		Description: "Creates a parametric surface described by an equation string. The equation is stored, never evaluated.",
	}
}

// ParametricCreateHandler executes a parametric surface creation request.
func ParametricCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[ParametricCreateInput, ObjectCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ParametricCreateInput) (*mcp.CallToolResult, ObjectCreateResult, error) {
		geometry := &scene.ParametricGeometry{
			Equation:  input.Equation,
			USegments: input.USegments,
			VSegments: input.VSegments,
		}
		if len(input.URange) == 2 {
			geometry.URange = [2]float64{input.URange[0], input.URange[1]}
		} else if len(input.URange) != 0 {
			return nil, ObjectCreateResult{}, fmt.Errorf("u_range must have exactly 2 elements")
		}
		if len(input.VRange) == 2 {
			geometry.VRange = [2]float64{input.VRange[0], input.VRange[1]}
		} else if len(input.VRange) != 0 {
			return nil, ObjectCreateResult{}, fmt.Errorf("v_range must have exactly 2 elements")
		}

		node := &scene.Node{
			ID:       input.ObjectID,
			Kind:     scene.KindParametric,
			Geometry: scene.Geometry{Parametric: geometry},
		}
		result, err := createObject(ctx, registry, recorder, "object_create_parametric",
			input.SceneID, node, input.ParentID, input.Transform, input.Material, input)
		if err != nil {
			return nil, ObjectCreateResult{}, err
		}
		return textResult("Created parametric surface %q (%s) in scene %q%s",
			result.ObjectID, input.Equation, result.SceneID, parentSuffix(input.ParentID)), result, nil
	}
}

// GroupComponentInput describes one embedded component of a group.
type GroupComponentInput struct {
	Kind      string          `json:"kind" jsonschema:"component kind (cube, sphere, cylinder, plane, ...)"`
	Geometry  map[string]any  `json:"geometry,omitempty" jsonschema:"raw geometry parameters for the component"`
	Transform *TransformInput `json:"transform,omitempty" jsonschema:"component transform relative to the group"`
	Material  *MaterialInput  `json:"material,omitempty" jsonschema:"component material"`
}

// GroupCreateInput represents the MCP tool input for group creation.
type GroupCreateInput struct {
	SceneID    string                `json:"scene_id,omitempty" jsonschema:"owning scene; empty means active scene"`
	ObjectID   string                `json:"object_id" jsonschema:"identifier for the new group"`
	Components []GroupComponentInput `json:"components" jsonschema:"ordered embedded component descriptors"`
	Transform  *TransformInput       `json:"transform,omitempty" jsonschema:"group transform"`
	Material   *MaterialInput        `json:"material,omitempty" jsonschema:"group-level material"`
	ParentID   string                `json:"parent_id,omitempty" jsonschema:"existing parent object id"`
}

// GroupCreateTool defines the MCP tool schema for group creation.
func GroupCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_create_group",
		Description: "Creates a compound object from embedded component descriptors. Components are opaque child data, not addressable nodes.",
	}
}

// GroupCreateHandler executes a group creation request.
func GroupCreateHandler(registry *scene.Registry, recorder Recorder) mcp.ToolHandlerFor[GroupCreateInput, ObjectCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GroupCreateInput) (*mcp.CallToolResult, ObjectCreateResult, error) {
		components := make([]scene.GroupComponent, 0, len(input.Components))
		for i, component := range input.Components {
			material, err := component.Material.toMaterial()
			if err != nil {
				return nil, ObjectCreateResult{}, fmt.Errorf("component %d: %w", i, err)
			}
			transform := component.Transform.toTransform()
			entry := scene.GroupComponent{
				Kind:     scene.Kind(component.Kind),
				Geometry: component.Geometry,
				Material: material,
			}
			if component.Transform != nil {
				entry.Transform = &transform
			}
			components = append(components, entry)
		}

		node := &scene.Node{
			ID:       input.ObjectID,
			Kind:     scene.KindGroup,
			Geometry: scene.Geometry{Group: &scene.GroupGeometry{Components: components}},
		}
		result, err := createObject(ctx, registry, recorder, "object_create_group",
			input.SceneID, node, input.ParentID, input.Transform, input.Material, input)
		if err != nil {
			return nil, ObjectCreateResult{}, err
		}
		return textResult("Created group %q with %d components in scene %q%s",
			result.ObjectID, len(components), result.SceneID, parentSuffix(input.ParentID)), result, nil
	}
}
