package domain

import (
	"context"
	"fmt"

	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Recorder records successful mutations in the audit journal. Recording is
// best-effort and must never fail the operation being recorded.
type Recorder interface {
	Record(ctx context.Context, tool, sceneID, objectID string, params any)
}

// NopRecorder discards all events.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, string, string, string, any) {}

// VecInput is a 3-component vector tool argument.
type VecInput struct {
	X float64 `json:"x" jsonschema:"x component"`
	Y float64 `json:"y" jsonschema:"y component"`
	Z float64 `json:"z" jsonschema:"z component"`
}

func (v *VecInput) toVec() *scene.Vec3 {
	if v == nil {
		return nil
	}
	return &scene.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// TransformInput carries optional position/rotation/scale arguments.
// Omitted components fall back to renderer defaults.
type TransformInput struct {
	Position *VecInput `json:"position,omitempty" jsonschema:"position vector"`
	Rotation *VecInput `json:"rotation,omitempty" jsonschema:"rotation in radians"`
	Scale    *VecInput `json:"scale,omitempty" jsonschema:"scale factors"`
}

func (t *TransformInput) toTransform() scene.Transform {
	if t == nil {
		return scene.Transform{}
	}
	return scene.Transform{
		Position: t.Position.toVec(),
		Rotation: t.Rotation.toVec(),
		Scale:    t.Scale.toVec(),
	}
}

// MaterialInput describes an inline material argument.
type MaterialInput struct {
	Style        string         `json:"style,omitempty" jsonschema:"render style: basic, standard, phong, physical, lambert, normal, depth, or toon"`
	Color        any            `json:"color,omitempty" jsonschema:"color token string or [r,g,b] triple"`
	TextureURL   string         `json:"texture_url,omitempty" jsonschema:"diffuse texture URL"`
	NormalMapURL string         `json:"normal_map_url,omitempty" jsonschema:"normal map URL"`
	BumpMapURL   string         `json:"bump_map_url,omitempty" jsonschema:"bump map URL"`
	RoughnessURL string         `json:"roughness_map_url,omitempty" jsonschema:"roughness map URL"`
	MetalnessURL string         `json:"metalness_map_url,omitempty" jsonschema:"metalness map URL"`
	EmissiveURL  string         `json:"emissive_map_url,omitempty" jsonschema:"emissive map URL"`
	Extra        map[string]any `json:"extra,omitempty" jsonschema:"free-form extra material properties"`
}

func (m *MaterialInput) toMaterial() (*scene.Material, error) {
	if m == nil {
		return nil, nil
	}
	style := scene.Style(m.Style)
	if style == "" {
		style = scene.StyleStandard
	}
	color, err := parseColor(m.Color)
	if err != nil {
		return nil, err
	}
	return &scene.Material{
		Style:        style,
		Color:        color,
		TextureURL:   m.TextureURL,
		NormalMapURL: m.NormalMapURL,
		BumpMapURL:   m.BumpMapURL,
		RoughnessURL: m.RoughnessURL,
		MetalnessURL: m.MetalnessURL,
		EmissiveURL:  m.EmissiveURL,
		Extra:        m.Extra,
	}, nil
}

// parseColor accepts a string token or a 3-element numeric array.
func parseColor(value any) (*scene.Color, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return &scene.Color{Token: v}, nil
	case []any:
		if len(v) != 3 {
			return nil, fmt.Errorf("color array must have exactly 3 components")
		}
		var rgb [3]float64
		for i, component := range v {
			number, ok := component.(float64)
			if !ok {
				return nil, fmt.Errorf("color component %d must be a number", i)
			}
			rgb[i] = number
		}
		return &scene.Color{RGB: &rgb}, nil
	default:
		return nil, fmt.Errorf("color must be a string token or an RGB triple")
	}
}

// textResult wraps a human-readable description of the mutation performed.
// The typed result struct supplies the structured content alongside it.
func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}
