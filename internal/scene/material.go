package scene

import (
	"encoding/json"
	"fmt"
)

// Style identifies the render style of a material.
type Style string

const (
	// StyleBasic is an unlit flat material.
	StyleBasic Style = "basic"
	// StyleStandard is a PBR metallic-roughness material.
	StyleStandard Style = "standard"
	// StylePhong is a shiny-specular material.
	StylePhong Style = "phong"
	// StylePhysical is an extended PBR material.
	StylePhysical Style = "physical"
	// StyleLambert is a matte diffuse material.
	StyleLambert Style = "lambert"
	// StyleNormal visualises surface normals.
	StyleNormal Style = "normal"
	// StyleDepth visualises depth from the camera.
	StyleDepth Style = "depth"
	// StyleToon is a cel-shaded material.
	StyleToon Style = "toon"
)

// Color is either a string token (e.g. "red", "#ff8800") or an RGB triple.
type Color struct {
	Token string
	RGB   *[3]float64
}

// MarshalJSON encodes the color as a bare string token or a 3-element array.
func (c Color) MarshalJSON() ([]byte, error) {
	if c.RGB != nil {
		return json.Marshal(*c.RGB)
	}
	return json.Marshal(c.Token)
}

// UnmarshalJSON accepts a string token or a 3-element numeric array.
func (c *Color) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		c.Token = token
		c.RGB = nil
		return nil
	}
	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be a string token or an RGB triple")
	}
	c.Token = ""
	c.RGB = &rgb
	return nil
}

// String renders the color for human-readable descriptions.
func (c Color) String() string {
	if c.RGB != nil {
		return fmt.Sprintf("rgb(%g, %g, %g)", c.RGB[0], c.RGB[1], c.RGB[2])
	}
	return c.Token
}

// Material is a reusable named render-style descriptor. Map URLs are opaque
// strings and never fetched.
type Material struct {
	Style        Style          `json:"style"`
	Color        *Color         `json:"color,omitempty"`
	TextureURL   string         `json:"textureUrl,omitempty"`
	NormalMapURL string         `json:"normalMapUrl,omitempty"`
	BumpMapURL   string         `json:"bumpMapUrl,omitempty"`
	RoughnessURL string         `json:"roughnessMapUrl,omitempty"`
	MetalnessURL string         `json:"metalnessMapUrl,omitempty"`
	EmissiveURL  string         `json:"emissiveMapUrl,omitempty"`
	Extra        map[string]any `json:"extra,omitempty"`
}

func (m *Material) clone() *Material {
	if m == nil {
		return nil
	}
	out := *m
	if m.Color != nil {
		color := *m.Color
		if m.Color.RGB != nil {
			rgb := *m.Color.RGB
			color.RGB = &rgb
		}
		out.Color = &color
	}
	if m.Extra != nil {
		out.Extra = make(map[string]any, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}
