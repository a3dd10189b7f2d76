package scene

// Vec3 is a vector of three independent numeric components.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Transform positions a node in its parent's space. Absent fields mean
// "use renderer default" and are never filled in by this package.
type Transform struct {
	Position *Vec3 `json:"position,omitempty"`
	Rotation *Vec3 `json:"rotation,omitempty"`
	Scale    *Vec3 `json:"scale,omitempty"`
}

// Kind identifies the geometry family of a node.
type Kind string

const (
	// KindCube is a box primitive.
	KindCube Kind = "cube"
	// KindSphere is a sphere primitive.
	KindSphere Kind = "sphere"
	// KindCylinder is a cylinder primitive.
	KindCylinder Kind = "cylinder"
	// KindPlane is a flat plane primitive.
	KindPlane Kind = "plane"
	// KindGLTFModel references an external glTF asset by URL.
	KindGLTFModel Kind = "gltf-model"
	// KindCamera is a viewpoint node.
	KindCamera Kind = "camera"
	// KindGroup aggregates embedded component descriptors.
	KindGroup Kind = "group"
	// KindParametric describes a surface by equation string.
	KindParametric Kind = "parametric"
)

// CubeGeometry describes a box primitive. Dimensions default to 1.
type CubeGeometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

func (g *CubeGeometry) normalize() {
	if g.Width <= 0 {
		g.Width = 1
	}
	if g.Height <= 0 {
		g.Height = 1
	}
	if g.Depth <= 0 {
		g.Depth = 1
	}
}

// SphereGeometry describes a sphere primitive. Segments default to 32x16.
type SphereGeometry struct {
	Radius         float64 `json:"radius"`
	WidthSegments  int     `json:"widthSegments"`
	HeightSegments int     `json:"heightSegments"`
}

func (g *SphereGeometry) normalize() {
	if g.Radius <= 0 {
		g.Radius = 1
	}
	if g.WidthSegments <= 0 {
		g.WidthSegments = 32
	}
	if g.HeightSegments <= 0 {
		g.HeightSegments = 16
	}
}

// CylinderGeometry describes a cylinder primitive. Segments default to 32
// radial and 1 height.
type CylinderGeometry struct {
	RadiusTop      float64 `json:"radiusTop"`
	RadiusBottom   float64 `json:"radiusBottom"`
	Height         float64 `json:"height"`
	RadialSegments int     `json:"radialSegments"`
	HeightSegments int     `json:"heightSegments"`
	OpenEnded      bool    `json:"openEnded"`
}

func (g *CylinderGeometry) normalize() {
	if g.RadiusTop <= 0 {
		g.RadiusTop = 1
	}
	if g.RadiusBottom <= 0 {
		g.RadiusBottom = 1
	}
	if g.Height <= 0 {
		g.Height = 1
	}
	if g.RadialSegments <= 0 {
		g.RadialSegments = 32
	}
	if g.HeightSegments <= 0 {
		g.HeightSegments = 1
	}
}

// PlaneGeometry describes a flat plane primitive. Segments default to 1x1.
type PlaneGeometry struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	WidthSegments  int     `json:"widthSegments"`
	HeightSegments int     `json:"heightSegments"`
}

func (g *PlaneGeometry) normalize() {
	if g.Width <= 0 {
		g.Width = 1
	}
	if g.Height <= 0 {
		g.Height = 1
	}
	if g.WidthSegments <= 0 {
		g.WidthSegments = 1
	}
	if g.HeightSegments <= 0 {
		g.HeightSegments = 1
	}
}

// ModelGeometry references an external glTF asset. The URL is stored as an
// opaque string and never fetched.
type ModelGeometry struct {
	URL string `json:"url"`
}

// ParametricGeometry describes a surface by equation string. The equation is
// recorded verbatim and never evaluated. Segments default to 32x32 and
// parameter ranges to [0,1].
type ParametricGeometry struct {
	Equation  string     `json:"equation"`
	USegments int        `json:"uSegments"`
	VSegments int        `json:"vSegments"`
	URange    [2]float64 `json:"uRange"`
	VRange    [2]float64 `json:"vRange"`
}

func (g *ParametricGeometry) normalize() {
	if g.USegments <= 0 {
		g.USegments = 32
	}
	if g.VSegments <= 0 {
		g.VSegments = 32
	}
	if g.URange == [2]float64{} {
		g.URange = [2]float64{0, 1}
	}
	if g.VRange == [2]float64{} {
		g.VRange = [2]float64{0, 1}
	}
}

// GroupComponent is an embedded component descriptor inside a group node.
// Components are opaque child data, not independently addressable nodes.
type GroupComponent struct {
	Kind      Kind           `json:"kind"`
	Geometry  map[string]any `json:"geometry,omitempty"`
	Transform *Transform     `json:"transform,omitempty"`
	Material  *Material      `json:"material,omitempty"`
}

// GroupGeometry holds the ordered component list of a group node.
type GroupGeometry struct {
	Components []GroupComponent `json:"components"`
}

// Geometry carries the kind-specific parameters of a node. Exactly the field
// matching the node's kind is set; camera nodes carry none.
type Geometry struct {
	Cube       *CubeGeometry       `json:"cube,omitempty"`
	Sphere     *SphereGeometry     `json:"sphere,omitempty"`
	Cylinder   *CylinderGeometry   `json:"cylinder,omitempty"`
	Plane      *PlaneGeometry      `json:"plane,omitempty"`
	Model      *ModelGeometry      `json:"model,omitempty"`
	Parametric *ParametricGeometry `json:"parametric,omitempty"`
	Group      *GroupGeometry      `json:"group,omitempty"`
}

// normalize fills documented defaults on whichever geometry is present.
func (g *Geometry) normalize() {
	if g.Cube != nil {
		g.Cube.normalize()
	}
	if g.Sphere != nil {
		g.Sphere.normalize()
	}
	if g.Cylinder != nil {
		g.Cylinder.normalize()
	}
	if g.Plane != nil {
		g.Plane.normalize()
	}
	if g.Parametric != nil {
		g.Parametric.normalize()
	}
}

// Node is an addressable entity in a scene's hierarchy.
//
// ParentID and ChildIDs are kept mutually consistent by every Scene
// operation: a node's parent always lists it as a child and vice versa.
type Node struct {
	ID          string      `json:"id"`
	Kind        Kind        `json:"kind"`
	Geometry    Geometry    `json:"geometry"`
	Transform   Transform   `json:"transform"`
	Material    *Material   `json:"material,omitempty"`
	MaterialRef string      `json:"materialRef,omitempty"`
	Camera      *CameraSpec `json:"camera,omitempty"`
	ParentID    string      `json:"parentId,omitempty"`
	ChildIDs    []string    `json:"childIds,omitempty"`
}

// clone deep-copies a node for snapshots and query payloads.
func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Transform = n.Transform.clone()
	out.Material = n.Material.clone()
	out.Camera = n.Camera.clone()
	if n.ChildIDs != nil {
		out.ChildIDs = append([]string(nil), n.ChildIDs...)
	}
	out.Geometry = n.Geometry.clone()
	return &out
}

func (t Transform) clone() Transform {
	return Transform{
		Position: cloneVec(t.Position),
		Rotation: cloneVec(t.Rotation),
		Scale:    cloneVec(t.Scale),
	}
}

func cloneVec(v *Vec3) *Vec3 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func (g Geometry) clone() Geometry {
	out := g
	if g.Cube != nil {
		cube := *g.Cube
		out.Cube = &cube
	}
	if g.Sphere != nil {
		sphere := *g.Sphere
		out.Sphere = &sphere
	}
	if g.Cylinder != nil {
		cylinder := *g.Cylinder
		out.Cylinder = &cylinder
	}
	if g.Plane != nil {
		plane := *g.Plane
		out.Plane = &plane
	}
	if g.Model != nil {
		model := *g.Model
		out.Model = &model
	}
	if g.Parametric != nil {
		parametric := *g.Parametric
		out.Parametric = &parametric
	}
	if g.Group != nil {
		group := GroupGeometry{Components: append([]GroupComponent(nil), g.Group.Components...)}
		out.Group = &group
	}
	return out
}

// detachChild removes childID from the node's child list, preserving order.
func (n *Node) detachChild(childID string) {
	for i, id := range n.ChildIDs {
		if id == childID {
			n.ChildIDs = append(n.ChildIDs[:i], n.ChildIDs[i+1:]...)
			return
		}
	}
}

// attachChild appends childID to the node's child list if absent.
func (n *Node) attachChild(childID string) {
	for _, id := range n.ChildIDs {
		if id == childID {
			return
		}
	}
	n.ChildIDs = append(n.ChildIDs, childID)
}
