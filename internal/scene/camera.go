package scene

// Projection identifies the camera projection model.
type Projection string

const (
	// ProjectionPerspective is a perspective camera.
	ProjectionPerspective Projection = "perspective"
	// ProjectionOrthographic is an orthographic camera.
	ProjectionOrthographic Projection = "orthographic"
)

// ValidProjection reports whether the value names a known projection.
func ValidProjection(p Projection) bool {
	switch p {
	case ProjectionPerspective, ProjectionOrthographic:
		return true
	default:
		return false
	}
}

// CameraSpec carries the camera-specific parameters of a camera node.
// A camera node is always registered in both the scene's camera mapping and
// its object mapping under the same identifier.
type CameraSpec struct {
	Projection Projection `json:"projection"`
	LookAt     *Vec3      `json:"lookAt,omitempty"`
	FOV        *float64   `json:"fov,omitempty"`
	Near       *float64   `json:"near,omitempty"`
	Far        *float64   `json:"far,omitempty"`
}

func (c *CameraSpec) clone() *CameraSpec {
	if c == nil {
		return nil
	}
	out := *c
	out.LookAt = cloneVec(c.LookAt)
	if c.FOV != nil {
		fov := *c.FOV
		out.FOV = &fov
	}
	if c.Near != nil {
		near := *c.Near
		out.Near = &near
	}
	if c.Far != nil {
		far := *c.Far
		out.Far = &far
	}
	return &out
}
