package scene

// Property identifies the animated node property.
type Property string

const (
	// PropertyPosition animates node position.
	PropertyPosition Property = "position"
	// PropertyRotation animates node rotation.
	PropertyRotation Property = "rotation"
	// PropertyScale animates node scale.
	PropertyScale Property = "scale"
	// PropertyColor animates material color.
	PropertyColor Property = "color"
	// PropertyOpacity animates material opacity.
	PropertyOpacity Property = "opacity"
)

// ValidProperty reports whether the value names an animatable property.
func ValidProperty(p Property) bool {
	switch p {
	case PropertyPosition, PropertyRotation, PropertyScale, PropertyColor, PropertyOpacity:
		return true
	default:
		return false
	}
}

// Keyframe is a single sample on an animation track. Value shape depends on
// the animated property (vector, color, or scalar) and is stored opaquely.
type Keyframe struct {
	Time   float64 `json:"time"`
	Value  any     `json:"value"`
	Easing string  `json:"easing,omitempty"`
}

// Animation is a keyframe track targeting one node property.
//
// The target is validated against the owning scene at creation time only.
// Deleting the target afterwards leaves the animation in place but inert.
type Animation struct {
	ID        string     `json:"id"`
	TargetID  string     `json:"targetId"`
	Property  Property   `json:"property"`
	Keyframes []Keyframe `json:"keyframes"`
	Duration  float64    `json:"duration"`
	Loop      bool       `json:"loop"`
}

func (a *Animation) clone() *Animation {
	if a == nil {
		return nil
	}
	out := *a
	out.Keyframes = append([]Keyframe(nil), a.Keyframes...)
	return &out
}
