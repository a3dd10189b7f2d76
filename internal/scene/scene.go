// Package scene implements the multi-scene registry and the hierarchical
// object graph it stores: nodes, cameras, material libraries, and animation
// tracks, together with the operations that create, query, reparent, and
// delete nodes while preserving structural invariants.
//
// The package records descriptions of geometry, materials, and animations.
// It never computes vertices or pixels, fetches URLs, or evaluates equations.
package scene

import (
	"strings"
	"sync"

	apperrors "github.com/lbruel/sceneforge/internal/platform/errors"
)

// Scene is a named container of nodes, cameras, materials, and animations.
//
// All mutating operations are atomic with respect to each other and to
// reads: a scene carries its own lock granting at most one concurrent
// mutator, and readers never observe a half-applied hierarchy edit.
// Operations on distinct scenes proceed fully in parallel.
type Scene struct {
	id string

	mu             sync.RWMutex
	objects        map[string]*Node
	cameras        map[string]*Node
	materials      map[string]*Material
	animations     map[string]*Animation
	activeCameraID string
}

// NewScene creates an empty scene with the given identifier.
func NewScene(id string) *Scene {
	return &Scene{
		id:         id,
		objects:    make(map[string]*Node),
		cameras:    make(map[string]*Node),
		materials:  make(map[string]*Material),
		animations: make(map[string]*Animation),
	}
}

// ID returns the scene identifier.
func (s *Scene) ID() string {
	return s.id
}

func (s *Scene) objectNotFound(objectID string) error {
	return apperrors.WithMetadata(apperrors.CodeObjectNotFound,
		"object \""+objectID+"\" not found in scene \""+s.id+"\"",
		map[string]string{"scene_id": s.id, "object_id": objectID})
}

// AddNode inserts a node into the scene's object mapping.
//
// If parentID is non-empty the parent must already exist; the check happens
// before any mutation so a failed creation leaves the scene untouched. A
// node id that already exists is overwritten: the old node is first detached
// with non-recursive delete semantics (its children move to its former
// parent) so parent/child consistency survives the overwrite.
func (s *Scene) AddNode(node *Node, parentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addNodeLocked(node, parentID)
}

func (s *Scene) addNodeLocked(node *Node, parentID string) error {
	if node == nil || strings.TrimSpace(node.ID) == "" {
		return apperrors.New(apperrors.CodeObjectIDEmpty, "object id is required")
	}

	var parent *Node
	if parentID != "" {
		if parentID == node.ID {
			return apperrors.New(apperrors.CodeCyclicParent,
				"object \""+node.ID+"\" cannot be its own parent")
		}
		var ok bool
		parent, ok = s.objects[parentID]
		if !ok {
			return apperrors.WithMetadata(apperrors.CodeParentNotFound,
				"parent \""+parentID+"\" not found in scene \""+s.id+"\"",
				map[string]string{"scene_id": s.id, "object_id": parentID})
		}
	}

	if existing, ok := s.objects[node.ID]; ok {
		s.deleteLocked(existing, false)
	}

	node.Geometry.normalize()
	node.ParentID = ""
	s.objects[node.ID] = node
	if parent != nil {
		node.ParentID = parentID
		parent.attachChild(node.ID)
	}
	if node.Camera != nil {
		s.cameras[node.ID] = node
	}
	return nil
}

// AddCamera inserts a camera node, registering it in both the object and
// camera mappings under the same id. When setActive is true the scene's
// active-camera pointer is moved to the new camera. All three effects apply
// together or not at all.
func (s *Scene) AddCamera(node *Node, parentID string, setActive bool) error {
	if node == nil || node.Camera == nil {
		return apperrors.New(apperrors.CodeCameraInvalidKind, "camera parameters are required")
	}
	if !ValidProjection(node.Camera.Projection) {
		return apperrors.New(apperrors.CodeCameraInvalidKind,
			"camera projection must be \"perspective\" or \"orthographic\"")
	}
	node.Kind = KindCamera

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.addNodeLocked(node, parentID); err != nil {
		return err
	}
	if setActive {
		s.activeCameraID = node.ID
	}
	return nil
}

// SetTransform applies a partial transform update: each supplied component
// overwrites the node's value, omitted components are left untouched.
func (s *Scene) SetTransform(objectID string, position, rotation, scale *Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.objects[objectID]
	if !ok {
		return s.objectNotFound(objectID)
	}
	if position != nil {
		node.Transform.Position = position
	}
	if rotation != nil {
		node.Transform.Rotation = rotation
	}
	if scale != nil {
		node.Transform.Scale = scale
	}
	return nil
}

// SetMaterial replaces the node's inline material wholesale.
func (s *Scene) SetMaterial(objectID string, material *Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.objects[objectID]
	if !ok {
		return s.objectNotFound(objectID)
	}
	node.Material = material
	return nil
}

// AddLibraryMaterial inserts a reusable material into the scene's library,
// overwriting any entry with the same id.
func (s *Scene) AddLibraryMaterial(materialID string, material *Material) error {
	if strings.TrimSpace(materialID) == "" {
		return apperrors.New(apperrors.CodeMaterialIDEmpty, "material id is required")
	}
	if material == nil {
		return apperrors.New(apperrors.CodeMaterialIDEmpty, "material descriptor is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials[materialID] = material
	return nil
}

// ApplyMaterial sets a material-by-reference field on the node. The library
// entry must exist. The reference is distinct from the inline material and
// both may coexist.
func (s *Scene) ApplyMaterial(objectID, materialID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.objects[objectID]
	if !ok {
		return s.objectNotFound(objectID)
	}
	if _, ok := s.materials[materialID]; !ok {
		return apperrors.WithMetadata(apperrors.CodeMaterialNotFound,
			"material \""+materialID+"\" not found in scene \""+s.id+"\"",
			map[string]string{"scene_id": s.id, "material_id": materialID})
	}
	node.MaterialRef = materialID
	return nil
}

// LibraryMaterial returns a copy of a material-library entry.
func (s *Scene) LibraryMaterial(materialID string) (*Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	material, ok := s.materials[materialID]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeMaterialNotFound,
			"material \""+materialID+"\" not found in scene \""+s.id+"\"",
			map[string]string{"scene_id": s.id, "material_id": materialID})
	}
	return material.clone(), nil
}

// AddAnimation inserts a keyframe track. The target node must exist at
// creation time; the reference is not re-validated afterwards, so deleting
// the target later leaves the animation dangling but inert.
func (s *Scene) AddAnimation(animation *Animation) error {
	if animation == nil || strings.TrimSpace(animation.ID) == "" {
		return apperrors.New(apperrors.CodeAnimationIDEmpty, "animation id is required")
	}
	if !ValidProperty(animation.Property) {
		return apperrors.New(apperrors.CodeAnimationInvalidProperty,
			"animation property must be one of position, rotation, scale, color, opacity")
	}
	if len(animation.Keyframes) == 0 {
		return apperrors.New(apperrors.CodeAnimationKeyframesMissing,
			"animation requires at least one keyframe")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[animation.TargetID]; !ok {
		return apperrors.WithMetadata(apperrors.CodeAnimationTargetNotFound,
			"animation target \""+animation.TargetID+"\" not found in scene \""+s.id+"\"",
			map[string]string{"scene_id": s.id, "object_id": animation.TargetID})
	}
	s.animations[animation.ID] = animation
	return nil
}

// SetActiveCamera moves the scene's active-camera pointer. The camera must
// be a key of the camera mapping.
func (s *Scene) SetActiveCamera(cameraID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cameras[cameraID]; !ok {
		return apperrors.WithMetadata(apperrors.CodeCameraNotFound,
			"camera \""+cameraID+"\" not found in scene \""+s.id+"\"",
			map[string]string{"scene_id": s.id, "camera_id": cameraID})
	}
	s.activeCameraID = cameraID
	return nil
}

// Object returns a copy of a node by id.
func (s *Scene) Object(objectID string) (*Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.objects[objectID]
	if !ok {
		return nil, s.objectNotFound(objectID)
	}
	return node.clone(), nil
}

// Info is a read-only summary of a scene.
type Info struct {
	SceneID        string           `json:"sceneId"`
	ActiveCameraID string           `json:"activeCameraId,omitempty"`
	ObjectCount    int              `json:"objectCount"`
	CameraCount    int              `json:"cameraCount"`
	MaterialCount  int              `json:"materialCount"`
	AnimationCount int              `json:"animationCount"`
	Objects        map[string]*Node `json:"objects,omitempty"`
	Cameras        map[string]*Node `json:"cameras,omitempty"`
}

// Info returns a consistent snapshot of the scene's summary.
// The object and camera mappings are included only when requested and hold
// deep copies, so callers can never alias live scene state.
func (s *Scene) Info(includeObjects, includeCameras bool) Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := Info{
		SceneID:        s.id,
		ActiveCameraID: s.activeCameraID,
		ObjectCount:    len(s.objects),
		CameraCount:    len(s.cameras),
		MaterialCount:  len(s.materials),
		AnimationCount: len(s.animations),
	}
	if includeObjects {
		info.Objects = make(map[string]*Node, len(s.objects))
		for id, node := range s.objects {
			info.Objects[id] = node.clone()
		}
	}
	if includeCameras {
		info.Cameras = make(map[string]*Node, len(s.cameras))
		for id, node := range s.cameras {
			info.Cameras[id] = node.clone()
		}
	}
	return info
}
