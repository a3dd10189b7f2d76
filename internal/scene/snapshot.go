package scene

import (
	"sort"
	"strings"

	apperrors "github.com/lbruel/sceneforge/internal/platform/errors"
)

// Snapshot is a self-contained, JSON-serializable copy of a scene, used by
// the snapshot store and the scene_save/scene_load operations.
type Snapshot struct {
	SceneID        string                `json:"sceneId"`
	Objects        map[string]*Node      `json:"objects"`
	CameraIDs      []string              `json:"cameraIds,omitempty"`
	ActiveCameraID string                `json:"activeCameraId,omitempty"`
	Materials      map[string]*Material  `json:"materials,omitempty"`
	Animations     map[string]*Animation `json:"animations,omitempty"`
}

// Snapshot returns a deep copy of the scene's full state.
func (s *Scene) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{
		SceneID:        s.id,
		Objects:        make(map[string]*Node, len(s.objects)),
		ActiveCameraID: s.activeCameraID,
	}
	for id, node := range s.objects {
		snapshot.Objects[id] = node.clone()
	}
	for id := range s.cameras {
		snapshot.CameraIDs = append(snapshot.CameraIDs, id)
	}
	sort.Strings(snapshot.CameraIDs)
	if len(s.materials) > 0 {
		snapshot.Materials = make(map[string]*Material, len(s.materials))
		for id, material := range s.materials {
			snapshot.Materials[id] = material.clone()
		}
	}
	if len(s.animations) > 0 {
		snapshot.Animations = make(map[string]*Animation, len(s.animations))
		for id, animation := range s.animations {
			snapshot.Animations[id] = animation.clone()
		}
	}
	return snapshot
}

// FromSnapshot rebuilds a scene from a snapshot. Camera ids must reference
// objects present in the snapshot, and the active camera, if set, must be
// one of the camera ids.
func FromSnapshot(snapshot Snapshot) (*Scene, error) {
	if strings.TrimSpace(snapshot.SceneID) == "" {
		return nil, apperrors.New(apperrors.CodeSceneIDEmpty, "snapshot scene id is required")
	}

	sc := NewScene(snapshot.SceneID)
	for id, node := range snapshot.Objects {
		copied := node.clone()
		copied.ID = id
		sc.objects[id] = copied
	}
	for _, id := range snapshot.CameraIDs {
		node, ok := sc.objects[id]
		if !ok {
			return nil, apperrors.WithMetadata(apperrors.CodeCameraNotFound,
				"snapshot camera \""+id+"\" has no object entry",
				map[string]string{"scene_id": snapshot.SceneID, "camera_id": id})
		}
		sc.cameras[id] = node
	}
	if snapshot.ActiveCameraID != "" {
		if _, ok := sc.cameras[snapshot.ActiveCameraID]; !ok {
			return nil, apperrors.WithMetadata(apperrors.CodeCameraNotFound,
				"snapshot active camera \""+snapshot.ActiveCameraID+"\" is not a camera",
				map[string]string{"scene_id": snapshot.SceneID, "camera_id": snapshot.ActiveCameraID})
		}
		sc.activeCameraID = snapshot.ActiveCameraID
	}
	for id, material := range snapshot.Materials {
		sc.materials[id] = material.clone()
	}
	for id, animation := range snapshot.Animations {
		copied := animation.clone()
		copied.ID = id
		sc.animations[id] = copied
	}
	return sc, nil
}
