package scene

import (
	"sort"
	"strings"
	"sync"

	apperrors "github.com/lbruel/sceneforge/internal/platform/errors"
)

// Registry owns the mapping from scene identifier to Scene and tracks which
// scene is active. It is an explicit, passed-in object with no hidden global
// state; construct one per process or per request as isolation requires.
type Registry struct {
	mu       sync.RWMutex
	scenes   map[string]*Scene
	activeID string
}

// NewRegistry creates an empty scene registry.
func NewRegistry() *Registry {
	return &Registry{scenes: make(map[string]*Scene)}
}

// CreateScene inserts an empty scene under id. The first created scene
// becomes active; afterwards the active pointer only moves explicitly.
func (r *Registry) CreateScene(id string) (*Scene, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.New(apperrors.CodeSceneIDEmpty, "scene id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenes[id]; ok {
		return nil, apperrors.WithMetadata(apperrors.CodeSceneAlreadyExists,
			"scene \""+id+"\" already exists",
			map[string]string{"scene_id": id})
	}
	sc := NewScene(id)
	r.scenes[id] = sc
	if r.activeID == "" {
		r.activeID = id
	}
	return sc, nil
}

// Scene looks up a scene by id.
func (r *Registry) Scene(id string) (*Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sc, ok := r.scenes[id]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeSceneNotFound,
			"scene \""+id+"\" not found",
			map[string]string{"scene_id": id})
	}
	return sc, nil
}

// Resolve returns the scene for id, or the active scene when id is empty.
func (r *Registry) Resolve(id string) (*Scene, error) {
	if strings.TrimSpace(id) == "" {
		return r.ActiveScene()
	}
	return r.Scene(id)
}

// ActiveScene returns the currently active scene.
func (r *Registry) ActiveScene() (*Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.activeID == "" {
		return nil, apperrors.New(apperrors.CodeNoActiveScene, "no active scene")
	}
	return r.scenes[r.activeID], nil
}

// SetActiveScene moves the active-scene pointer to an existing scene.
func (r *Registry) SetActiveScene(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenes[id]; !ok {
		return apperrors.WithMetadata(apperrors.CodeSceneNotFound,
			"scene \""+id+"\" not found",
			map[string]string{"scene_id": id})
	}
	r.activeID = id
	return nil
}

// Summary describes one registry entry.
type Summary struct {
	SceneID     string `json:"sceneId"`
	ObjectCount int    `json:"objectCount"`
	CameraCount int    `json:"cameraCount"`
	Active      bool   `json:"active"`
}

// ListScenes returns summaries for all scenes, sorted by id.
func (r *Registry) ListScenes() []Summary {
	r.mu.RLock()
	scenes := make([]*Scene, 0, len(r.scenes))
	for _, sc := range r.scenes {
		scenes = append(scenes, sc)
	}
	activeID := r.activeID
	r.mu.RUnlock()

	summaries := make([]Summary, 0, len(scenes))
	for _, sc := range scenes {
		info := sc.Info(false, false)
		summaries = append(summaries, Summary{
			SceneID:     sc.ID(),
			ObjectCount: info.ObjectCount,
			CameraCount: info.CameraCount,
			Active:      sc.ID() == activeID,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].SceneID < summaries[j].SceneID })
	return summaries
}

// Restore inserts a scene rebuilt from a snapshot, replacing any scene with
// the same id. The restored scene becomes active only if no active scene
// exists, mirroring CreateScene.
func (r *Registry) Restore(snapshot Snapshot) (*Scene, error) {
	sc, err := FromSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenes[sc.ID()] = sc
	if r.activeID == "" {
		r.activeID = sc.ID()
	}
	return sc, nil
}
