// Package storage defines persistence interfaces for scene snapshots.
package storage

import (
	"context"
	"errors"

	"github.com/lbruel/sceneforge/internal/scene"
)

// ErrNotFound indicates a requested snapshot is missing.
var ErrNotFound = errors.New("snapshot not found")

// SnapshotInfo summarizes one stored snapshot without loading its full
// object graph into a live scene.
type SnapshotInfo struct {
	SceneID        string `json:"sceneId"`
	ObjectCount    int    `json:"objectCount"`
	CameraCount    int    `json:"cameraCount"`
	MaterialCount  int    `json:"materialCount"`
	AnimationCount int    `json:"animationCount"`
}

// SceneStore persists scene snapshots keyed by scene id.
type SceneStore interface {
	Put(ctx context.Context, snapshot scene.Snapshot) error
	Get(ctx context.Context, sceneID string) (scene.Snapshot, error)
	List(ctx context.Context) ([]SnapshotInfo, error)
	Close() error
}
