package bbolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/lbruel/sceneforge/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "scenes.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func testSnapshot(t *testing.T) scene.Snapshot {
	t.Helper()
	s := scene.NewScene("s1")
	cube := &scene.Node{ID: "c1", Kind: scene.KindCube, Geometry: scene.Geometry{Cube: &scene.CubeGeometry{}}}
	if err := s.AddNode(cube, ""); err != nil {
		t.Fatalf("add node: %v", err)
	}
	cam := &scene.Node{ID: "cam1", Camera: &scene.CameraSpec{Projection: scene.ProjectionPerspective}}
	if err := s.AddCamera(cam, "", true); err != nil {
		t.Fatalf("add camera: %v", err)
	}
	return s.Snapshot()
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, testSnapshot(t)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SceneID != "s1" {
		t.Fatalf("expected scene id s1, got %q", got.SceneID)
	}
	if got.ActiveCameraID != "cam1" {
		t.Fatalf("expected active camera persisted, got %q", got.ActiveCameraID)
	}
	restored, err := scene.FromSnapshot(got)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if info := restored.Info(false, false); info.ObjectCount != 2 || info.CameraCount != 1 {
		t.Fatalf("expected restored counts, got %+v", info)
	}
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "ghost")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, testSnapshot(t)); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := store.Put(ctx, scene.NewScene("s1").Snapshot()); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Objects) != 0 {
		t.Fatalf("expected overwrite with empty scene, got %d objects", len(got.Objects))
	}
}

func TestListSummarizesSnapshots(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, scene.NewScene("beta").Snapshot()); err != nil {
		t.Fatalf("put beta: %v", err)
	}
	if err := store.Put(ctx, testSnapshot(t)); err != nil {
		t.Fatalf("put s1: %v", err)
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].SceneID != "beta" || infos[1].SceneID != "s1" {
		t.Fatalf("expected snapshots in key order, got %+v", infos)
	}
	if infos[0].ObjectCount != 0 {
		t.Fatalf("expected empty scene summary, got %+v", infos[0])
	}
	if infos[1].ObjectCount != 2 || infos[1].CameraCount != 1 {
		t.Fatalf("expected populated scene summary, got %+v", infos[1])
	}
}

func TestPutRejectsEmptySceneID(t *testing.T) {
	store := openTestStore(t)
	if err := store.Put(context.Background(), scene.Snapshot{}); err == nil {
		t.Fatal("expected error for empty scene id")
	}
}
