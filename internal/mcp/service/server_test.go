package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/lbruel/sceneforge/internal/storage"
)

type closableSceneStore struct {
	closed bool
	err    error
}

func (c *closableSceneStore) Put(context.Context, scene.Snapshot) error { return nil }

func (c *closableSceneStore) Get(context.Context, string) (scene.Snapshot, error) {
	return scene.Snapshot{}, storage.ErrNotFound
}

func (c *closableSceneStore) List(context.Context) ([]storage.SnapshotInfo, error) {
	return nil, nil
}

func (c *closableSceneStore) Close() error {
	c.closed = true
	return c.err
}

func TestNewDefaultsRegistry(t *testing.T) {
	server := New(Deps{})
	if server.registry == nil {
		t.Fatal("expected a registry to be created")
	}
	if server.mcpServer == nil {
		t.Fatal("expected an MCP server to be created")
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	server := New(Deps{})
	err := server.Run(context.Background(), Config{Transport: "carrier-pigeon"})
	if err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestCloseReleasesStores(t *testing.T) {
	sceneStore := &closableSceneStore{}
	auditStore := &captureAuditStore{}
	server := New(Deps{SceneStore: sceneStore, AuditStore: auditStore})

	if err := server.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !sceneStore.closed {
		t.Error("scene store not closed")
	}
	// Close is idempotent.
	if err := server.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestCloseSurfacesStoreError(t *testing.T) {
	sceneStore := &closableSceneStore{err: errors.New("locked")}
	server := New(Deps{SceneStore: sceneStore})
	if err := server.Close(); err == nil {
		t.Fatal("expected close error to surface")
	}
}
