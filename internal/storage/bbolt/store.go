// Package bbolt provides a BoltDB-backed scene snapshot store.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/lbruel/sceneforge/internal/storage"
	"go.etcd.io/bbolt"
)

const sceneBucket = "scenes"

// Store provides a BoltDB-backed snapshot store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put persists a scene snapshot, overwriting any snapshot with the same id.
func (s *Store) Put(ctx context.Context, snapshot scene.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(snapshot.SceneID) == "" {
		return fmt.Errorf("scene id is required")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sceneBucket))
		if bucket == nil {
			return fmt.Errorf("scene bucket is missing")
		}
		return bucket.Put([]byte(snapshot.SceneID), payload)
	})
}

// Get fetches a scene snapshot by id.
func (s *Store) Get(ctx context.Context, sceneID string) (scene.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return scene.Snapshot{}, err
	}
	if s == nil || s.db == nil {
		return scene.Snapshot{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(sceneID) == "" {
		return scene.Snapshot{}, fmt.Errorf("scene id is required")
	}

	var snapshot scene.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sceneBucket))
		if bucket == nil {
			return fmt.Errorf("scene bucket is missing")
		}
		payload := bucket.Get([]byte(sceneID))
		if payload == nil {
			return storage.ErrNotFound
		}
		if err := json.Unmarshal(payload, &snapshot); err != nil {
			return fmt.Errorf("unmarshal snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return scene.Snapshot{}, err
	}

	return snapshot, nil
}

// List summarizes all stored snapshots in key order.
func (s *Store) List(ctx context.Context) ([]storage.SnapshotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var infos []storage.SnapshotInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sceneBucket))
		if bucket == nil {
			return fmt.Errorf("scene bucket is missing")
		}
		return bucket.ForEach(func(key, payload []byte) error {
			var snapshot scene.Snapshot
			if err := json.Unmarshal(payload, &snapshot); err != nil {
				return fmt.Errorf("unmarshal snapshot %q: %w", key, err)
			}
			infos = append(infos, storage.SnapshotInfo{
				SceneID:        string(key),
				ObjectCount:    len(snapshot.Objects),
				CameraCount:    len(snapshot.CameraIDs),
				MaterialCount:  len(snapshot.Materials),
				AnimationCount: len(snapshot.Animations),
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sceneBucket))
		if err != nil {
			return fmt.Errorf("create scene bucket: %w", err)
		}
		return nil
	})
}
