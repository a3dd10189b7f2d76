package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lbruel/sceneforge/internal/audit"
	"github.com/lbruel/sceneforge/internal/mcp/domain"
)

type captureAuditStore struct {
	events []audit.Event
	err    error
}

func (c *captureAuditStore) PutEvent(_ context.Context, event audit.Event) error {
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, event)
	return nil
}

func (c *captureAuditStore) ListEvents(context.Context, int, string, string) (audit.Page, error) {
	return audit.Page{}, nil
}

func (c *captureAuditStore) Close() error { return nil }

func TestRecorderJournalsEvent(t *testing.T) {
	store := &captureAuditStore{}
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	recorder := &auditRecorder{store: store, now: func() time.Time { return fixed }}

	recorder.Record(context.Background(), "object_create_cube", "studio", "box", map[string]any{"width": 2})

	if len(store.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(store.events))
	}
	event := store.events[0]
	if event.ID == "" {
		t.Error("event id must be set")
	}
	if event.Tool != "object_create_cube" || event.SceneID != "studio" || event.ObjectID != "box" {
		t.Errorf("unexpected event %+v", event)
	}
	if !strings.Contains(event.Params, `"width":2`) {
		t.Errorf("params not encoded: %q", event.Params)
	}
	if !event.CreatedAt.Equal(fixed) {
		t.Errorf("unexpected timestamp %v", event.CreatedAt)
	}
}

func TestRecorderSwallowsStoreError(t *testing.T) {
	store := &captureAuditStore{err: errors.New("disk full")}
	recorder := &auditRecorder{store: store, now: time.Now}

	// Must not panic or propagate.
	recorder.Record(context.Background(), "scene_create", "studio", "", nil)
}

func TestNewRecorderWithoutStore(t *testing.T) {
	recorder := newRecorder(nil)
	if _, ok := recorder.(domain.NopRecorder); !ok {
		t.Fatalf("expected NopRecorder, got %T", recorder)
	}
}
