package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lbruel/sceneforge/internal/audit"
	"github.com/lbruel/sceneforge/internal/mcp/domain"
)

// auditRecorder journals successful mutations. Recording is best-effort: a
// journal write failure is logged, never surfaced to the tool caller.
type auditRecorder struct {
	store audit.Store
	now   func() time.Time
}

// newRecorder wraps an audit store as a domain.Recorder. A nil store yields
// a no-op recorder so tool wiring stays unconditional.
func newRecorder(store audit.Store) domain.Recorder {
	if store == nil {
		return domain.NopRecorder{}
	}
	return &auditRecorder{store: store, now: time.Now}
}

func (r *auditRecorder) Record(ctx context.Context, tool, sceneID, objectID string, params any) {
	encoded, err := json.Marshal(params)
	if err != nil {
		log.Printf("audit: encode %s params: %v", tool, err)
		encoded = nil
	}
	event := audit.Event{
		ID:        uuid.NewString(),
		Tool:      tool,
		SceneID:   sceneID,
		ObjectID:  objectID,
		Params:    string(encoded),
		CreatedAt: r.now().UTC(),
	}
	if err := r.store.PutEvent(ctx, event); err != nil {
		log.Printf("audit: record %s: %v", tool, err)
	}
}
