// Package audit records scene mutations in a queryable journal.
package audit

import (
	"context"
	"time"
)

// Event is one recorded mutation. Params holds the JSON-encoded tool
// arguments as received, so the journal can replay what the agent asked for.
type Event struct {
	ID        string    `json:"id"`
	Tool      string    `json:"tool"`
	SceneID   string    `json:"sceneId"`
	ObjectID  string    `json:"objectId,omitempty"`
	Params    string    `json:"params,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Page is one page of journal events, newest first.
type Page struct {
	Events        []Event
	NextPageToken string
}

// Store persists and queries audit events.
//
// Filter strings use AIP-160 syntax over the fields tool, scene_id,
// object_id, and ts, e.g. `tool = "object_delete" AND scene_id = "s1"`.
type Store interface {
	PutEvent(ctx context.Context, event Event) error
	ListEvents(ctx context.Context, pageSize int, pageToken string, filter string) (Page, error)
	Close() error
}
