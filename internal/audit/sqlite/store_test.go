package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lbruel/sceneforge/internal/audit"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"))
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

func putEvents(t *testing.T, store *Store, count int) {
	t.Helper()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		tool := "object_create_cube"
		if i%2 == 1 {
			tool = "object_delete"
		}
		event := audit.Event{
			ID:        fmt.Sprintf("evt-%03d", i),
			Tool:      tool,
			SceneID:   "s1",
			ObjectID:  fmt.Sprintf("obj-%03d", i),
			Params:    `{"id":"c1"}`,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.PutEvent(context.Background(), event); err != nil {
			t.Fatalf("put event %d: %v", i, err)
		}
	}
}

func TestPutAndListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	putEvents(t, store, 3)

	page, err := store.ListEvents(context.Background(), 10, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(page.Events))
	}
	if page.Events[0].ID != "evt-002" {
		t.Fatalf("expected newest first, got %q", page.Events[0].ID)
	}
	if page.NextPageToken != "" {
		t.Fatalf("expected no next page token, got %q", page.NextPageToken)
	}
}

func TestListPagination(t *testing.T) {
	store := openTestStore(t)
	putEvents(t, store, 5)

	first, err := store.ListEvents(context.Background(), 2, "", "")
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Events) != 2 || first.NextPageToken == "" {
		t.Fatalf("expected full first page with token, got %d events token %q", len(first.Events), first.NextPageToken)
	}

	second, err := store.ListEvents(context.Background(), 2, first.NextPageToken, "")
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Events) != 2 {
		t.Fatalf("expected 2 events on second page, got %d", len(second.Events))
	}
	if second.Events[0].ID == first.Events[1].ID {
		t.Fatalf("expected pages not to overlap")
	}
}

func TestListPaginationSameTimestamp(t *testing.T) {
	store := openTestStore(t)
	// Rapid tool calls can land in the same millisecond; paging must still
	// visit every event exactly once.
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		event := audit.Event{
			ID:        fmt.Sprintf("evt-%03d", i),
			Tool:      "object_create_cube",
			SceneID:   "s1",
			ObjectID:  fmt.Sprintf("obj-%03d", i),
			CreatedAt: at,
		}
		if err := store.PutEvent(context.Background(), event); err != nil {
			t.Fatalf("put event %d: %v", i, err)
		}
	}

	seen := map[string]bool{}
	token := ""
	for i := 0; i < 4; i++ {
		page, err := store.ListEvents(context.Background(), 1, token, "")
		if err != nil {
			t.Fatalf("page %d: %v", i, err)
		}
		for _, event := range page.Events {
			if seen[event.ID] {
				t.Fatalf("event %q returned twice", event.ID)
			}
			seen[event.ID] = true
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}
	if len(seen) != 3 {
		t.Fatalf("expected to page through all 3 events, got %d", len(seen))
	}
}

func TestListRejectsMalformedPageToken(t *testing.T) {
	store := openTestStore(t)
	putEvents(t, store, 1)

	if _, err := store.ListEvents(context.Background(), 10, "1754049600000", ""); err == nil {
		t.Fatal("expected error for token without a rowid part")
	}
	if _, err := store.ListEvents(context.Background(), 10, "abc:def", ""); err == nil {
		t.Fatal("expected error for non-numeric token")
	}
}

func TestListWithFilter(t *testing.T) {
	store := openTestStore(t)
	putEvents(t, store, 6)

	page, err := store.ListEvents(context.Background(), 10, "", `tool = "object_delete"`)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(page.Events) != 3 {
		t.Fatalf("expected 3 delete events, got %d", len(page.Events))
	}
	for _, event := range page.Events {
		if event.Tool != "object_delete" {
			t.Fatalf("filter leaked event %+v", event)
		}
	}
}

func TestListWithTimestampFilter(t *testing.T) {
	store := openTestStore(t)
	putEvents(t, store, 4)

	filter := `ts >= timestamp("2026-08-01T12:02:00Z")`
	page, err := store.ListEvents(context.Background(), 10, "", filter)
	if err != nil {
		t.Fatalf("list with timestamp filter: %v", err)
	}
	if len(page.Events) != 2 {
		t.Fatalf("expected 2 events at or after cutoff, got %d", len(page.Events))
	}
}

func TestListWithCompoundFilter(t *testing.T) {
	store := openTestStore(t)
	putEvents(t, store, 6)

	filter := `tool = "object_delete" AND object_id = "obj-003"`
	page, err := store.ListEvents(context.Background(), 10, "", filter)
	if err != nil {
		t.Fatalf("list with compound filter: %v", err)
	}
	if len(page.Events) != 1 || page.Events[0].ID != "evt-003" {
		t.Fatalf("expected exactly evt-003, got %+v", page.Events)
	}
}

func TestListRejectsUnknownField(t *testing.T) {
	store := openTestStore(t)
	putEvents(t, store, 1)

	if _, err := store.ListEvents(context.Background(), 10, "", `user = "bob"`); err == nil {
		t.Fatal("expected error for unknown filter field")
	}
}

func TestPutEventValidation(t *testing.T) {
	store := openTestStore(t)

	err := store.PutEvent(context.Background(), audit.Event{ID: "e1", SceneID: "s1", CreatedAt: time.Now()})
	if err == nil {
		t.Fatal("expected error for missing tool name")
	}
}
