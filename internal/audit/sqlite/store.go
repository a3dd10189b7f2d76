// Package sqlite provides a SQLite-backed audit journal.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lbruel/sceneforge/internal/audit"
	"github.com/lbruel/sceneforge/internal/audit/sqlite/migrations"
	"github.com/lbruel/sceneforge/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store persists audit events in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite audit store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutEvent appends one audit event.
func (s *Store) PutEvent(ctx context.Context, event audit.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(event.ID) == "" {
		return fmt.Errorf("event id is required")
	}
	if strings.TrimSpace(event.Tool) == "" {
		return fmt.Errorf("tool name is required")
	}
	if strings.TrimSpace(event.SceneID) == "" {
		return fmt.Errorf("scene id is required")
	}
	if event.CreatedAt.IsZero() {
		return fmt.Errorf("created at is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO audit_events (id, tool, scene_id, object_id, params, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`,
		strings.TrimSpace(event.ID),
		strings.TrimSpace(event.Tool),
		strings.TrimSpace(event.SceneID),
		strings.TrimSpace(event.ObjectID),
		event.Params,
		toMillis(event.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put audit event: %w", err)
	}
	return nil
}

// pageCursor is the pagination position: the created-at millis and rowid of
// the previous page's last event. The rowid tiebreak keeps events sharing a
// millisecond from being skipped between pages.
type pageCursor struct {
	createdAt int64
	rowID     int64
}

func (c pageCursor) encode() string {
	return strconv.FormatInt(c.createdAt, 10) + ":" + strconv.FormatInt(c.rowID, 10)
}

func decodePageCursor(token string) (pageCursor, error) {
	millisPart, rowPart, ok := strings.Cut(strings.TrimSpace(token), ":")
	if !ok {
		return pageCursor{}, fmt.Errorf("invalid page token")
	}
	createdAt, err := strconv.ParseInt(millisPart, 10, 64)
	if err != nil {
		return pageCursor{}, fmt.Errorf("invalid page token")
	}
	rowID, err := strconv.ParseInt(rowPart, 10, 64)
	if err != nil {
		return pageCursor{}, fmt.Errorf("invalid page token")
	}
	return pageCursor{createdAt: createdAt, rowID: rowID}, nil
}

// ListEvents returns a page of audit events, newest first. The page token
// encodes the (created_at, rowid) cursor of the previous page's last event.
// The filter string uses AIP-160 syntax over tool, scene_id, object_id, and
// ts.
func (s *Store) ListEvents(ctx context.Context, pageSize int, pageToken string, filter string) (audit.Page, error) {
	if err := ctx.Err(); err != nil {
		return audit.Page{}, err
	}
	if s == nil || s.sqlDB == nil {
		return audit.Page{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return audit.Page{}, fmt.Errorf("page size must be greater than zero")
	}

	condition, err := parseEventFilter(filter)
	if err != nil {
		return audit.Page{}, err
	}

	query := "SELECT rowid, id, tool, scene_id, object_id, params, created_at FROM audit_events"
	var clauses []string
	var params []any
	if condition.Clause != "" {
		clauses = append(clauses, condition.Clause)
		params = append(params, condition.Params...)
	}
	if strings.TrimSpace(pageToken) != "" {
		cursor, err := decodePageCursor(pageToken)
		if err != nil {
			return audit.Page{}, err
		}
		clauses = append(clauses, "(created_at < ? OR (created_at = ? AND rowid < ?))")
		params = append(params, cursor.createdAt, cursor.createdAt, cursor.rowID)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	params = append(params, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return audit.Page{}, fmt.Errorf("list audit events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []audit.Event
	var rowIDs []int64
	for rows.Next() {
		var event audit.Event
		var rowID, createdAt int64
		if err := rows.Scan(&rowID, &event.ID, &event.Tool, &event.SceneID, &event.ObjectID, &event.Params, &createdAt); err != nil {
			return audit.Page{}, fmt.Errorf("scan audit event: %w", err)
		}
		event.CreatedAt = fromMillis(createdAt)
		events = append(events, event)
		rowIDs = append(rowIDs, rowID)
	}
	if err := rows.Err(); err != nil {
		return audit.Page{}, fmt.Errorf("iterate audit events: %w", err)
	}

	page := audit.Page{Events: events}
	if len(events) > pageSize {
		page.Events = events[:pageSize]
		last := page.Events[pageSize-1]
		cursor := pageCursor{createdAt: toMillis(last.CreatedAt), rowID: rowIDs[pageSize-1]}
		page.NextPageToken = cursor.encode()
	}
	return page, nil
}
