package domain

import (
	"context"

	"github.com/lbruel/sceneforge/internal/audit"
	apperrors "github.com/lbruel/sceneforge/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultAuditPageSize = 50

// AuditQueryInput represents the MCP tool input for querying the mutation
// journal.
type AuditQueryInput struct {
	Filter    string `json:"filter,omitempty" jsonschema:"AIP-160 filter over tool, scene_id, object_id, and ts"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum events per page (default 50)"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
}

// AuditEvent is one journal entry in a query result.
type AuditEvent struct {
	ID        string `json:"id"`
	Tool      string `json:"tool"`
	SceneID   string `json:"scene_id"`
	ObjectID  string `json:"object_id,omitempty"`
	Params    string `json:"params,omitempty"`
	CreatedAt string `json:"created_at"`
}

// AuditQueryResult represents the MCP tool output for a journal query.
type AuditQueryResult struct {
	Events        []AuditEvent `json:"events"`
	NextPageToken string       `json:"next_page_token,omitempty"`
}

// AuditQueryTool defines the MCP tool schema for querying the mutation
// journal.
func AuditQueryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "audit_query",
		Description: "Lists recorded scene mutations newest first, with optional AIP-160 filtering and cursor pagination.",
	}
}

// AuditQueryHandler executes a journal query request.
func AuditQueryHandler(store audit.Store) mcp.ToolHandlerFor[AuditQueryInput, AuditQueryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AuditQueryInput) (*mcp.CallToolResult, AuditQueryResult, error) {
		if store == nil {
			return nil, AuditQueryResult{}, apperrors.New(apperrors.CodeStorageUnconfigured, "audit storage is not configured")
		}
		pageSize := input.PageSize
		if pageSize <= 0 {
			pageSize = defaultAuditPageSize
		}
		page, err := store.ListEvents(ctx, pageSize, input.PageToken, input.Filter)
		if err != nil {
			return nil, AuditQueryResult{}, err
		}

		events := make([]AuditEvent, 0, len(page.Events))
		for _, event := range page.Events {
			events = append(events, AuditEvent{
				ID:        event.ID,
				Tool:      event.Tool,
				SceneID:   event.SceneID,
				ObjectID:  event.ObjectID,
				Params:    event.Params,
				CreatedAt: event.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			})
		}
		return textResult("Found %d audit events", len(events)),
			AuditQueryResult{Events: events, NextPageToken: page.NextPageToken}, nil
	}
}
