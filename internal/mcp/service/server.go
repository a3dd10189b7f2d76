package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lbruel/sceneforge/internal/audit"
	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/lbruel/sceneforge/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "SceneForge MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures how the MCP server is exposed.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the HTTP listen address. Defaults to localhost:8081 for
	// the HTTP transport.
	HTTPAddr string
	// AllowedHosts extends the loopback-only Host/Origin allowlist for the
	// HTTP transport.
	AllowedHosts []string
	// AuthSecret enables HS256 bearer-token checks on the HTTP transport
	// when non-empty. Stdio runs over local process trust and ignores it.
	AuthSecret string
}

// Deps are the backends the tool handlers operate on. SceneStore and
// AuditStore may be nil; the corresponding tools then report that storage is
// unconfigured.
type Deps struct {
	Registry   *scene.Registry
	SceneStore storage.SceneStore
	AuditStore audit.Store
}

// Server hosts the MCP server over a scene registry and optional stores.
type Server struct {
	mcpServer  *mcp.Server
	registry   *scene.Registry
	sceneStore storage.SceneStore
	auditStore audit.Store
}

// New creates a configured MCP server with every tool and resource
// registered. When deps.Registry is nil a fresh empty registry is used.
func New(deps Deps) *Server {
	if deps.Registry == nil {
		deps.Registry = scene.NewRegistry()
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	server := &Server{
		mcpServer:  mcpServer,
		registry:   deps.Registry,
		sceneStore: deps.SceneStore,
		auditStore: deps.AuditStore,
	}

	recorder := newRecorder(deps.AuditStore)
	registerSceneTools(mcpServer, deps.Registry, server.sceneStore, recorder)
	registerObjectTools(mcpServer, deps.Registry, recorder)
	registerMaterialTools(mcpServer, deps.Registry, recorder)
	registerAnimationTools(mcpServer, deps.Registry, recorder)
	registerAuditTools(mcpServer, deps.AuditStore)
	registerResources(mcpServer, deps.Registry, server.sceneStore)

	return server
}

// Close releases the stores held by the server.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.sceneStore != nil {
		if err := s.sceneStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close scene store: %w", err))
		}
		s.sceneStore = nil
	}
	if s.auditStore != nil {
		if err := s.auditStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close audit store: %w", err))
		}
		s.auditStore = nil
	}
	return errors.Join(errs...)
}

// Run exposes the server over the configured transport and blocks until
// context cancellation. Stores are closed on the way out for both transports.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	switch cfg.Transport {
	case TransportStdio:
		return s.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return s.serveHTTP(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport starts the MCP server using the provided transport.
// The MCP loop and the stores share a single exit path so cleanup behavior
// is consistent for both stdio and HTTP runs.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close stores: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close stores: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
