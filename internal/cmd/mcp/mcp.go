// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lbruel/sceneforge/internal/audit"
	auditsqlite "github.com/lbruel/sceneforge/internal/audit/sqlite"
	mcpservice "github.com/lbruel/sceneforge/internal/mcp/service"
	"github.com/lbruel/sceneforge/internal/platform/config"
	"github.com/lbruel/sceneforge/internal/platform/otel"
	"github.com/lbruel/sceneforge/internal/storage"
	storagebbolt "github.com/lbruel/sceneforge/internal/storage/bbolt"
)

// Config holds MCP command configuration.
type Config struct {
	Transport    string `env:"SCENEFORGE_MCP_TRANSPORT"     envDefault:"stdio"`
	HTTPAddr     string `env:"SCENEFORGE_MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	AllowedHosts string `env:"SCENEFORGE_MCP_ALLOWED_HOSTS"`
	AuthSecret   string `env:"SCENEFORGE_MCP_AUTH_SECRET"`
	SnapshotDB   string `env:"SCENEFORGE_SNAPSHOT_DB"`
	AuditDB      string `env:"SCENEFORGE_AUDIT_DB"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.SnapshotDB, "snapshot-db", cfg.SnapshotDB, "Path to the scene snapshot database; empty disables snapshots")
	fs.StringVar(&cfg.AuditDB, "audit-db", cfg.AuditDB, "Path to the audit journal database; empty disables the journal")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP scene server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	var sceneStore storage.SceneStore
	if cfg.SnapshotDB != "" {
		store, err := storagebbolt.Open(cfg.SnapshotDB)
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
		sceneStore = store
	}

	var auditStore audit.Store
	if cfg.AuditDB != "" {
		store, err := auditsqlite.Open(cfg.AuditDB)
		if err != nil {
			return fmt.Errorf("open audit store: %w", err)
		}
		auditStore = store
	}

	server := mcpservice.New(mcpservice.Deps{
		SceneStore: sceneStore,
		AuditStore: auditStore,
	})
	return server.Run(ctx, mcpservice.Config{
		Transport:    mcpservice.TransportKind(cfg.Transport),
		HTTPAddr:     cfg.HTTPAddr,
		AllowedHosts: splitHosts(cfg.AllowedHosts),
		AuthSecret:   cfg.AuthSecret,
	})
}

// splitHosts splits a comma-separated host list, dropping empty entries.
func splitHosts(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var hosts []string
	for _, entry := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			hosts = append(hosts, trimmed)
		}
	}
	return hosts
}
