package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.SnapshotDB != "" || cfg.AuditDB != "" {
		t.Fatalf("expected storage to default off, got %+v", cfg)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("SCENEFORGE_MCP_TRANSPORT", "http")
	t.Setenv("SCENEFORGE_MCP_HTTP_ADDR", "localhost:9090")
	t.Setenv("SCENEFORGE_SNAPSHOT_DB", "/tmp/scenes.db")
	t.Setenv("SCENEFORGE_AUDIT_DB", "/tmp/audit.db")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:9090" {
		t.Fatalf("expected env http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.SnapshotDB != "/tmp/scenes.db" || cfg.AuditDB != "/tmp/audit.db" {
		t.Fatalf("expected env storage paths, got %+v", cfg)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SCENEFORGE_MCP_TRANSPORT", "stdio")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-transport", "http", "-http-addr", "localhost:7070"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected flag transport, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:7070" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
}

func TestSplitHosts(t *testing.T) {
	hosts := splitHosts(" mcp.internal , , scenes.internal ")
	if len(hosts) != 2 || hosts[0] != "mcp.internal" || hosts[1] != "scenes.internal" {
		t.Fatalf("unexpected hosts %v", hosts)
	}
	if splitHosts("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
