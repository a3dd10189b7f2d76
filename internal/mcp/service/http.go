package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const httpShutdownTimeout = 5 * time.Second

// httpGuard gates HTTP transport requests. The default posture is
// loopback-only Host/Origin admission, extended by an explicit allowlist,
// with optional HS256 bearer-token checks on top.
type httpGuard struct {
	allowedHosts map[string]struct{}
	authSecret   string
}

func newHTTPGuard(cfg Config) *httpGuard {
	return &httpGuard{
		allowedHosts: parseAllowedHosts(cfg.AllowedHosts),
		authSecret:   cfg.AuthSecret,
	}
}

// serveHTTP exposes the MCP server over streamable HTTP and blocks until
// context cancellation.
func (s *Server) serveHTTP(ctx context.Context, cfg Config) error {
	httpAddr := cfg.HTTPAddr
	if httpAddr == "" {
		httpAddr = "localhost:8081"
	}
	guard := newHTTPGuard(cfg)

	streamHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", guard.wrap(streamHandler))
	mux.HandleFunc("/mcp/health", guard.handleHealth)

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("MCP HTTP transport listening on %s", httpAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			serveErr = fmt.Errorf("shutdown HTTP transport: %w", err)
		}
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("serve HTTP transport: %w", err)
		}
	}

	closeErr := s.Close()
	if closeErr != nil {
		if serveErr == nil {
			return fmt.Errorf("close stores: %w", closeErr)
		}
		return fmt.Errorf("%v; close stores: %w", serveErr, closeErr)
	}
	return serveErr
}

// wrap applies Host/Origin validation and optional bearer auth before
// delegating to the MCP handler.
func (g *httpGuard) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := g.validateRequest(r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !g.authorizeRequest(w, r) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validateRequest enforces host access to mitigate DNS rebinding. Host and
// Origin headers are checked against allowed hosts per MCP guidance so remote
// web pages cannot reach local MCP servers via rebinding.
func (g *httpGuard) validateRequest(r *http.Request) error {
	if r == nil {
		return fmt.Errorf("invalid request")
	}
	if !g.isAllowedHostHeader(r.Host) {
		return fmt.Errorf("invalid host")
	}

	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return nil
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("invalid origin")
	}
	if !g.isAllowedHostHeader(parsed.Host) {
		return fmt.Errorf("invalid origin")
	}
	return nil
}

// authorizeRequest runs bearer-token checks only when an auth secret is
// configured, so trusted local deployments skip token validation without
// changing handler wiring.
func (g *httpGuard) authorizeRequest(w http.ResponseWriter, r *http.Request) bool {
	if g.authSecret == "" {
		return true
	}
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return false
	}
	if err := g.validateToken(token); err != nil {
		http.Error(w, "invalid access token", http.StatusUnauthorized)
		return false
	}
	return true
}

// validateToken checks an HS256-signed bearer token against the configured
// secret.
func (g *httpGuard) validateToken(token string) error {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(g.authSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return errors.New("token is not valid")
	}
	return nil
}

// isAllowedHostHeader reports whether a Host/Origin header resolves to an
// allowed host. Loopback hosts always pass.
func (g *httpGuard) isAllowedHostHeader(host string) bool {
	resolvedHost, ok := normalizeHost(host)
	if !ok {
		return false
	}
	if isLoopbackHost(resolvedHost) {
		return true
	}
	if len(g.allowedHosts) == 0 {
		return false
	}
	_, ok = g.allowedHosts[strings.ToLower(resolvedHost)]
	return ok
}

// isLoopbackHost is intentionally strict: only explicit local loopback hosts
// pass by default.
func isLoopbackHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}

// parseAllowedHosts parses allowed hosts from env-loaded values.
func parseAllowedHosts(hosts []string) map[string]struct{} {
	result := make(map[string]struct{}, len(hosts))
	for _, entry := range hosts {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		result[strings.ToLower(trimmed)] = struct{}{}
	}
	return result
}

// normalizeHost extracts the hostname portion from Host/Origin headers.
func normalizeHost(host string) (string, bool) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", false
	}
	if strings.HasPrefix(host, "[") {
		if splitHost, _, err := net.SplitHostPort(host); err == nil {
			return splitHost, true
		}
		if strings.HasSuffix(host, "]") {
			return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]"), true
		}
		return "", false
	}
	if strings.Count(host, ":") > 1 {
		return host, true
	}
	if strings.Contains(host, ":") {
		splitHost, _, err := net.SplitHostPort(host)
		if err != nil {
			return "", false
		}
		return splitHost, true
	}
	return host, true
}

// handleHealth handles GET /mcp/health for health checks.
func (g *httpGuard) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := g.validateRequest(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("write health response: %v", err)
	}
}
