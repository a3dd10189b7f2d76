// Package service hosts the MCP server: tool and resource registration,
// transport selection, and the audit recorder that journals successful
// mutations.
package service
